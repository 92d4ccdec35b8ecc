package search_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/docsmith/docsmith/catalog"
	"github.com/docsmith/docsmith/search"
)

func testDocs() []catalog.SearchDoc {
	return []catalog.SearchDoc{
		{
			Path:  "budget.docx",
			Title: "Annual Budget",
			Text:  "revenue forecast expenses quarterly totals finance",
		},
		{
			Path:  "minutes.docx",
			Title: "Board Minutes",
			Text:  "meeting minutes attendees decisions finance committee",
		},
		{
			Path:  "onboarding.docx",
			Title: "Onboarding Guide",
			Text:  "welcome new employees equipment accounts training schedule",
		},
	}
}

func TestSearcher_Basic(t *testing.T) {
	searcher := search.NewSearcher(search.Config{})
	defer func() {
		if err := searcher.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
	}()
	docs := testDocs()

	t.Run("search_finance", func(t *testing.T) {
		results, err := searcher.Search("finance", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 finance results, got %d", len(results))
		}
		for _, r := range results {
			if r.Path == "onboarding.docx" {
				t.Errorf("unexpected hit %s", r.Path)
			}
			if r.Score <= 0 {
				t.Errorf("score for %s = %v", r.Path, r.Score)
			}
		}
	})

	t.Run("title_boost", func(t *testing.T) {
		results, err := searcher.Search("budget", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) == 0 {
			t.Fatal("expected results for 'budget'")
		}
		if results[0].Path != "budget.docx" {
			t.Errorf("expected budget.docx first (title match), got %s", results[0].Path)
		}
	})

	t.Run("no_matches", func(t *testing.T) {
		results, err := searcher.Search("spaceship", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	})

	t.Run("empty_query_returns_first_n", func(t *testing.T) {
		results, err := searcher.Search("", 2, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Path != "budget.docx" {
			t.Errorf("expected path order, got %s first", results[0].Path)
		}
	})

	t.Run("fragment_highlighting", func(t *testing.T) {
		results, err := searcher.Search("training", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if !strings.Contains(results[0].Fragment, "training") {
			t.Errorf("fragment = %q, want it to contain the match", results[0].Fragment)
		}
	})
}

func TestSearcher_Limits(t *testing.T) {
	t.Run("max_docs", func(t *testing.T) {
		searcher := search.NewSearcher(search.Config{MaxDocs: 2})
		defer searcher.Close()

		docs := make([]catalog.SearchDoc, 4)
		for i := range docs {
			docs[i] = catalog.SearchDoc{
				Path: fmt.Sprintf("doc%d.docx", i),
				Text: strings.Repeat("keyword ", 50),
			}
		}
		results, err := searcher.Search("keyword", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) > 2 {
			t.Errorf("expected at most 2 results (MaxDocs), got %d", len(results))
		}
	})

	t.Run("max_doc_text_len", func(t *testing.T) {
		searcher := search.NewSearcher(search.Config{MaxDocTextLen: 50})
		defer searcher.Close()

		docs := []catalog.SearchDoc{{
			Path: "long.docx",
			Text: strings.Repeat("padding ", 100) + "uniqueword",
		}}
		results, err := searcher.Search("uniqueword", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results (word truncated), got %d", len(results))
		}
	})

	t.Run("default_limit", func(t *testing.T) {
		searcher := search.NewSearcher(search.Config{DefaultLimit: 1})
		defer searcher.Close()

		results, err := searcher.Search("finance", 0, testDocs())
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 result with DefaultLimit, got %d", len(results))
		}
	})
}

func TestSearcher_ReindexOnChange(t *testing.T) {
	searcher := search.NewSearcher(search.Config{})
	defer searcher.Close()

	docs := testDocs()
	if _, err := searcher.Search("finance", 10, docs); err != nil {
		t.Fatal(err)
	}

	// Same doc set: cached index answers again.
	results, err := searcher.Search("finance", 10, docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("cached search: %d results, want 2", len(results))
	}

	// Changed doc set: the new document is findable.
	docs = append(docs, catalog.SearchDoc{Path: "roadmap.docx", Text: "finance roadmap"})
	results, err = searcher.Search("finance", 10, docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("after change: %d results, want 3", len(results))
	}
}

func TestSearcher_CloseIsIdempotent(t *testing.T) {
	searcher := search.NewSearcher(search.Config{})
	if _, err := searcher.Search("x", 1, testDocs()); err != nil {
		t.Fatal(err)
	}
	if err := searcher.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := searcher.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
