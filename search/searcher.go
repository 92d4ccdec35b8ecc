package search

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/docsmith/docsmith/catalog"
)

// Config customizes ranking and safety limits.
type Config struct {
	// TitleBoost multiplies the weight of title matches (default: 3).
	TitleBoost float64
	// MaxDocs caps the number of documents indexed (0 = unlimited).
	MaxDocs int
	// MaxDocTextLen truncates long document bodies before indexing
	// (0 = unlimited).
	MaxDocTextLen int
	// DefaultLimit is used when Search is called with limit <= 0
	// (default: 10).
	DefaultLimit int
}

func (c Config) withDefaults() Config {
	if c.TitleBoost <= 0 {
		c.TitleBoost = 3
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 10
	}
	return c
}

// Searcher implements catalog.Searcher with a bleve in-memory index.
// The index is rebuilt only when the document set's fingerprint changes.
type Searcher struct {
	cfg Config

	mu          sync.RWMutex
	idx         bleve.Index
	fingerprint string
}

// indexDoc is the shape bleve indexes; field names are the query fields.
type indexDoc struct {
	Title string `json:"Title"`
	Text  string `json:"Text"`
}

// NewSearcher creates a Searcher with the given config.
func NewSearcher(cfg Config) *Searcher {
	return &Searcher{cfg: cfg.withDefaults()}
}

// Search ranks docs for the query. An empty query returns the first
// limit documents in path order, matching the catalog's listing order.
// Results are ordered score DESC, then path ASC for determinism.
func (s *Searcher) Search(queryStr string, limit int, docs []catalog.SearchDoc) ([]catalog.Match, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	docs = s.clamp(docs)

	if queryStr == "" {
		n := limit
		if n > len(docs) {
			n = len(docs)
		}
		out := make([]catalog.Match, 0, n)
		for _, d := range docs[:n] {
			out = append(out, catalog.Match{Path: d.Path})
		}
		return out, nil
	}

	idx, err := s.ensureIndex(docs)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(s.buildQuery(queryStr), limit, 0, false)
	req.Highlight = bleve.NewHighlight()
	req.Fields = []string{"Title"}

	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", queryStr, err)
	}

	out := make([]catalog.Match, 0, len(res.Hits))
	for _, hit := range res.Hits {
		m := catalog.Match{Path: hit.ID, Score: hit.Score}
		if frags, ok := hit.Fragments["Text"]; ok && len(frags) > 0 {
			m.Fragment = frags[0]
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func (s *Searcher) buildQuery(q string) query.Query {
	title := bleve.NewMatchQuery(q)
	title.SetField("Title")
	title.SetBoost(s.cfg.TitleBoost)

	text := bleve.NewMatchQuery(q)
	text.SetField("Text")

	return bleve.NewDisjunctionQuery(title, text)
}

func (s *Searcher) clamp(docs []catalog.SearchDoc) []catalog.SearchDoc {
	if s.cfg.MaxDocs > 0 && len(docs) > s.cfg.MaxDocs {
		docs = docs[:s.cfg.MaxDocs]
	}
	if s.cfg.MaxDocTextLen <= 0 {
		return docs
	}
	out := make([]catalog.SearchDoc, len(docs))
	copy(out, docs)
	for i := range out {
		if len(out[i].Text) > s.cfg.MaxDocTextLen {
			out[i].Text = truncateRunes(out[i].Text, s.cfg.MaxDocTextLen)
		}
	}
	return out
}

// truncateRunes cuts s to at most max bytes without splitting a rune.
func truncateRunes(s string, max int) string {
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ensureIndex returns a bleve index for docs, rebuilding only when the
// fingerprint changed since the last call.
func (s *Searcher) ensureIndex(docs []catalog.SearchDoc) (bleve.Index, error) {
	fp := computeFingerprint(docs)

	s.mu.RLock()
	if s.idx != nil && s.fingerprint == fp {
		idx := s.idx
		s.mu.RUnlock()
		return idx, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx != nil && s.fingerprint == fp {
		return s.idx, nil
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	for _, d := range docs {
		if err := idx.Index(d.Path, indexDoc{Title: d.Title, Text: d.Text}); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %s: %w", d.Path, err)
		}
	}

	if s.idx != nil {
		_ = s.idx.Close()
	}
	s.idx = idx
	s.fingerprint = fp
	return idx, nil
}

// Close releases the cached index.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	s.fingerprint = ""
	return err
}
