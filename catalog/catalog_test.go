package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docsmith/docsmith/docx"
)

func writeDoc(t *testing.T, dir, name, title string, paragraphs ...string) {
	t.Helper()
	d := docx.New()
	d.Properties().Title = title
	for _, p := range paragraphs {
		d.AddParagraph(p)
	}
	if err := d.Save(filepath.Join(dir, name)); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
}

func TestScanAndList(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "beta.docx", "Beta", "two words")
	writeDoc(t, dir, "alpha.docx", "Alpha", "one two three")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(dir, Options{})
	if err := c.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	list := c.List()
	if len(list) != 2 {
		t.Fatalf("documents = %d, want 2", len(list))
	}
	if list[0].Name != "alpha.docx" || list[1].Name != "beta.docx" {
		t.Errorf("order = %s, %s", list[0].Name, list[1].Name)
	}
	if list[0].Title != "Alpha" {
		t.Errorf("title = %q", list[0].Title)
	}
	if list[0].WordCount != 3 {
		t.Errorf("word count = %d, want 3", list[0].WordCount)
	}
	if list[0].SizeKB <= 0 {
		t.Errorf("size = %v", list[0].SizeKB)
	}
}

func TestScanSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.docx", "Good", "content")
	if err := os.WriteFile(filepath.Join(dir, "broken.docx"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(dir, Options{})
	if err := c.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(c.List()) != 1 {
		t.Fatalf("documents = %d, want 1", len(c.List()))
	}
}

func TestTouchAndRemove(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, Options{})
	if err := c.Scan(); err != nil {
		t.Fatal(err)
	}
	v0 := c.Version()

	writeDoc(t, dir, "new.docx", "New", "hello")
	if err := c.Touch("new.docx"); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if _, ok := c.Get("new.docx"); !ok {
		t.Fatal("touched document missing")
	}
	if c.Version() <= v0 {
		t.Error("version not bumped by Touch")
	}

	// Touch of a deleted file drops the entry.
	if err := os.Remove(filepath.Join(dir, "new.docx")); err != nil {
		t.Fatal(err)
	}
	if err := c.Touch("new.docx"); err != nil {
		t.Fatalf("Touch after delete: %v", err)
	}
	if _, ok := c.Get("new.docx"); ok {
		t.Error("entry survived file deletion")
	}
}

func TestOnChange(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, Options{})

	var events []ChangeEvent
	unsub := c.OnChange(func(evt ChangeEvent) {
		events = append(events, evt)
	})

	writeDoc(t, dir, "a.docx", "A", "text")
	if err := c.Touch("a.docx"); err != nil {
		t.Fatal(err)
	}
	if err := c.Touch("a.docx"); err != nil {
		t.Fatal(err)
	}
	c.Remove("a.docx")

	want := []ChangeType{ChangeAdded, ChangeUpdated, ChangeRemoved}
	if len(events) != len(want) {
		t.Fatalf("events = %d, want %d", len(events), len(want))
	}
	for i, evt := range events {
		if evt.Type != want[i] || evt.Name != "a.docx" {
			t.Errorf("event[%d] = %+v, want %s", i, evt, want[i])
		}
	}

	unsub()
	c.Remove("a.docx") // no entry, no event either way
	writeDoc(t, dir, "a.docx", "A", "text")
	if err := c.Touch("a.docx"); err != nil {
		t.Fatal(err)
	}
	if len(events) != len(want) {
		t.Error("listener fired after unsubscribe")
	}
}

type fakeSearcher struct {
	gotDocs  int
	gotQuery string
}

func (f *fakeSearcher) Search(query string, limit int, docs []SearchDoc) ([]Match, error) {
	f.gotQuery = query
	f.gotDocs = len(docs)
	return []Match{{Path: "x.docx", Score: 1}}, nil
}

func TestSearchDelegates(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "x.docx", "X", "searchable body")

	fs := &fakeSearcher{}
	c := New(dir, Options{Searcher: fs})
	if err := c.Scan(); err != nil {
		t.Fatal(err)
	}

	matches, err := c.Search("body", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if fs.gotQuery != "body" || fs.gotDocs != 1 {
		t.Errorf("searcher saw query=%q docs=%d", fs.gotQuery, fs.gotDocs)
	}

	bare := New(dir, Options{})
	if _, err := bare.Search("q", 1); err == nil {
		t.Error("expected error without searcher")
	}
}
