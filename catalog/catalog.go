package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/docsmith/docsmith/docx"
)

// Summary holds the lightweight per-document fields the listing tools
// return. Full text stays internal to the catalog; consumers that need
// it go through SearchDocs.
type Summary struct {
	Name           string  `json:"name"`
	Path           string  `json:"path"`
	SizeKB         float64 `json:"size_kb"`
	Title          string  `json:"title,omitempty"`
	Author         string  `json:"author,omitempty"`
	Modified       string  `json:"modified,omitempty"`
	WordCount      int     `json:"word_count"`
	ParagraphCount int     `json:"paragraph_count"`
	TableCount     int     `json:"table_count"`
}

// SearchDoc is the searchable projection of one document.
type SearchDoc struct {
	Path  string
	Title string
	Text  string
}

// Match is one search hit.
type Match struct {
	Path     string  `json:"path"`
	Score    float64 `json:"score"`
	Fragment string  `json:"fragment,omitempty"`
}

// Searcher ranks catalog documents for a query. Implementations must be
// safe for concurrent use.
type Searcher interface {
	Search(query string, limit int, docs []SearchDoc) ([]Match, error)
}

// ChangeType classifies a catalog change event.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeUpdated ChangeType = "updated"
	ChangeRemoved ChangeType = "removed"
)

// ChangeEvent notifies listeners of a catalog mutation.
type ChangeEvent struct {
	Type ChangeType
	Name string
}

// Options configures a Catalog.
type Options struct {
	// Searcher handles Search calls. Nil disables search.
	Searcher Searcher
	// Logger defaults to zap.NewNop.
	Logger *zap.Logger
}

type entry struct {
	summary Summary
	text    string
}

// Catalog is an in-memory inventory of the .docx files under a root
// directory. It is safe for concurrent use; the version counter bumps on
// every mutation so consumers can cache against it.
type Catalog struct {
	root     string
	searcher Searcher
	logger   *zap.Logger

	mu        sync.RWMutex
	entries   map[string]entry
	version   uint64
	listeners map[int]func(ChangeEvent)
	nextSub   int
}

// New creates a Catalog over root. Call Scan to populate it.
func New(root string, opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		root:      root,
		searcher:  opts.Searcher,
		logger:    logger,
		entries:   make(map[string]entry),
		listeners: make(map[int]func(ChangeEvent)),
	}
}

// Root returns the directory the catalog watches.
func (c *Catalog) Root() string {
	return c.root
}

// Scan rebuilds the catalog from the root directory. Files that fail to
// parse are logged and skipped rather than failing the scan.
func (c *Catalog) Scan() error {
	dirEntries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", c.root, err)
	}

	fresh := make(map[string]entry)
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(strings.ToLower(de.Name()), ".docx") {
			continue
		}
		e, err := c.load(de.Name())
		if err != nil {
			c.logger.Warn("skipping unreadable document",
				zap.String("name", de.Name()), zap.Error(err))
			continue
		}
		fresh[de.Name()] = e
	}

	c.mu.Lock()
	old := c.entries
	c.entries = fresh
	c.version++
	c.mu.Unlock()

	for name := range fresh {
		if _, ok := old[name]; !ok {
			c.notify(ChangeEvent{Type: ChangeAdded, Name: name})
		}
	}
	for name := range old {
		if _, ok := fresh[name]; !ok {
			c.notify(ChangeEvent{Type: ChangeRemoved, Name: name})
		}
	}

	c.logger.Debug("catalog scanned", zap.Int("documents", len(fresh)))
	return nil
}

func (c *Catalog) load(name string) (entry, error) {
	path := filepath.Join(c.root, name)
	info, err := os.Stat(path)
	if err != nil {
		return entry{}, err
	}
	d, err := docx.Open(path)
	if err != nil {
		return entry{}, err
	}

	props := d.Properties()
	s := Summary{
		Name:           name,
		Path:           path,
		SizeKB:         float64(info.Size()) / 1024,
		Title:          props.Title,
		Author:         props.Creator,
		WordCount:      d.WordCount(),
		ParagraphCount: len(d.Paragraphs()),
		TableCount:     len(d.Tables()),
	}
	if !props.Modified.IsZero() {
		s.Modified = props.Modified.UTC().Format("2006-01-02 15:04:05")
	}
	return entry{summary: s, text: d.Text()}, nil
}

// Touch refreshes a single document after it was created or modified.
// A missing file removes the entry instead.
func (c *Catalog) Touch(name string) error {
	e, err := c.load(name)
	if err != nil {
		if os.IsNotExist(err) {
			c.Remove(name)
			return nil
		}
		return err
	}

	c.mu.Lock()
	_, existed := c.entries[name]
	c.entries[name] = e
	c.version++
	c.mu.Unlock()

	evt := ChangeEvent{Type: ChangeAdded, Name: name}
	if existed {
		evt.Type = ChangeUpdated
	}
	c.notify(evt)
	return nil
}

// Remove drops a document from the catalog.
func (c *Catalog) Remove(name string) {
	c.mu.Lock()
	_, existed := c.entries[name]
	delete(c.entries, name)
	if existed {
		c.version++
	}
	c.mu.Unlock()

	if existed {
		c.notify(ChangeEvent{Type: ChangeRemoved, Name: name})
	}
}

// List returns all summaries sorted by file name.
func (c *Catalog) List() []Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Summary, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the summary for one document.
func (c *Catalog) Get(name string) (Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e.summary, ok
}

// SearchDocs returns the searchable projection of every document,
// sorted by path for stable fingerprints.
func (c *Catalog) SearchDocs() []SearchDoc {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]SearchDoc, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, SearchDoc{Path: e.summary.Name, Title: e.summary.Title, Text: e.text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Search ranks documents for the query via the configured Searcher.
func (c *Catalog) Search(query string, limit int) ([]Match, error) {
	if c.searcher == nil {
		return nil, fmt.Errorf("no searcher configured")
	}
	return c.searcher.Search(query, limit, c.SearchDocs())
}

// Version returns the mutation counter.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// OnChange registers a listener; the returned function unsubscribes.
// Listeners run synchronously on the mutating goroutine.
func (c *Catalog) OnChange(fn func(ChangeEvent)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Catalog) notify(evt ChangeEvent) {
	c.mu.RLock()
	fns := make([]func(ChangeEvent), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(evt)
	}
}
