// Package search provides bleve-based full-text search over catalog
// documents.
//
// It exists to:
//   - Keep catalog small and dependency-light
//   - Enable stronger ranking without forcing the bleve dependency on
//     every consumer
//
// # Usage
//
// The primary type is [Searcher], which implements [catalog.Searcher]:
//
//	cat := catalog.New(root, catalog.Options{
//	    Searcher: search.NewSearcher(search.Config{}),
//	})
//
// # Configuration
//
// [Config] allows customization of ranking and safety limits:
//
//	cfg := search.Config{
//	    TitleBoost:    3,    // Boost title matches (default: 3)
//	    MaxDocs:       1000, // Limit documents to index (0 = unlimited)
//	    MaxDocTextLen: 5000, // Truncate long bodies (0 = unlimited)
//	}
//
// # Thread Safety
//
// Searcher is safe for concurrent use. It uses an internal RWMutex to
// protect index state and caches the bleve index keyed on a fingerprint
// of the document set, only rebuilding when the documents change.
//
// # Behavior
//
// Empty queries return the first N documents in path order. Non-empty
// queries use bleve's BM25-style ranking with deterministic
// tie-breaking (score DESC, then path ASC), and each hit carries a
// highlighted fragment of the matching body text.
package search
