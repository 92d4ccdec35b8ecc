// Package catalog maintains an in-memory inventory of the Word
// documents under a root directory.
//
// # Usage
//
// Create a catalog and scan the root:
//
//	cat := catalog.New("/srv/docs", catalog.Options{})
//	if err := cat.Scan(); err != nil {
//	    ...
//	}
//	for _, s := range cat.List() {
//	    fmt.Println(s.Name, s.SizeKB)
//	}
//
// After a tool mutates a document, [Catalog.Touch] refreshes just that
// entry instead of rescanning the directory.
//
// # Pluggable Search
//
// The catalog accepts a [Searcher] for full-text queries over document
// content:
//
//	cat := catalog.New(root, catalog.Options{
//	    Searcher: search.NewSearcher(search.Config{}),
//	})
//	matches, err := cat.Search("quarterly revenue", 10)
//
// # Change Notifications
//
// [Catalog.OnChange] registers a listener for added/updated/removed
// events, and [Catalog.Version] exposes a counter that bumps on every
// mutation so consumers can cache derived state against it.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package catalog
