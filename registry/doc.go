// Package registry exposes the document tools as an MCP server.
//
// It wires the docx package's editing operations, the catalog's listing
// and search, and the document resources onto a single
// modelcontextprotocol server.
//
// # Usage
//
//	srv := registry.New(registry.Config{
//	    Root:   "/srv/documents",
//	    Logger: logger,
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run serves stdio; HTTPHandler returns a streamable-HTTP handler for
// mounting on a mux instead.
//
// # Error Reporting
//
// Tool handlers never return protocol errors for document problems.
// A missing file, an unwriteable target, or a bad index comes back as
// the tool's text result, so conversational clients can read the
// message and react. Protocol errors are reserved for marshaling
// failures inside the server itself.
//
// # Filename Resolution
//
// Every filename argument gets a .docx extension appended when missing
// and resolves relative to Config.Root. Messages echo the name the
// caller passed, not the resolved path.
package registry
