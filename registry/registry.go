package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/docsmith/docsmith/catalog"
	"github.com/docsmith/docsmith/docx"
	"github.com/docsmith/docsmith/search"
)

// ServerInfo names this MCP server in the initialize handshake.
type ServerInfo struct {
	Name    string
	Version string
}

// Config configures a Server.
type Config struct {
	ServerInfo ServerInfo
	// Root is the directory relative filenames resolve against. Empty
	// means the process working directory.
	Root    string
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

// Server exposes the document tools over MCP. All tool failures are
// reported as result text, never as protocol errors, so clients always
// see a human-readable message.
type Server struct {
	mcp     *mcp.Server
	root    string
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// New builds a Server with every tool and resource registered.
func New(cfg Config) *Server {
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = "word-document-server"
	}
	if cfg.ServerInfo.Version == "" {
		cfg.ServerInfo.Version = "1.0.0"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Catalog == nil {
		// The fallback catalog gets its own searcher so search_documents
		// works out of the box.
		cfg.Catalog = catalog.New(cfg.Root, catalog.Options{
			Searcher: search.NewSearcher(search.Config{}),
			Logger:   cfg.Logger,
		})
	}

	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.ServerInfo.Name,
			Version: cfg.ServerInfo.Version,
		}, nil),
		root:    cfg.Root,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCP returns the underlying protocol server, for embedding in custom
// transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Catalog returns the document catalog backing list and search tools.
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// Writeability hints appended to "cannot modify" messages. Creation
// tools additionally suggest a fresh document.
const (
	hintCopy      = "Consider creating a copy first."
	hintCopyOrNew = "Consider creating a copy first or creating a new document."
)

// docRef pairs the filename as shown in messages with its resolved
// on-disk path.
type docRef struct {
	display string
	path    string
}

func (s *Server) ref(filename string) docRef {
	display := docx.NormalizePath(filename)
	p := display
	if !filepath.IsAbs(p) && s.root != "" {
		p = filepath.Join(s.root, p)
	}
	return docRef{display: display, path: p}
}

func (s *Server) exists(ref docRef) bool {
	_, err := os.Stat(ref.path)
	return err == nil
}

// openForEdit loads a document for mutation. A non-empty message means
// the tool should return it verbatim instead of proceeding.
func (s *Server) openForEdit(ref docRef, hint string) (*docx.Document, string) {
	if !s.exists(ref) {
		return nil, fmt.Sprintf("Document %s does not exist", ref.display)
	}
	if err := docx.CheckWriteable(ref.path); err != nil {
		return nil, fmt.Sprintf("Cannot modify document: %v. %s", err, hint)
	}
	d, err := docx.Open(ref.path)
	if err != nil {
		return nil, fmt.Sprintf("Failed to open document: %v", err)
	}
	return d, ""
}

// save writes the document back and refreshes the catalog entry when
// the file lives under the catalog root.
func (s *Server) save(d *docx.Document, ref docRef) error {
	if err := d.Save(ref.path); err != nil {
		return err
	}
	s.touch(ref)
	return nil
}

func (s *Server) touch(ref docRef) {
	if s.catalog == nil {
		return
	}
	rel, err := filepath.Rel(s.catalog.Root(), ref.path)
	if err != nil || filepath.Dir(rel) != "." {
		return
	}
	if err := s.catalog.Touch(rel); err != nil {
		s.logger.Warn("catalog refresh failed",
			zap.String("document", rel), zap.Error(err))
	}
}

func textResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
