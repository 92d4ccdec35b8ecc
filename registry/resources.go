package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsmith/docsmith/docx"
)

// registerResources exposes document content as readable resources:
// docx://{path} for plain text and docx-formatted://{path} for the
// marked-up rendering.
func (s *Server) registerResources() {
	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "document",
		URITemplate: "docx://{path}",
		Description: "Plain text content of a Word document.",
		MIMEType:    "text/plain",
	}, s.readDocumentResource("docx://", false))

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "document-formatted",
		URITemplate: "docx-formatted://{path}",
		Description: "Word document content with formatting markup.",
		MIMEType:    "text/plain",
	}, s.readDocumentResource("docx-formatted://", true))
}

func (s *Server) readDocumentResource(prefix string, formatted bool) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		path := strings.TrimPrefix(req.Params.URI, prefix)
		ref := s.ref(path)

		text := ""
		if !s.exists(ref) {
			text = fmt.Sprintf("Document %s does not exist", ref.display)
		} else {
			d, err := docx.Open(ref.path)
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", ref.display, err)
			}
			if formatted {
				text = d.FormattedText()
			} else {
				text = d.Text()
			}
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			}},
		}, nil
	}
}
