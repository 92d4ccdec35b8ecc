package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsmith/docsmith/docx"
)

// jsonResult marshals v indented for tool output.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return textResult(string(data)), nil
}

type documentInfoInput struct {
	Filename              string `json:"filename"`
	IncludeHeadersFooters bool   `json:"include_headers_footers,omitempty"`
	IncludeNotes          bool   `json:"include_notes,omitempty"`
}

func (s *Server) getDocumentInfo(ctx context.Context, req *mcp.CallToolRequest, in documentInfoInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		return textResult(fmt.Sprintf("Document %s does not exist", ref.display)), nil, nil
	}

	d, err := docx.Open(ref.path)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to get document info: %v", err)), nil, nil
	}
	info, err := d.Info(in.IncludeHeadersFooters, in.IncludeNotes)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to get document info: %v", err)), nil, nil
	}
	res, err := jsonResult(info)
	return res, nil, err
}

type documentTextInput struct {
	Filename          string `json:"filename"`
	IncludeFormatting bool   `json:"include_formatting,omitempty"`
}

func (s *Server) getDocumentText(ctx context.Context, req *mcp.CallToolRequest, in documentTextInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		return textResult(fmt.Sprintf("Document %s does not exist", ref.display)), nil, nil
	}

	d, err := docx.Open(ref.path)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to extract text: %v", err)), nil, nil
	}
	if in.IncludeFormatting {
		return textResult(d.FormattedText()), nil, nil
	}
	return textResult(d.Text()), nil, nil
}

type documentOutlineInput struct {
	Filename       string `json:"filename"`
	DetailedTables bool   `json:"detailed_tables,omitempty"`
}

func (s *Server) getDocumentOutline(ctx context.Context, req *mcp.CallToolRequest, in documentOutlineInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		res, err := jsonResult(map[string]string{"error": fmt.Sprintf("Document %s does not exist", ref.display)})
		return res, nil, err
	}

	d, err := docx.Open(ref.path)
	if err != nil {
		res, jerr := jsonResult(map[string]string{"error": fmt.Sprintf("Failed to get document structure: %v", err)})
		return res, nil, jerr
	}
	res, err := jsonResult(buildOutline(d, in.DetailedTables))
	return res, nil, err
}

type documentStylesInput struct {
	Filename string `json:"filename"`
}

// styleGroups buckets styles by type the way the styles inspection tool
// reports them.
type styleGroups struct {
	ParagraphStyles []docx.StyleInfo `json:"paragraph_styles"`
	CharacterStyles []docx.StyleInfo `json:"character_styles"`
	TableStyles     []docx.StyleInfo `json:"table_styles"`
	NumberingStyles []docx.StyleInfo `json:"numbering_styles"`
	OtherStyles     []docx.StyleInfo `json:"other_styles"`
}

func (s *Server) getDocumentStyles(ctx context.Context, req *mcp.CallToolRequest, in documentStylesInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		return textResult(fmt.Sprintf("Document %s does not exist", ref.display)), nil, nil
	}

	d, err := docx.Open(ref.path)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to get document styles: %v", err)), nil, nil
	}

	groups := styleGroups{
		ParagraphStyles: []docx.StyleInfo{},
		CharacterStyles: []docx.StyleInfo{},
		TableStyles:     []docx.StyleInfo{},
		NumberingStyles: []docx.StyleInfo{},
		OtherStyles:     []docx.StyleInfo{},
	}
	for _, st := range d.Styles().List() {
		switch st.Type {
		case "paragraph":
			groups.ParagraphStyles = append(groups.ParagraphStyles, st)
		case "character":
			groups.CharacterStyles = append(groups.CharacterStyles, st)
		case "table":
			groups.TableStyles = append(groups.TableStyles, st)
		case "numbering":
			groups.NumberingStyles = append(groups.NumberingStyles, st)
		default:
			groups.OtherStyles = append(groups.OtherStyles, st)
		}
	}
	res, err := jsonResult(groups)
	return res, nil, err
}

type listDocumentsInput struct {
	Directory string `json:"directory,omitempty"`
}

func (s *Server) listAvailableDocuments(ctx context.Context, req *mcp.CallToolRequest, in listDocumentsInput) (*mcp.CallToolResult, any, error) {
	dir := in.Directory
	if dir == "" {
		dir = s.root
	}
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return textResult(fmt.Sprintf("Directory %s does not exist", dir)), nil, nil
		}
		return textResult(fmt.Sprintf("Failed to list documents: %v", err)), nil, nil
	}

	var sb strings.Builder
	count := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".docx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		fmt.Fprintf(&sb, "- %s (%.2f KB)\n", e.Name(), float64(info.Size())/1024)
	}
	if count == 0 {
		return textResult(fmt.Sprintf("No Word documents found in %s", dir)), nil, nil
	}
	return textResult(fmt.Sprintf("Found %d Word documents in %s:\n%s", count, dir, sb.String())), nil, nil
}

type headersFootersInput struct {
	Filename string `json:"filename"`
}

func (s *Server) getHeadersAndFooters(ctx context.Context, req *mcp.CallToolRequest, in headersFootersInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		return textResult(fmt.Sprintf("Document %s does not exist", ref.display)), nil, nil
	}

	d, err := docx.Open(ref.path)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to get headers and footers: %v", err)), nil, nil
	}
	hf, err := d.HeadersFooters()
	if err != nil {
		return textResult(fmt.Sprintf("Failed to get headers and footers: %v", err)), nil, nil
	}
	res, err := jsonResult(hf)
	return res, nil, err
}

type notesInput struct {
	Filename string `json:"filename"`
}

func (s *Server) getFootnotesAndEndnotes(ctx context.Context, req *mcp.CallToolRequest, in notesInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		return textResult(fmt.Sprintf("Document %s does not exist", ref.display)), nil, nil
	}

	d, err := docx.Open(ref.path)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to extract notes: %v", err)), nil, nil
	}
	notes, err := d.Notes()
	if err != nil {
		return textResult(fmt.Sprintf("Failed to extract notes: %v", err)), nil, nil
	}
	res, err := jsonResult(notes)
	return res, nil, err
}

type searchDocumentsInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func (s *Server) searchDocuments(ctx context.Context, req *mcp.CallToolRequest, in searchDocumentsInput) (*mcp.CallToolResult, any, error) {
	if err := s.catalog.Scan(); err != nil {
		return textResult(fmt.Sprintf("Failed to search documents: %v", err)), nil, nil
	}
	matches, err := s.catalog.Search(in.Query, in.Limit)
	if err != nil {
		return textResult(fmt.Sprintf("Failed to search documents: %v", err)), nil, nil
	}
	if len(matches) == 0 {
		return textResult(fmt.Sprintf("No documents matched '%s'", in.Query)), nil, nil
	}
	res, err := jsonResult(matches)
	return res, nil, err
}
