package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsmith/docsmith/docx"
)

type createDocumentInput struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
}

func (s *Server) createDocument(ctx context.Context, req *mcp.CallToolRequest, in createDocumentInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if err := docx.CheckWriteable(ref.path); err != nil {
		return textResult(fmt.Sprintf("Cannot create document: %v", err)), nil, nil
	}

	d := docx.New()
	if in.Title != "" {
		d.Properties().Title = in.Title
	}
	if in.Author != "" {
		d.Properties().Creator = in.Author
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to create document: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Document %s created successfully", ref.display)), nil, nil
}

type copyDocumentInput struct {
	SourceFilename      string `json:"source_filename"`
	DestinationFilename string `json:"destination_filename,omitempty"`
}

func (s *Server) copyDocument(ctx context.Context, req *mcp.CallToolRequest, in copyDocumentInput) (*mcp.CallToolResult, any, error) {
	src := s.ref(in.SourceFilename)
	if !s.exists(src) {
		return textResult(fmt.Sprintf("Failed to copy document: Source document %s does not exist", src.display)), nil, nil
	}

	dst := docRef{}
	if in.DestinationFilename != "" {
		dst = s.ref(in.DestinationFilename)
	} else {
		base := strings.TrimSuffix(src.display, ".docx")
		dst = s.ref(base + "_copy.docx")
	}

	if _, err := docx.Copy(src.path, dst.path); err != nil {
		return textResult(fmt.Sprintf("Failed to copy document: %v", err)), nil, nil
	}
	s.touch(dst)
	return textResult(fmt.Sprintf("Document copied to %s", dst.display)), nil, nil
}

type addHeadingInput struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	Level     int    `json:"level,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}

func (s *Server) addHeading(ctx context.Context, req *mcp.CallToolRequest, in addHeadingInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopyOrNew)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	level := in.Level
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}

	styleID := fmt.Sprintf("Heading%d", level)
	if d.Styles().HasStyle(styleID) {
		p := d.AddHeading(in.Text, level)
		if in.Alignment != "" {
			p.SetAlignment(in.Alignment)
		}
		if err := s.save(d, ref); err != nil {
			return textResult(fmt.Sprintf("Failed to add heading: %v", err)), nil, nil
		}
		return textResult(fmt.Sprintf("Heading '%s' (level %d) added to %s", in.Text, level, ref.display)), nil, nil
	}

	// Heading style missing: fall back to direct formatting on a normal
	// paragraph, sized by level.
	p := d.AddParagraph("")
	p.SetStyleID("Normal")
	run := p.AddRun(in.Text)
	run.SetBold(true)
	switch level {
	case 1:
		run.SetSizePt(16)
	case 2:
		run.SetSizePt(14)
	default:
		run.SetSizePt(12)
	}
	if in.Alignment != "" {
		p.SetAlignment(in.Alignment)
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to add heading: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Heading '%s' added to %s with direct formatting (style not available)", in.Text, ref.display)), nil, nil
}

type addParagraphInput struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	Style     string `json:"style,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}

func (s *Server) addParagraph(ctx context.Context, req *mcp.CallToolRequest, in addParagraphInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopyOrNew)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	p := d.AddParagraph(in.Text)
	if in.Style != "" {
		info, ok := d.Styles().Lookup(in.Style)
		if !ok {
			p.SetStyleID("Normal")
			if err := s.save(d, ref); err != nil {
				return textResult(fmt.Sprintf("Failed to add paragraph: %v", err)), nil, nil
			}
			return textResult(fmt.Sprintf("Style '%s' not found, paragraph added with default style to %s", in.Style, ref.display)), nil, nil
		}
		p.SetStyleID(info.ID)
	}
	if in.Alignment != "" {
		p.SetAlignment(in.Alignment)
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to add paragraph: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Paragraph added to %s", ref.display)), nil, nil
}

type addTableInput struct {
	Filename string     `json:"filename"`
	Rows     int        `json:"rows"`
	Cols     int        `json:"cols"`
	Data     [][]string `json:"data,omitempty"`
}

func (s *Server) addTable(ctx context.Context, req *mcp.CallToolRequest, in addTableInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopyOrNew)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	if in.Rows < 0 || in.Cols < 0 {
		return textResult("Failed to add table: rows and cols must be non-negative"), nil, nil
	}
	t := d.AddTable(in.Rows, in.Cols)
	for i, rowData := range in.Data {
		if i >= in.Rows {
			break
		}
		for j, cellText := range rowData {
			if j >= in.Cols {
				break
			}
			t.Cell(i, j).SetText(cellText)
		}
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to add table: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Table (%dx%d) added to %s", in.Rows, in.Cols, ref.display)), nil, nil
}

type addPictureInput struct {
	Filename  string  `json:"filename"`
	ImagePath string  `json:"image_path"`
	Width     float64 `json:"width,omitempty"`
}

func (s *Server) addPicture(ctx context.Context, req *mcp.CallToolRequest, in addPictureInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	if !s.exists(ref) {
		return textResult(fmt.Sprintf("Document %s does not exist", ref.display)), nil, nil
	}

	absImage, err := filepath.Abs(in.ImagePath)
	if err != nil {
		absImage = in.ImagePath
	}
	info, err := os.Stat(absImage)
	if err != nil {
		return textResult(fmt.Sprintf("Image file not found: %s", absImage)), nil, nil
	}
	if info.Size() == 0 {
		return textResult(fmt.Sprintf("Image file appears to be empty: %s (0 KB)", absImage)), nil, nil
	}

	d, msg := s.openForEdit(ref, hintCopyOrNew)
	if msg != "" {
		return textResult(msg), nil, nil
	}
	if _, err := d.AddPicture(absImage, in.Width); err != nil {
		return textResult(fmt.Sprintf("Failed to add picture: %v", err)), nil, nil
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to add picture: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Picture %s added to %s", in.ImagePath, ref.display)), nil, nil
}

type pageBreakInput struct {
	Filename string `json:"filename"`
}

func (s *Server) addPageBreak(ctx context.Context, req *mcp.CallToolRequest, in pageBreakInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	d.AddPageBreak()
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to add page break: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Page break added to %s.", ref.display)), nil, nil
}

type deleteParagraphInput struct {
	Filename       string `json:"filename"`
	ParagraphIndex int    `json:"paragraph_index"`
}

func (s *Server) deleteParagraph(ctx context.Context, req *mcp.CallToolRequest, in deleteParagraphInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	n := len(d.Paragraphs())
	if in.ParagraphIndex < 0 || in.ParagraphIndex >= n {
		return textResult(fmt.Sprintf("Invalid paragraph index. Document has %d paragraphs (0-%d).", n, n-1)), nil, nil
	}
	if err := d.DeleteParagraph(in.ParagraphIndex); err != nil {
		return textResult(fmt.Sprintf("Failed to delete paragraph: %v", err)), nil, nil
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to delete paragraph: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Paragraph at index %d deleted successfully.", in.ParagraphIndex)), nil, nil
}

type searchReplaceInput struct {
	Filename    string `json:"filename"`
	FindText    string `json:"find_text"`
	ReplaceText string `json:"replace_text"`
}

func (s *Server) searchAndReplace(ctx context.Context, req *mcp.CallToolRequest, in searchReplaceInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	count := d.ReplaceAll(in.FindText, in.ReplaceText)
	if count == 0 {
		return textResult(fmt.Sprintf("No occurrences of '%s' found.", in.FindText)), nil, nil
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to search and replace: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Replaced %d occurrence(s) of '%s' with '%s'.", count, in.FindText, in.ReplaceText)), nil, nil
}

type formatTextInput struct {
	Filename       string `json:"filename"`
	ParagraphIndex int    `json:"paragraph_index"`
	StartPos       int    `json:"start_pos"`
	EndPos         int    `json:"end_pos"`
	Bold           *bool  `json:"bold,omitempty"`
	Italic         *bool  `json:"italic,omitempty"`
	Underline      *bool  `json:"underline,omitempty"`
	Color          string `json:"color,omitempty"`
	FontSize       int    `json:"font_size,omitempty"`
	FontName       string `json:"font_name,omitempty"`
}

func (s *Server) formatText(ctx context.Context, req *mcp.CallToolRequest, in formatTextInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	paras := d.Paragraphs()
	if in.ParagraphIndex < 0 || in.ParagraphIndex >= len(paras) {
		return textResult(fmt.Sprintf("Invalid paragraph index. Document has %d paragraphs (0-%d).", len(paras), len(paras)-1)), nil, nil
	}
	// Positions are character offsets, so count runes, not bytes.
	textLen := utf8.RuneCountInString(paras[in.ParagraphIndex].Text())
	if in.StartPos < 0 || in.EndPos > textLen || in.StartPos >= in.EndPos {
		return textResult(fmt.Sprintf("Invalid text positions. Paragraph has %d characters.", textLen)), nil, nil
	}

	target, err := d.FormatRange(in.ParagraphIndex, in.StartPos, in.EndPos, docx.RangeFormat{
		Bold:      in.Bold,
		Italic:    in.Italic,
		Underline: in.Underline,
		Color:     in.Color,
		SizePt:    in.FontSize,
		Font:      in.FontName,
	})
	if err != nil {
		return textResult(fmt.Sprintf("Failed to format text: %v", err)), nil, nil
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to format text: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Text '%s' formatted successfully in paragraph %d.", target, in.ParagraphIndex)), nil, nil
}

type customStyleInput struct {
	Filename  string `json:"filename"`
	StyleName string `json:"style_name"`
	Bold      *bool  `json:"bold,omitempty"`
	Italic    *bool  `json:"italic,omitempty"`
	FontSize  int    `json:"font_size,omitempty"`
	FontName  string `json:"font_name,omitempty"`
	Color     string `json:"color,omitempty"`
	BaseStyle string `json:"base_style,omitempty"`
}

func (s *Server) createCustomStyle(ctx context.Context, req *mcp.CallToolRequest, in customStyleInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	err := d.Styles().AddParagraphStyle(docx.CustomStyle{
		Name:    in.StyleName,
		Bold:    in.Bold,
		Italic:  in.Italic,
		SizePt:  in.FontSize,
		Font:    in.FontName,
		Color:   in.Color,
		BasedOn: in.BaseStyle,
	})
	if err != nil {
		return textResult(fmt.Sprintf("Failed to create style: %v", err)), nil, nil
	}
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to create style: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Style '%s' created successfully.", in.StyleName)), nil, nil
}

type formatTableInput struct {
	Filename     string     `json:"filename"`
	TableIndex   int        `json:"table_index"`
	HasHeaderRow bool       `json:"has_header_row,omitempty"`
	BorderStyle  string     `json:"border_style,omitempty"`
	Shading      [][]string `json:"shading,omitempty"`
}

func (s *Server) formatTable(ctx context.Context, req *mcp.CallToolRequest, in formatTableInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	tables := d.Tables()
	if in.TableIndex < 0 || in.TableIndex >= len(tables) {
		return textResult(fmt.Sprintf("Invalid table index. Document has %d tables (0-%d).", len(tables), len(tables)-1)), nil, nil
	}
	t := tables[in.TableIndex]

	if in.HasHeaderRow {
		t.BoldFirstRow()
	}
	if in.BorderStyle != "" {
		t.SetAllBorders(docx.ResolveBorderStyle(in.BorderStyle), "000000")
	}
	for i, rowColors := range in.Shading {
		if i >= len(t.Rows) {
			break
		}
		for j, color := range rowColors {
			if j >= len(t.Rows[i].Cells) {
				break
			}
			t.Rows[i].Cells[j].SetShading(docx.ResolveColor(color))
		}
	}

	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to format table: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Table at index %d formatted successfully.", in.TableIndex)), nil, nil
}

type alignmentInput struct {
	Filename       string `json:"filename"`
	ParagraphIndex int    `json:"paragraph_index"`
	Alignment      string `json:"alignment"`
}

func (s *Server) setParagraphAlignment(ctx context.Context, req *mcp.CallToolRequest, in alignmentInput) (*mcp.CallToolResult, any, error) {
	ref := s.ref(in.Filename)
	d, msg := s.openForEdit(ref, hintCopy)
	if msg != "" {
		return textResult(msg), nil, nil
	}

	paras := d.Paragraphs()
	if in.ParagraphIndex < 0 || in.ParagraphIndex >= len(paras) {
		return textResult(fmt.Sprintf("Invalid paragraph index. Document has %d paragraphs (0-%d).", len(paras), len(paras)-1)), nil, nil
	}
	if !docx.ValidAlignment(in.Alignment) {
		return textResult("Invalid alignment. Supported values: left, center, right, justify."), nil, nil
	}

	paras[in.ParagraphIndex].SetAlignment(in.Alignment)
	if err := s.save(d, ref); err != nil {
		return textResult(fmt.Sprintf("Failed to set paragraph alignment: %v", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Alignment for paragraph %d set to '%s'.", in.ParagraphIndex, in.Alignment)), nil, nil
}
