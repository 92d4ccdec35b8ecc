package registry

import (
	"strings"

	"github.com/docsmith/docsmith/docx"
)

// outline is the get_document_outline result.
type outline struct {
	Paragraphs []outlineParagraph `json:"paragraphs"`
	Tables     []outlineTable     `json:"tables"`
}

type outlineParagraph struct {
	Index     int           `json:"index"`
	Text      string        `json:"text"`
	Style     string        `json:"style"`
	Alignment string        `json:"alignment"`
	Format    outlineFormat `json:"format"`
	Runs      []outlineRun  `json:"runs,omitempty"`
}

// outlineFormat reports paragraph geometry in twentieths of a point.
// LineSpacing is a multiple when the spacing rule is auto, points
// otherwise.
type outlineFormat struct {
	IndentLeft      int     `json:"indent_left"`
	IndentRight     int     `json:"indent_right"`
	IndentFirstLine int     `json:"indent_first_line"`
	SpaceBefore     int     `json:"space_before"`
	SpaceAfter      int     `json:"space_after"`
	LineSpacing     float64 `json:"line_spacing"`
}

type outlineRun struct {
	Text           string  `json:"text"`
	Bold           bool    `json:"bold"`
	Italic         bool    `json:"italic"`
	Underline      bool    `json:"underline"`
	FontSize       float64 `json:"font_size,omitempty"`
	FontName       string  `json:"font_name,omitempty"`
	HighlightColor string  `json:"highlight_color,omitempty"`
	Color          string  `json:"color,omitempty"`
}

type outlineTable struct {
	Index   int        `json:"index"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Preview [][]string `json:"preview,omitempty"`

	// Populated only for detailed tables.
	Style     string          `json:"style,omitempty"`
	Alignment string          `json:"alignment,omitempty"`
	Cells     [][]outlineCell `json:"cells,omitempty"`
}

type outlineCell struct {
	Row        int                      `json:"row"`
	Column     int                      `json:"column"`
	Text       string                   `json:"text"`
	Borders    map[string]outlineBorder `json:"borders,omitempty"`
	Shading    string                   `json:"shading,omitempty"`
	Paragraphs []outlineCellParagraph   `json:"paragraphs"`
}

type outlineBorder struct {
	Val   string `json:"val"`
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

type outlineCellParagraph struct {
	Text      string       `json:"text"`
	Style     string       `json:"style"`
	Alignment string       `json:"alignment"`
	Runs      []outlineRun `json:"runs"`
}

func buildOutline(d *docx.Document, detailedTables bool) outline {
	out := outline{
		Paragraphs: []outlineParagraph{},
		Tables:     []outlineTable{},
	}
	styles := d.Styles()

	for i, p := range d.Paragraphs() {
		info := outlineParagraph{
			Index:     i,
			Text:      truncate(p.Text(), 100),
			Style:     styleName(styles, p),
			Alignment: strings.ToUpper(p.Alignment()),
			Format:    paragraphFormat(p),
		}
		for _, r := range p.Runs {
			info.Runs = append(info.Runs, runInfo(r, 50))
		}
		out.Paragraphs = append(out.Paragraphs, info)
	}

	for i, t := range d.Tables() {
		if detailedTables {
			out.Tables = append(out.Tables, detailedTable(styles, t, i))
			continue
		}
		out.Tables = append(out.Tables, previewTable(t, i))
	}
	return out
}

func previewTable(t *docx.Table, index int) outlineTable {
	info := outlineTable{
		Index:   index,
		Rows:    len(t.Rows),
		Columns: t.ColumnCount(),
		Preview: [][]string{},
	}

	maxRows := min(3, len(t.Rows))
	maxCols := min(3, info.Columns)
	for i := 0; i < maxRows; i++ {
		row := make([]string, 0, maxCols)
		for j := 0; j < maxCols; j++ {
			cell := t.Cell(i, j)
			if cell == nil {
				row = append(row, "N/A")
				continue
			}
			row = append(row, truncate(cell.Text(), 20))
		}
		info.Preview = append(info.Preview, row)
	}
	return info
}

func detailedTable(styles *docx.StyleSheet, t *docx.Table, index int) outlineTable {
	info := outlineTable{
		Index:     index,
		Rows:      len(t.Rows),
		Columns:   t.ColumnCount(),
		Style:     tableStyleName(styles, t),
		Alignment: strings.ToUpper(t.Alignment()),
		Cells:     [][]outlineCell{},
	}

	for i, row := range t.Rows {
		cells := make([]outlineCell, 0, len(row.Cells))
		for j, cell := range row.Cells {
			ci := outlineCell{
				Row:        i,
				Column:     j,
				Text:       cell.Text(),
				Paragraphs: []outlineCellParagraph{},
			}
			if cell.Props != nil {
				ci.Borders = borderInfo(cell.Props.Borders)
				if cell.Props.Shading != nil {
					ci.Shading = cell.Props.Shading.Fill
				}
			}
			for _, p := range cell.Paragraphs {
				cp := outlineCellParagraph{
					Text:      p.Text(),
					Style:     styleName(styles, p),
					Alignment: strings.ToUpper(p.Alignment()),
					Runs:      []outlineRun{},
				}
				for _, r := range p.Runs {
					cp.Runs = append(cp.Runs, runInfo(r, 0))
				}
				ci.Paragraphs = append(ci.Paragraphs, cp)
			}
			cells = append(cells, ci)
		}
		info.Cells = append(info.Cells, cells)
	}
	return info
}

func borderInfo(b *docx.CellBorders) map[string]outlineBorder {
	if b == nil {
		return nil
	}
	out := make(map[string]outlineBorder)
	add := func(name string, e *docx.BorderEdge) {
		if e != nil {
			out[name] = outlineBorder{Val: e.Val, Color: e.Color, Size: e.Size}
		}
	}
	add("top", b.Top)
	add("bottom", b.Bottom)
	add("left", b.Left)
	add("right", b.Right)
	if len(out) == 0 {
		return nil
	}
	return out
}

func runInfo(r *docx.Run, maxLen int) outlineRun {
	text := r.TextValue()
	if maxLen > 0 {
		text = truncate(text, maxLen)
	}
	return outlineRun{
		Text:           text,
		Bold:           r.Bold(),
		Italic:         r.Italic(),
		Underline:      r.Underlined(),
		FontSize:       r.SizePt(),
		FontName:       r.FontName(),
		HighlightColor: r.Highlight(),
		Color:          r.ColorHex(),
	}
}

func paragraphFormat(p *docx.Paragraph) outlineFormat {
	var f outlineFormat
	if p.Props == nil {
		return f
	}
	if ind := p.Props.Indent; ind != nil {
		f.IndentLeft = ind.Left
		f.IndentRight = ind.Right
		f.IndentFirstLine = ind.FirstLine
	}
	if sp := p.Props.Spacing; sp != nil {
		f.SpaceBefore = sp.Before
		f.SpaceAfter = sp.After
		if sp.Line > 0 {
			if sp.LineRule == "auto" || sp.LineRule == "" {
				f.LineSpacing = float64(sp.Line) / 240
			} else {
				f.LineSpacing = float64(sp.Line) / 20
			}
		}
	}
	return f
}

func styleName(styles *docx.StyleSheet, p *docx.Paragraph) string {
	id := p.StyleID()
	if id == "" {
		return "Normal"
	}
	if info, ok := styles.Lookup(id); ok {
		return info.Name
	}
	return id
}

func tableStyleName(styles *docx.StyleSheet, t *docx.Table) string {
	id := t.StyleID()
	if id == "" {
		return "None"
	}
	if info, ok := styles.Lookup(id); ok {
		return info.Name
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
