package docx

import (
	"encoding/xml"
	"strings"
)

// Border styles accepted by table formatting. "none" maps to the
// WordprocessingML nil border.
var borderVals = map[string]string{
	"none":   "nil",
	"single": "single",
	"double": "double",
	"thick":  "thick",
}

// ResolveBorderStyle maps a tool-level border style to a w:val, falling
// back to single for unknown names.
func ResolveBorderStyle(name string) string {
	if v, ok := borderVals[strings.ToLower(name)]; ok {
		return v
	}
	return "single"
}

// Table is w:tbl.
type Table struct {
	XMLName xml.Name    `xml:"w:tbl"`
	Props   *TableProps `xml:"w:tblPr,omitempty"`
	Grid    *TableGrid  `xml:"w:tblGrid,omitempty"`
	Rows    []*TableRow `xml:"w:tr"`
}

// TableProps is w:tblPr.
type TableProps struct {
	XMLName xml.Name `xml:"w:tblPr"`
	Style   *Val     `xml:"w:tblStyle,omitempty"`
	Width   *TblW    `xml:"w:tblW,omitempty"`
	Just    *Val     `xml:"w:jc,omitempty"`
}

// TblW is w:tblW (auto width for generated tables).
type TblW struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

// TableGrid is w:tblGrid; one gridCol per column.
type TableGrid struct {
	XMLName xml.Name  `xml:"w:tblGrid"`
	Cols    []GridCol `xml:"w:gridCol"`
}

// GridCol is w:gridCol.
type GridCol struct {
	W int `xml:"w:w,attr,omitempty"`
}

// TableRow is w:tr.
type TableRow struct {
	XMLName xml.Name     `xml:"w:tr"`
	Cells   []*TableCell `xml:"w:tc"`
}

// TableCell is w:tc. A cell always holds at least one paragraph.
type TableCell struct {
	XMLName    xml.Name     `xml:"w:tc"`
	Props      *CellProps   `xml:"w:tcPr,omitempty"`
	Paragraphs []*Paragraph `xml:"w:p"`
}

// CellProps is w:tcPr.
type CellProps struct {
	XMLName xml.Name     `xml:"w:tcPr"`
	Borders *CellBorders `xml:"w:tcBorders,omitempty"`
	Shading *Shading     `xml:"w:shd,omitempty"`
}

// CellBorders is w:tcBorders.
type CellBorders struct {
	XMLName xml.Name    `xml:"w:tcBorders"`
	Top     *BorderEdge `xml:"w:top,omitempty"`
	Left    *BorderEdge `xml:"w:left,omitempty"`
	Bottom  *BorderEdge `xml:"w:bottom,omitempty"`
	Right   *BorderEdge `xml:"w:right,omitempty"`
}

// BorderEdge is one border line.
type BorderEdge struct {
	Val   string `xml:"w:val,attr"`
	Size  string `xml:"w:sz,attr,omitempty"`
	Space string `xml:"w:space,attr,omitempty"`
	Color string `xml:"w:color,attr,omitempty"`
}

// Shading is w:shd; Fill is the background color hex.
type Shading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr,omitempty"`
	Fill  string `xml:"w:fill,attr,omitempty"`
}

// NewTable builds a rows×cols table with empty cells.
func NewTable(rows, cols int) *Table {
	t := &Table{
		Props: &TableProps{Width: &TblW{W: 0, Type: "auto"}},
		Grid:  &TableGrid{Cols: make([]GridCol, cols)},
	}
	for i := 0; i < rows; i++ {
		row := &TableRow{}
		for j := 0; j < cols; j++ {
			row.Cells = append(row.Cells, newCell())
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func newCell() *TableCell {
	return &TableCell{Paragraphs: []*Paragraph{{}}}
}

// StyleID returns the table style ID, or "".
func (t *Table) StyleID() string {
	if t.Props == nil || t.Props.Style == nil {
		return ""
	}
	return t.Props.Style.Value
}

// SetStyleID applies a table style by ID.
func (t *Table) SetStyleID(id string) {
	if t.Props == nil {
		t.Props = &TableProps{}
	}
	t.Props.Style = &Val{Value: id}
}

// Alignment returns the table's tool-level alignment name.
func (t *Table) Alignment() string {
	if t.Props == nil || t.Props.Just == nil {
		return AlignLeft
	}
	if name, ok := jcToAlign[t.Props.Just.Value]; ok {
		return name
	}
	return AlignLeft
}

// ColumnCount returns the number of columns, preferring the grid and
// falling back to the widest row.
func (t *Table) ColumnCount() int {
	if t.Grid != nil && len(t.Grid.Cols) > 0 {
		return len(t.Grid.Cols)
	}
	max := 0
	for _, row := range t.Rows {
		if len(row.Cells) > max {
			max = len(row.Cells)
		}
	}
	return max
}

// Cell returns the cell at (row, col) or nil when out of range.
func (t *Table) Cell(row, col int) *TableCell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r.Cells) {
		return nil
	}
	return r.Cells[col]
}

// Text returns the cell's text, paragraphs joined by newlines.
func (c *TableCell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell content with a single plain paragraph.
func (c *TableCell) SetText(text string) {
	p := &Paragraph{}
	p.AddRun(text)
	c.Paragraphs = []*Paragraph{p}
}

func (c *TableCell) props() *CellProps {
	if c.Props == nil {
		c.Props = &CellProps{}
	}
	return c.Props
}

// SetBorders applies the same border val to all four edges.
func (c *TableCell) SetBorders(val, color string) {
	edge := func() *BorderEdge {
		return &BorderEdge{Val: val, Size: "4", Space: "0", Color: color}
	}
	c.props().Borders = &CellBorders{
		Top:    edge(),
		Left:   edge(),
		Bottom: edge(),
		Right:  edge(),
	}
}

// SetShading fills the cell background with a hex color.
func (c *TableCell) SetShading(fill string) {
	c.props().Shading = &Shading{Val: "clear", Color: "auto", Fill: strings.TrimPrefix(fill, "#")}
}

// BoldFirstRow bolds every run in the first row to mark a header row.
// Cells without runs get a bold empty run so the formatting survives
// later edits.
func (t *Table) BoldFirstRow() {
	if len(t.Rows) == 0 {
		return
	}
	for _, cell := range t.Rows[0].Cells {
		for _, p := range cell.Paragraphs {
			for _, r := range p.Runs {
				r.SetBold(true)
			}
		}
	}
}

// SetAllBorders applies a border val to every cell in the table.
func (t *Table) SetAllBorders(val, color string) {
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			cell.SetBorders(val, color)
		}
	}
}
