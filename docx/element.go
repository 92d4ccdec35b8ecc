package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// WordprocessingML namespace URIs declared on the document root.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// Alignment names accepted by the tool layer.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// alignToJc maps tool-level alignment names to w:jc values.
var alignToJc = map[string]string{
	AlignLeft:    "left",
	AlignCenter:  "center",
	AlignRight:   "right",
	AlignJustify: "both",
}

// jcToAlign maps w:jc values back to tool-level names.
var jcToAlign = map[string]string{
	"left":   AlignLeft,
	"start":  AlignLeft,
	"center": AlignCenter,
	"right":  AlignRight,
	"end":    AlignRight,
	"both":   AlignJustify,
}

// ValidAlignment reports whether name is one of left, center, right, justify.
func ValidAlignment(name string) bool {
	_, ok := alignToJc[strings.ToLower(name)]
	return ok
}

// Val is a single-attribute element (<w:x w:val="..."/>).
type Val struct {
	Value string `xml:"w:val,attr"`
}

// Toggle is an on/off run property. Presence means on unless the val
// attribute says otherwise (<w:b/> vs <w:b w:val="0"/>).
type Toggle struct {
	Value string `xml:"w:val,attr,omitempty"`
}

// On reports the effective state of the toggle.
func (t *Toggle) On() bool {
	if t == nil {
		return false
	}
	return t.Value != "0" && !strings.EqualFold(t.Value, "false")
}

// Body is the ordered document content: paragraphs and tables interleaved,
// with the final section properties last.
type Body struct {
	Items   []any // *Paragraph or *Table, in document order
	Section *SectionProps
}

// MarshalXML writes the body as w:body. The mixed child list forces a
// hand-rolled encoder; each child carries its own w:-prefixed XMLName.
func (b *Body) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:body"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range b.Items {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	if b.Section != nil {
		if err := e.Encode(b.Section); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Paragraphs returns the body's paragraphs in order, excluding table content.
func (b *Body) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, item := range b.Items {
		if p, ok := item.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the body's tables in order.
func (b *Body) Tables() []*Table {
	var out []*Table
	for _, item := range b.Items {
		if t, ok := item.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Paragraph is a block of runs with optional paragraph properties.
type Paragraph struct {
	XMLName xml.Name        `xml:"w:p"`
	Props   *ParagraphProps `xml:"w:pPr,omitempty"`
	Runs    []*Run          `xml:"w:r"`
}

// ParagraphProps is w:pPr. Field order follows the schema sequence.
type ParagraphProps struct {
	XMLName xml.Name `xml:"w:pPr"`
	Style   *Val     `xml:"w:pStyle,omitempty"`
	Spacing *Spacing `xml:"w:spacing,omitempty"`
	Indent  *Indent  `xml:"w:ind,omitempty"`
	Just    *Val     `xml:"w:jc,omitempty"`
}

// Spacing is w:spacing in twentieths of a point; Line additionally uses
// 240 per single line when LineRule is "auto".
type Spacing struct {
	Before   int    `xml:"w:before,attr,omitempty"`
	After    int    `xml:"w:after,attr,omitempty"`
	Line     int    `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

// Indent is w:ind in twentieths of a point.
type Indent struct {
	Left      int `xml:"w:left,attr,omitempty"`
	Right     int `xml:"w:right,attr,omitempty"`
	FirstLine int `xml:"w:firstLine,attr,omitempty"`
	Hanging   int `xml:"w:hanging,attr,omitempty"`
}

func (p *Paragraph) props() *ParagraphProps {
	if p.Props == nil {
		p.Props = &ParagraphProps{}
	}
	return p.Props
}

// StyleID returns the paragraph style ID, or "" when unstyled.
func (p *Paragraph) StyleID() string {
	if p.Props == nil || p.Props.Style == nil {
		return ""
	}
	return p.Props.Style.Value
}

// SetStyleID applies a paragraph style by style ID.
func (p *Paragraph) SetStyleID(id string) {
	p.props().Style = &Val{Value: id}
}

// Alignment returns the tool-level alignment name, defaulting to left.
func (p *Paragraph) Alignment() string {
	if p.Props == nil || p.Props.Just == nil {
		return AlignLeft
	}
	if name, ok := jcToAlign[p.Props.Just.Value]; ok {
		return name
	}
	return AlignLeft
}

// SetAlignment sets paragraph justification from a tool-level name.
func (p *Paragraph) SetAlignment(name string) bool {
	jc, ok := alignToJc[strings.ToLower(name)]
	if !ok {
		return false
	}
	p.props().Just = &Val{Value: jc}
	return true
}

// Text concatenates the visible text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.TextValue())
	}
	return sb.String()
}

// AddRun appends a plain text run and returns it.
func (p *Paragraph) AddRun(text string) *Run {
	r := newTextRun(text)
	p.Runs = append(p.Runs, r)
	return r
}

// Run is the smallest formatted unit: properties plus exactly one kind of
// content (text, a break, or a drawing).
type Run struct {
	XMLName xml.Name  `xml:"w:r"`
	Props   *RunProps `xml:"w:rPr,omitempty"`
	Break   *Break    `xml:"w:br,omitempty"`
	Drawing *Drawing  `xml:"w:drawing,omitempty"`
	Text    *Text     `xml:"w:t,omitempty"`
}

// Text is w:t. Space is set to "preserve" whenever the value has leading
// or trailing whitespace so Word keeps it.
type Text struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// Break is w:br; Type "page" makes it a page break.
type Break struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

func newTextRun(text string) *Run {
	r := &Run{}
	r.SetText(text)
	return r
}

// TextValue returns the run's text content ("" for breaks and drawings).
func (r *Run) TextValue() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Value
}

// SetText replaces the run's text content.
func (r *Run) SetText(text string) {
	t := &Text{Value: text}
	if text != strings.TrimSpace(text) {
		t.Space = "preserve"
	}
	r.Text = t
}

// IsPageBreak reports whether the run is a page break.
func (r *Run) IsPageBreak() bool {
	return r.Break != nil && r.Break.Type == "page"
}

// RunProps is w:rPr. Field order follows the schema sequence.
type RunProps struct {
	XMLName   xml.Name `xml:"w:rPr"`
	Fonts     *Fonts   `xml:"w:rFonts,omitempty"`
	Bold      *Toggle  `xml:"w:b,omitempty"`
	Italic    *Toggle  `xml:"w:i,omitempty"`
	Underline *Val     `xml:"w:u,omitempty"`
	Color     *Val     `xml:"w:color,omitempty"`
	Size      *Val     `xml:"w:sz,omitempty"`
	SizeCS    *Val     `xml:"w:szCs,omitempty"`
	Highlight *Val     `xml:"w:highlight,omitempty"`
}

// Fonts is w:rFonts; ascii and hAnsi are kept in sync.
type Fonts struct {
	ASCII string `xml:"w:ascii,attr,omitempty"`
	HAnsi string `xml:"w:hAnsi,attr,omitempty"`
}

func (r *Run) props() *RunProps {
	if r.Props == nil {
		r.Props = &RunProps{}
	}
	return r.Props
}

// Bold reports whether the run is bold.
func (r *Run) Bold() bool { return r.Props != nil && r.Props.Bold.On() }

// Italic reports whether the run is italic.
func (r *Run) Italic() bool { return r.Props != nil && r.Props.Italic.On() }

// Underlined reports whether the run has any underline.
func (r *Run) Underlined() bool {
	return r.Props != nil && r.Props.Underline != nil && r.Props.Underline.Value != "none"
}

// SetBold turns bold on or off.
func (r *Run) SetBold(on bool) {
	if on {
		r.props().Bold = &Toggle{}
	} else {
		r.props().Bold = &Toggle{Value: "0"}
	}
}

// SetItalic turns italic on or off.
func (r *Run) SetItalic(on bool) {
	if on {
		r.props().Italic = &Toggle{}
	} else {
		r.props().Italic = &Toggle{Value: "0"}
	}
}

// SetUnderline turns single underline on or off.
func (r *Run) SetUnderline(on bool) {
	if on {
		r.props().Underline = &Val{Value: "single"}
	} else {
		r.props().Underline = &Val{Value: "none"}
	}
}

// SetColor sets the run color to a 6-digit hex value (no leading #).
func (r *Run) SetColor(hex string) {
	r.props().Color = &Val{Value: strings.ToUpper(strings.TrimPrefix(hex, "#"))}
}

// ColorHex returns the run color hex value, or "".
func (r *Run) ColorHex() string {
	if r.Props == nil || r.Props.Color == nil {
		return ""
	}
	return r.Props.Color.Value
}

// SetSizePt sets the font size in points (stored as half-points).
func (r *Run) SetSizePt(points int) {
	v := strconv.Itoa(points * 2)
	r.props().Size = &Val{Value: v}
	r.props().SizeCS = &Val{Value: v}
}

// SizePt returns the font size in points, or 0 when inherited.
func (r *Run) SizePt() float64 {
	if r.Props == nil || r.Props.Size == nil {
		return 0
	}
	half, err := strconv.Atoi(r.Props.Size.Value)
	if err != nil {
		return 0
	}
	return float64(half) / 2
}

// SetFont sets the run font family.
func (r *Run) SetFont(name string) {
	r.props().Fonts = &Fonts{ASCII: name, HAnsi: name}
}

// FontName returns the run font family, or "".
func (r *Run) FontName() string {
	if r.Props == nil || r.Props.Fonts == nil {
		return ""
	}
	return r.Props.Fonts.ASCII
}

// Highlight returns the highlight color name, or "".
func (r *Run) Highlight() string {
	if r.Props == nil || r.Props.Highlight == nil {
		return ""
	}
	return r.Props.Highlight.Value
}

// namedColors covers the color names the tool layer accepts, mirroring
// the hex values Word uses for them.
var namedColors = map[string]string{
	"red":    "FF0000",
	"blue":   "0000FF",
	"green":  "008000",
	"yellow": "FFFF00",
	"black":  "000000",
	"white":  "FFFFFF",
}

// ResolveColor turns a color name or hex string into a 6-digit hex value.
// Unknown values are passed through uppercased so raw hex works.
func ResolveColor(name string) string {
	if hex, ok := namedColors[strings.ToLower(name)]; ok {
		return hex
	}
	return strings.ToUpper(strings.TrimPrefix(name, "#"))
}
