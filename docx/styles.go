package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// StyleSheet wraps word/styles.xml. Existing styles are kept as raw XML
// and only parsed for inspection; new styles are appended by splicing
// serialized fragments before the closing tag, so docDefaults,
// latentStyles, and style bodies the model does not understand survive
// untouched.
type StyleSheet struct {
	raw    []byte
	parsed []StyleInfo
	added  []styleOut
	dirty  bool
}

// StyleInfo describes one style for the inspection tools.
type StyleInfo struct {
	ID              string          `json:"style_id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	BasedOn         string          `json:"base_style,omitempty"`
	Default         bool            `json:"default,omitempty"`
	Font            *FontInfo       `json:"font,omitempty"`
	ParagraphFormat *ParaFormatInfo `json:"paragraph_format,omitempty"`
}

// FontInfo is the font slice of a style.
type FontInfo struct {
	Name      string  `json:"name,omitempty"`
	SizePt    float64 `json:"size,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// ParaFormatInfo is the paragraph-format slice of a style.
type ParaFormatInfo struct {
	Alignment    string `json:"alignment,omitempty"`
	LeftIndent   int    `json:"left_indent,omitempty"`
	RightIndent  int    `json:"right_indent,omitempty"`
	FirstLine    int    `json:"first_line_indent,omitempty"`
	SpaceBefore  int    `json:"space_before,omitempty"`
	SpaceAfter   int    `json:"space_after,omitempty"`
	LineSpacing  int    `json:"line_spacing,omitempty"`
}

type stylesIn struct {
	Styles []styleIn `xml:"style"`
}

type styleIn struct {
	Type    string `xml:"type,attr"`
	StyleID string `xml:"styleId,attr"`
	Default string `xml:"default,attr"`
	Inner   string `xml:",innerxml"`
}

type styleDetail struct {
	Name    *xval       `xml:"name"`
	BasedOn *xval       `xml:"basedOn"`
	RPr     *xrunProps  `xml:"rPr"`
	PPr     *xparaProps `xml:"pPr"`
}

type styleOut struct {
	XMLName xml.Name        `xml:"w:style"`
	Type    string          `xml:"w:type,attr"`
	StyleID string          `xml:"w:styleId,attr"`
	Name    *Val            `xml:"w:name,omitempty"`
	BasedOn *Val            `xml:"w:basedOn,omitempty"`
	QFormat *Toggle         `xml:"w:qFormat,omitempty"`
	PPr     *ParagraphProps `xml:"w:pPr,omitempty"`
	RPr     *RunProps       `xml:"w:rPr,omitempty"`
	TblPr   *tableStylePr   `xml:"w:tblPr,omitempty"`
}

type tableStylePr struct {
	XMLName xml.Name      `xml:"w:tblPr"`
	Borders *TableBorders `xml:"w:tblBorders,omitempty"`
}

// TableBorders is the w:tblBorders of a table style.
type TableBorders struct {
	XMLName xml.Name    `xml:"w:tblBorders"`
	Top     *BorderEdge `xml:"w:top,omitempty"`
	Left    *BorderEdge `xml:"w:left,omitempty"`
	Bottom  *BorderEdge `xml:"w:bottom,omitempty"`
	Right   *BorderEdge `xml:"w:right,omitempty"`
	InsideH *BorderEdge `xml:"w:insideH,omitempty"`
	InsideV *BorderEdge `xml:"w:insideV,omitempty"`
}

// Styles returns the stylesheet, parsing word/styles.xml on first use.
func (d *Document) Styles() *StyleSheet {
	if d.styles != nil {
		return d.styles
	}
	raw, ok := d.pkg.get(partStyles)
	if !ok || len(raw) == 0 {
		raw = []byte(tmplStyles)
	}
	d.styles = parseStyles(raw)
	return d.styles
}

func parseStyles(raw []byte) *StyleSheet {
	s := &StyleSheet{raw: raw}
	var in stylesIn
	if err := xml.Unmarshal(raw, &in); err != nil {
		// A styles part we cannot parse still splices correctly; the
		// inspection API just reports nothing.
		return s
	}
	for _, st := range in.Styles {
		s.parsed = append(s.parsed, styleInfoFrom(st))
	}
	return s
}

func styleInfoFrom(st styleIn) StyleInfo {
	info := StyleInfo{
		ID:      st.StyleID,
		Type:    st.Type,
		Default: st.Default == "1" || strings.EqualFold(st.Default, "true"),
	}
	var detail styleDetail
	// The inner fragment needs a root element to parse.
	wrapped := "<style xmlns:w=\"" + nsW + "\">" + st.Inner + "</style>"
	if err := xml.Unmarshal([]byte(wrapped), &detail); err == nil {
		if detail.Name != nil {
			info.Name = detail.Name.Val
		}
		if detail.BasedOn != nil {
			info.BasedOn = detail.BasedOn.Val
		}
		info.Font = fontInfoFrom(detail.RPr)
		info.ParagraphFormat = paraFormatFrom(detail.PPr)
	}
	if info.Name == "" {
		info.Name = st.StyleID
	}
	return info
}

func fontInfoFrom(rpr *xrunProps) *FontInfo {
	if rpr == nil {
		return nil
	}
	f := &FontInfo{}
	if rpr.Fonts != nil {
		f.Name = rpr.Fonts.ASCII
	}
	if rpr.Size != nil {
		if half, err := strconv.Atoi(rpr.Size.Val); err == nil {
			f.SizePt = float64(half) / 2
		}
	}
	f.Bold = rpr.Bold != nil && (&Toggle{Value: rpr.Bold.Val}).On()
	f.Italic = rpr.Italic != nil && (&Toggle{Value: rpr.Italic.Val}).On()
	f.Underline = rpr.Underline != nil && rpr.Underline.Val != "none"
	if rpr.Color != nil {
		f.Color = rpr.Color.Val
	}
	if *f == (FontInfo{}) {
		return nil
	}
	return f
}

func paraFormatFrom(ppr *xparaProps) *ParaFormatInfo {
	if ppr == nil {
		return nil
	}
	pf := &ParaFormatInfo{}
	if ppr.Just != nil {
		if name, ok := jcToAlign[ppr.Just.Val]; ok {
			pf.Alignment = name
		}
	}
	if ppr.Indent != nil {
		pf.LeftIndent = atoi(ppr.Indent.Left)
		pf.RightIndent = atoi(ppr.Indent.Right)
		pf.FirstLine = atoi(ppr.Indent.FirstLine)
	}
	if ppr.Spacing != nil {
		pf.SpaceBefore = atoi(ppr.Spacing.Before)
		pf.SpaceAfter = atoi(ppr.Spacing.After)
		pf.LineSpacing = atoi(ppr.Spacing.Line)
	}
	if *pf == (ParaFormatInfo{}) {
		return nil
	}
	return pf
}

// List returns every style, existing and pending.
func (s *StyleSheet) List() []StyleInfo {
	out := make([]StyleInfo, 0, len(s.parsed)+len(s.added))
	out = append(out, s.parsed...)
	for _, st := range s.added {
		out = append(out, addedInfo(st))
	}
	return out
}

func addedInfo(st styleOut) StyleInfo {
	info := StyleInfo{ID: st.StyleID, Type: st.Type}
	if st.Name != nil {
		info.Name = st.Name.Value
	}
	if st.BasedOn != nil {
		info.BasedOn = st.BasedOn.Value
	}
	return info
}

// Lookup finds a style by ID or name, case-insensitively.
func (s *StyleSheet) Lookup(nameOrID string) (StyleInfo, bool) {
	for _, info := range s.List() {
		if strings.EqualFold(info.ID, nameOrID) || strings.EqualFold(info.Name, nameOrID) {
			return info, true
		}
	}
	return StyleInfo{}, false
}

// HasStyle reports whether a style with the given ID or name exists.
func (s *StyleSheet) HasStyle(nameOrID string) bool {
	_, ok := s.Lookup(nameOrID)
	return ok
}

func (s *StyleSheet) add(st styleOut) {
	s.added = append(s.added, st)
	s.dirty = true
}

// EnsureHeadingStyles registers Heading 1-9 when missing: bold, 16pt for
// level 1, 14pt for level 2, 12pt below that.
func (s *StyleSheet) EnsureHeadingStyles() {
	for level := 1; level <= 9; level++ {
		id := fmt.Sprintf("Heading%d", level)
		if s.HasStyle(id) {
			continue
		}
		points := 12
		switch level {
		case 1:
			points = 16
		case 2:
			points = 14
		}
		v := strconv.Itoa(points * 2)
		s.add(styleOut{
			Type:    "paragraph",
			StyleID: id,
			Name:    &Val{Value: fmt.Sprintf("heading %d", level)},
			BasedOn: &Val{Value: "Normal"},
			QFormat: &Toggle{},
			RPr: &RunProps{
				Bold: &Toggle{},
				Size: &Val{Value: v},
			},
		})
	}
}

// EnsureTableGrid registers the Table Grid style with single borders on
// every edge when missing.
func (s *StyleSheet) EnsureTableGrid() {
	if s.HasStyle("TableGrid") {
		return
	}
	edge := func() *BorderEdge {
		return &BorderEdge{Val: "single", Size: "4", Space: "0", Color: "auto"}
	}
	s.add(styleOut{
		Type:    "table",
		StyleID: "TableGrid",
		Name:    &Val{Value: "Table Grid"},
		TblPr: &tableStylePr{
			Borders: &TableBorders{
				Top: edge(), Left: edge(), Bottom: edge(), Right: edge(),
				InsideH: edge(), InsideV: edge(),
			},
		},
	})
}

// CustomStyle describes a paragraph style to create.
type CustomStyle struct {
	Name    string
	Bold    *bool
	Italic  *bool
	SizePt  int
	Font    string
	Color   string // name or hex
	BasedOn string
}

// AddParagraphStyle creates a custom paragraph style. Creating a style
// that already exists is a no-op.
func (s *StyleSheet) AddParagraphStyle(def CustomStyle) error {
	if def.Name == "" {
		return fmt.Errorf("style name is required")
	}
	if s.HasStyle(def.Name) {
		return nil
	}

	st := styleOut{
		Type:    "paragraph",
		StyleID: styleIDFromName(def.Name),
		Name:    &Val{Value: def.Name},
		QFormat: &Toggle{},
	}
	basedOn := def.BasedOn
	if basedOn != "" && !s.HasStyle(basedOn) {
		basedOn = "Normal"
	}
	if basedOn != "" {
		if info, ok := s.Lookup(basedOn); ok {
			st.BasedOn = &Val{Value: info.ID}
		} else {
			st.BasedOn = &Val{Value: "Normal"}
		}
	}

	rpr := &RunProps{}
	touched := false
	if def.Bold != nil {
		touched = true
		if *def.Bold {
			rpr.Bold = &Toggle{}
		} else {
			rpr.Bold = &Toggle{Value: "0"}
		}
	}
	if def.Italic != nil {
		touched = true
		if *def.Italic {
			rpr.Italic = &Toggle{}
		} else {
			rpr.Italic = &Toggle{Value: "0"}
		}
	}
	if def.SizePt > 0 {
		touched = true
		rpr.Size = &Val{Value: strconv.Itoa(def.SizePt * 2)}
	}
	if def.Font != "" {
		touched = true
		rpr.Fonts = &Fonts{ASCII: def.Font, HAnsi: def.Font}
	}
	if def.Color != "" {
		touched = true
		rpr.Color = &Val{Value: ResolveColor(def.Color)}
	}
	if touched {
		st.RPr = rpr
	}

	s.add(st)
	return nil
}

func styleIDFromName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r == ' ' || r == '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// marshal splices pending styles into the raw part and promotes them to
// parsed so repeated saves stay idempotent.
func (s *StyleSheet) marshal() ([]byte, error) {
	if len(s.added) == 0 {
		return s.raw, nil
	}

	idx := bytes.LastIndex(s.raw, []byte("</"))
	if idx < 0 {
		return nil, fmt.Errorf("malformed %s: no closing tag", partStyles)
	}

	var frags bytes.Buffer
	for _, st := range s.added {
		data, err := xml.Marshal(st)
		if err != nil {
			return nil, fmt.Errorf("marshal style %s: %w", st.StyleID, err)
		}
		frags.Write(data)
	}

	out := make([]byte, 0, len(s.raw)+frags.Len())
	out = append(out, s.raw[:idx]...)
	out = append(out, frags.Bytes()...)
	out = append(out, s.raw[idx:]...)

	for _, st := range s.added {
		s.parsed = append(s.parsed, addedInfo(st))
	}
	s.added = nil
	s.raw = out
	return out, nil
}
