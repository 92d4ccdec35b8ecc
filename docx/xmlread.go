package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Reading decodes into shadow structs tagged with local names only, so
// any namespace prefix parses, then converts into the model types (whose
// tags carry the w: prefixes required for writing). encoding/xml cannot
// round-trip prefixed names with a single struct set, hence the split.

type xdoc struct {
	Body xbody `xml:"body"`
}

type xbody struct {
	items []any // xpara or xtbl, in document order
	sect  *xsect
}

// UnmarshalXML walks the body children by hand to preserve the
// paragraph/table interleaving that grouped struct fields would lose.
func (b *xbody) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "p":
				var p xpara
				if err := d.DecodeElement(&p, &se); err != nil {
					return fmt.Errorf("decode paragraph: %w", err)
				}
				b.items = append(b.items, p)
			case "tbl":
				var t xtbl
				if err := d.DecodeElement(&t, &se); err != nil {
					return fmt.Errorf("decode table: %w", err)
				}
				b.items = append(b.items, t)
			case "sectPr":
				var s xsect
				if err := d.DecodeElement(&s, &se); err != nil {
					return fmt.Errorf("decode sectPr: %w", err)
				}
				b.sect = &s
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type xpara struct {
	Props *xparaProps
	Runs  []xrun
}

// UnmarshalXML walks the paragraph children by hand so hyperlink runs
// stay interleaved with plain runs in document order; grouped struct
// fields would append them at the end and scramble the text.
func (p *xpara) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "pPr":
				var props xparaProps
				if err := d.DecodeElement(&props, &se); err != nil {
					return fmt.Errorf("decode paragraph props: %w", err)
				}
				p.Props = &props
			case "r":
				var r xrun
				if err := d.DecodeElement(&r, &se); err != nil {
					return fmt.Errorf("decode run: %w", err)
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink":
				var link xhyperlink
				if err := d.DecodeElement(&link, &se); err != nil {
					return fmt.Errorf("decode hyperlink: %w", err)
				}
				p.Runs = append(p.Runs, link.Runs...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type xhyperlink struct {
	Runs []xrun `xml:"r"`
}

type xparaProps struct {
	Style   *xval     `xml:"pStyle"`
	Just    *xval     `xml:"jc"`
	Indent  *xind     `xml:"ind"`
	Spacing *xspacing `xml:"spacing"`
}

type xval struct {
	Val string `xml:"val,attr"`
}

type xind struct {
	Left      string `xml:"left,attr"`
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

type xspacing struct {
	Before   string `xml:"before,attr"`
	After    string `xml:"after,attr"`
	Line     string `xml:"line,attr"`
	LineRule string `xml:"lineRule,attr"`
}

type xrun struct {
	Props    *xrunProps `xml:"rPr"`
	Texts    []xtext    `xml:"t"`
	Breaks   []xbreak   `xml:"br"`
	Drawings []xdrawing `xml:"drawing"`
}

type xtext struct {
	Value string `xml:",chardata"`
}

type xbreak struct {
	Type string `xml:"type,attr"`
}

type xrunProps struct {
	Fonts     *xfonts  `xml:"rFonts"`
	Bold      *xtoggle `xml:"b"`
	Italic    *xtoggle `xml:"i"`
	Underline *xval    `xml:"u"`
	Color     *xval    `xml:"color"`
	Size      *xval    `xml:"sz"`
	Highlight *xval    `xml:"highlight"`
}

type xfonts struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type xtoggle struct {
	Val string `xml:"val,attr"`
}

type xtbl struct {
	Props *xtblProps `xml:"tblPr"`
	Grid  *xtblGrid  `xml:"tblGrid"`
	Rows  []xrow     `xml:"tr"`
}

type xtblProps struct {
	Style *xval `xml:"tblStyle"`
	Just  *xval `xml:"jc"`
}

type xtblGrid struct {
	Cols []xgridCol `xml:"gridCol"`
}

type xgridCol struct {
	W string `xml:"w,attr"`
}

type xrow struct {
	Cells []xcell `xml:"tc"`
}

type xcell struct {
	Props *xcellProps `xml:"tcPr"`
	Paras []xpara     `xml:"p"`
}

type xcellProps struct {
	Borders *xcellBorders `xml:"tcBorders"`
	Shading *xshd         `xml:"shd"`
}

type xcellBorders struct {
	Top    *xedge `xml:"top"`
	Left   *xedge `xml:"left"`
	Bottom *xedge `xml:"bottom"`
	Right  *xedge `xml:"right"`
	Start  *xedge `xml:"start"`
	End    *xedge `xml:"end"`
}

type xedge struct {
	Val   string `xml:"val,attr"`
	Size  string `xml:"sz,attr"`
	Space string `xml:"space,attr"`
	Color string `xml:"color,attr"`
}

type xshd struct {
	Val   string `xml:"val,attr"`
	Color string `xml:"color,attr"`
	Fill  string `xml:"fill,attr"`
}

type xsect struct {
	Headers []xhfref  `xml:"headerReference"`
	Footers []xhfref  `xml:"footerReference"`
	PgSz    *xpgsz    `xml:"pgSz"`
	PgMar   *xpgmar   `xml:"pgMar"`
}

type xhfref struct {
	Type string `xml:"type,attr"`
	ID   string `xml:"id,attr"`
}

type xpgsz struct {
	W      string `xml:"w,attr"`
	H      string `xml:"h,attr"`
	Orient string `xml:"orient,attr"`
}

type xpgmar struct {
	Top    string `xml:"top,attr"`
	Right  string `xml:"right,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Header string `xml:"header,attr"`
	Footer string `xml:"footer,attr"`
	Gutter string `xml:"gutter,attr"`
}

type xdrawing struct {
	Inline *xinline `xml:"inline"`
	Anchor *xinline `xml:"anchor"`
}

type xinline struct {
	Extent  *xextent  `xml:"extent"`
	DocPr   *xdocpr   `xml:"docPr"`
	Graphic *xgraphic `xml:"graphic"`
}

type xextent struct {
	CX string `xml:"cx,attr"`
	CY string `xml:"cy,attr"`
}

type xdocpr struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xgraphic struct {
	Data *xgraphicData `xml:"graphicData"`
}

type xgraphicData struct {
	Pic *xpic `xml:"pic"`
}

type xpic struct {
	BlipFill *xblipFill `xml:"blipFill"`
}

type xblipFill struct {
	Blip *xblip `xml:"blip"`
}

type xblip struct {
	Embed string `xml:"embed,attr"`
}

// parseBody decodes word/document.xml into the model.
func parseBody(data []byte) (*Body, error) {
	var doc xdoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", partDocument, err)
	}

	body := &Body{}
	for _, item := range doc.Body.items {
		switch v := item.(type) {
		case xpara:
			body.Items = append(body.Items, convertParagraph(v))
		case xtbl:
			body.Items = append(body.Items, convertTable(v))
		}
	}
	if doc.Body.sect != nil {
		body.Section = convertSection(*doc.Body.sect)
	}
	return body, nil
}

func convertParagraph(x xpara) *Paragraph {
	p := &Paragraph{}
	if x.Props != nil {
		props := &ParagraphProps{}
		if x.Props.Style != nil {
			props.Style = &Val{Value: x.Props.Style.Val}
		}
		if x.Props.Just != nil {
			props.Just = &Val{Value: x.Props.Just.Val}
		}
		if x.Props.Indent != nil {
			props.Indent = &Indent{
				Left:      atoi(x.Props.Indent.Left),
				Right:     atoi(x.Props.Indent.Right),
				FirstLine: atoi(x.Props.Indent.FirstLine),
				Hanging:   atoi(x.Props.Indent.Hanging),
			}
		}
		if x.Props.Spacing != nil {
			props.Spacing = &Spacing{
				Before:   atoi(x.Props.Spacing.Before),
				After:    atoi(x.Props.Spacing.After),
				Line:     atoi(x.Props.Spacing.Line),
				LineRule: x.Props.Spacing.LineRule,
			}
		}
		p.Props = props
	}
	// Hyperlink text arrives already inlined in x.Runs; the link target
	// itself is not modeled.
	for _, r := range x.Runs {
		p.Runs = append(p.Runs, convertRuns(r)...)
	}
	return p
}

// convertRuns expands one stored run into model runs: a run holding both
// a page break and text becomes two runs, each with one content kind.
func convertRuns(x xrun) []*Run {
	props := convertRunProps(x.Props)
	var out []*Run

	for _, br := range x.Breaks {
		if br.Type == "page" {
			out = append(out, &Run{Props: cloneRunProps(props), Break: &Break{Type: "page"}})
		}
	}
	for _, dr := range x.Drawings {
		if d := convertDrawing(dr); d != nil {
			out = append(out, &Run{Props: cloneRunProps(props), Drawing: d})
		}
	}

	var text string
	for _, t := range x.Texts {
		text += t.Value
	}
	if text != "" || len(out) == 0 {
		r := &Run{Props: props}
		r.SetText(text)
		out = append(out, r)
	}
	return out
}

func convertRunProps(x *xrunProps) *RunProps {
	if x == nil {
		return nil
	}
	props := &RunProps{}
	if x.Fonts != nil {
		props.Fonts = &Fonts{ASCII: x.Fonts.ASCII, HAnsi: x.Fonts.HAnsi}
	}
	if x.Bold != nil {
		props.Bold = &Toggle{Value: x.Bold.Val}
	}
	if x.Italic != nil {
		props.Italic = &Toggle{Value: x.Italic.Val}
	}
	if x.Underline != nil {
		props.Underline = &Val{Value: x.Underline.Val}
	}
	if x.Color != nil {
		props.Color = &Val{Value: x.Color.Val}
	}
	if x.Size != nil {
		props.Size = &Val{Value: x.Size.Val}
	}
	if x.Highlight != nil {
		props.Highlight = &Val{Value: x.Highlight.Val}
	}
	return props
}

func cloneRunProps(p *RunProps) *RunProps {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func convertDrawing(x xdrawing) *Drawing {
	inline := x.Inline
	if inline == nil {
		inline = x.Anchor
	}
	if inline == nil {
		return nil
	}
	d := &Drawing{}
	if inline.Extent != nil {
		d.CX = atoi64(inline.Extent.CX)
		d.CY = atoi64(inline.Extent.CY)
	}
	if inline.DocPr != nil {
		d.ID = atoi(inline.DocPr.ID)
		d.Name = inline.DocPr.Name
	}
	if inline.Graphic != nil && inline.Graphic.Data != nil &&
		inline.Graphic.Data.Pic != nil && inline.Graphic.Data.Pic.BlipFill != nil &&
		inline.Graphic.Data.Pic.BlipFill.Blip != nil {
		d.RelID = inline.Graphic.Data.Pic.BlipFill.Blip.Embed
	}
	return d
}

func convertTable(x xtbl) *Table {
	t := &Table{}
	if x.Props != nil {
		props := &TableProps{}
		if x.Props.Style != nil {
			props.Style = &Val{Value: x.Props.Style.Val}
		}
		if x.Props.Just != nil {
			props.Just = &Val{Value: x.Props.Just.Val}
		}
		t.Props = props
	}
	if x.Grid != nil {
		grid := &TableGrid{}
		for _, col := range x.Grid.Cols {
			grid.Cols = append(grid.Cols, GridCol{W: atoi(col.W)})
		}
		t.Grid = grid
	}
	for _, row := range x.Rows {
		tr := &TableRow{}
		for _, cell := range row.Cells {
			tc := &TableCell{Props: convertCellProps(cell.Props)}
			for _, para := range cell.Paras {
				tc.Paragraphs = append(tc.Paragraphs, convertParagraph(para))
			}
			if len(tc.Paragraphs) == 0 {
				tc.Paragraphs = []*Paragraph{{}}
			}
			tr.Cells = append(tr.Cells, tc)
		}
		t.Rows = append(t.Rows, tr)
	}
	return t
}

func convertCellProps(x *xcellProps) *CellProps {
	if x == nil {
		return nil
	}
	props := &CellProps{}
	if x.Borders != nil {
		borders := &CellBorders{
			Top:    convertEdge(x.Borders.Top),
			Bottom: convertEdge(x.Borders.Bottom),
			Left:   convertEdge(x.Borders.Left),
			Right:  convertEdge(x.Borders.Right),
		}
		// Some producers write start/end instead of left/right.
		if borders.Left == nil {
			borders.Left = convertEdge(x.Borders.Start)
		}
		if borders.Right == nil {
			borders.Right = convertEdge(x.Borders.End)
		}
		props.Borders = borders
	}
	if x.Shading != nil {
		props.Shading = &Shading{Val: x.Shading.Val, Color: x.Shading.Color, Fill: x.Shading.Fill}
	}
	return props
}

func convertEdge(x *xedge) *BorderEdge {
	if x == nil {
		return nil
	}
	return &BorderEdge{Val: x.Val, Size: x.Size, Space: x.Space, Color: x.Color}
}

func convertSection(x xsect) *SectionProps {
	sp := &SectionProps{}
	for _, h := range x.Headers {
		sp.HeaderRefs = append(sp.HeaderRefs, &HeaderRef{Type: h.Type, ID: h.ID})
	}
	for _, f := range x.Footers {
		sp.FooterRefs = append(sp.FooterRefs, &FooterRef{Type: f.Type, ID: f.ID})
	}
	if x.PgSz != nil {
		sp.PageSize = &PageSize{W: atoi(x.PgSz.W), H: atoi(x.PgSz.H), Orient: x.PgSz.Orient}
	}
	if x.PgMar != nil {
		sp.Margins = &PageMargins{
			Top:    atoi(x.PgMar.Top),
			Right:  atoi(x.PgMar.Right),
			Bottom: atoi(x.PgMar.Bottom),
			Left:   atoi(x.PgMar.Left),
			Header: atoi(x.PgMar.Header),
			Footer: atoi(x.PgMar.Footer),
			Gutter: atoi(x.PgMar.Gutter),
		}
	}
	return sp
}

// atoi tolerates the non-numeric attribute values OOXML allows ("auto")
// by returning zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
