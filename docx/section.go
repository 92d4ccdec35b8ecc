package docx

import "encoding/xml"

// SectionProps is the body-final w:sectPr.
type SectionProps struct {
	XMLName    xml.Name     `xml:"w:sectPr"`
	HeaderRefs []*HeaderRef `xml:"w:headerReference,omitempty"`
	FooterRefs []*FooterRef `xml:"w:footerReference,omitempty"`
	PageSize   *PageSize    `xml:"w:pgSz,omitempty"`
	Margins    *PageMargins `xml:"w:pgMar,omitempty"`
}

// HeaderRef is w:headerReference; ID is the relationship to the header part.
type HeaderRef struct {
	Type string `xml:"w:type,attr"`
	ID   string `xml:"r:id,attr"`
}

// FooterRef is w:footerReference.
type FooterRef struct {
	Type string `xml:"w:type,attr"`
	ID   string `xml:"r:id,attr"`
}

// PageSize is w:pgSz in twentieths of a point.
type PageSize struct {
	W      int    `xml:"w:w,attr"`
	H      int    `xml:"w:h,attr"`
	Orient string `xml:"w:orient,attr,omitempty"`
}

// PageMargins is w:pgMar in twentieths of a point.
type PageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// defaultSection is US Letter, portrait, one-inch margins: what a blank
// Word document starts with.
func defaultSection() *SectionProps {
	return &SectionProps{
		PageSize: &PageSize{W: 12240, H: 15840},
		Margins: &PageMargins{
			Top: 1440, Right: 1440, Bottom: 1440, Left: 1440,
			Header: 720, Footer: 720,
		},
	}
}

// Section describes one document section for the info tools. Values are
// in twentieths of a point, matching the stored XML.
type Section struct {
	Index        int    `json:"index"`
	PageWidth    int    `json:"page_width"`
	PageHeight   int    `json:"page_height"`
	LeftMargin   int    `json:"left_margin"`
	RightMargin  int    `json:"right_margin"`
	TopMargin    int    `json:"top_margin"`
	BottomMargin int    `json:"bottom_margin"`
	Orientation  string `json:"orientation"`
}

// Sections returns section descriptions. Only the body-final section is
// modeled, so a document always reports at least one.
func (d *Document) Sections() []Section {
	sp := d.body.Section
	if sp == nil {
		sp = defaultSection()
	}
	s := Section{Orientation: "portrait"}
	if sp.PageSize != nil {
		s.PageWidth = sp.PageSize.W
		s.PageHeight = sp.PageSize.H
		if sp.PageSize.Orient == "landscape" {
			s.Orientation = "landscape"
		}
	}
	if sp.Margins != nil {
		s.LeftMargin = sp.Margins.Left
		s.RightMargin = sp.Margins.Right
		s.TopMargin = sp.Margins.Top
		s.BottomMargin = sp.Margins.Bottom
	}
	return []Section{s}
}
