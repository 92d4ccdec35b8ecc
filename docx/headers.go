package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// RunFormat is the formatting summary of one header or footer run.
type RunFormat struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold"`
	Italic    bool   `json:"italic"`
	Underline bool   `json:"underline"`
}

// HeaderFooterInfo describes one header or footer. Text and
// FormattedRuns are only populated when the section defines its own
// header or footer rather than inheriting the previous section's.
type HeaderFooterInfo struct {
	LinkedToPrevious bool        `json:"linked_to_previous"`
	Text             string      `json:"text,omitempty"`
	FormattedRuns    []RunFormat `json:"formatted_runs,omitempty"`
}

// SectionHeader pairs a section index with its header.
type SectionHeader struct {
	SectionIndex int               `json:"section_index"`
	Header       *HeaderFooterInfo `json:"header"`
}

// SectionFooter pairs a section index with its footer.
type SectionFooter struct {
	SectionIndex int               `json:"section_index"`
	Footer       *HeaderFooterInfo `json:"footer"`
}

// HeadersFooters is the get_headers_and_footers result.
type HeadersFooters struct {
	Headers []SectionHeader `json:"headers"`
	Footers []SectionFooter `json:"footers"`
}

// hdrPart reads w:hdr and w:ftr parts; both are paragraph lists.
type hdrPart struct {
	Paras []xpara `xml:"p"`
}

// HeadersFooters collects header and footer content per section by
// resolving the sectPr references through document.xml.rels.
func (d *Document) HeadersFooters() (*HeadersFooters, error) {
	rels, err := d.documentRels()
	if err != nil {
		return nil, err
	}

	result := &HeadersFooters{
		Headers: []SectionHeader{},
		Footers: []SectionFooter{},
	}
	for i := range d.Sections() {
		sp := d.body.Section

		var headerRef, footerRef string
		if sp != nil {
			headerRef = pickRef(headerRefIDs(sp))
			footerRef = pickRef(footerRefIDs(sp))
		}

		header, err := d.headerFooterInfo(rels, headerRef)
		if err != nil {
			return nil, err
		}
		footer, err := d.headerFooterInfo(rels, footerRef)
		if err != nil {
			return nil, err
		}

		result.Headers = append(result.Headers, SectionHeader{SectionIndex: i, Header: header})
		result.Footers = append(result.Footers, SectionFooter{SectionIndex: i, Footer: footer})
	}
	return result, nil
}

type refPair struct {
	typ string
	id  string
}

func headerRefIDs(sp *SectionProps) []refPair {
	var out []refPair
	for _, r := range sp.HeaderRefs {
		out = append(out, refPair{typ: r.Type, id: r.ID})
	}
	return out
}

func footerRefIDs(sp *SectionProps) []refPair {
	var out []refPair
	for _, r := range sp.FooterRefs {
		out = append(out, refPair{typ: r.Type, id: r.ID})
	}
	return out
}

// pickRef prefers the default header/footer over first-page and
// even-page variants.
func pickRef(refs []refPair) string {
	for _, r := range refs {
		if r.typ == "default" {
			return r.id
		}
	}
	if len(refs) > 0 {
		return refs[0].id
	}
	return ""
}

func (d *Document) headerFooterInfo(rels *relationships, relID string) (*HeaderFooterInfo, error) {
	if relID == "" {
		return &HeaderFooterInfo{LinkedToPrevious: true}, nil
	}
	target := rels.target(relID)
	if target == "" {
		return &HeaderFooterInfo{LinkedToPrevious: true}, nil
	}

	raw, ok := d.pkg.get(relTarget(target))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartMissing, relTarget(target))
	}
	var part hdrPart
	if err := xml.Unmarshal(raw, &part); err != nil {
		return nil, fmt.Errorf("parse %s: %w", relTarget(target), err)
	}

	info := &HeaderFooterInfo{FormattedRuns: []RunFormat{}}
	var lines []string
	for _, xp := range part.Paras {
		p := convertParagraph(xp)
		lines = append(lines, p.Text())
		for _, r := range p.Runs {
			if strings.TrimSpace(r.TextValue()) == "" {
				continue
			}
			info.FormattedRuns = append(info.FormattedRuns, RunFormat{
				Text:      r.TextValue(),
				Bold:      r.Bold(),
				Italic:    r.Italic(),
				Underline: r.Underlined(),
			})
		}
	}
	info.Text = strings.Join(lines, "\n")
	return info, nil
}
