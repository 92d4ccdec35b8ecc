package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Note is one footnote or endnote.
type Note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Notes is the get_footnotes_and_endnotes result.
type Notes struct {
	Footnotes []Note `json:"footnotes"`
	Endnotes  []Note `json:"endnotes"`
}

type xnotes struct {
	Footnotes []xnote `xml:"footnote"`
	Endnotes  []xnote `xml:"endnote"`
}

type xnote struct {
	ID    string  `xml:"id,attr"`
	Paras []xpara `xml:"p"`
}

// Notes extracts footnotes and endnotes from their package parts. The
// separator entries Word stores under ids -1 and 0 are skipped. A
// document without either part returns empty lists.
func (d *Document) Notes() (*Notes, error) {
	result := &Notes{Footnotes: []Note{}, Endnotes: []Note{}}

	footnotes, err := d.parseNotes(partFootnotes)
	if err != nil {
		return nil, err
	}
	result.Footnotes = footnotes

	endnotes, err := d.parseNotes(partEndnotes)
	if err != nil {
		return nil, err
	}
	result.Endnotes = endnotes

	return result, nil
}

func (d *Document) parseNotes(part string) ([]Note, error) {
	out := []Note{}
	raw, ok := d.pkg.get(part)
	if !ok {
		return out, nil
	}

	var parsed xnotes
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", part, err)
	}

	entries := parsed.Footnotes
	if part == partEndnotes {
		entries = parsed.Endnotes
	}
	for _, n := range entries {
		if n.ID == "" || n.ID == "-1" || n.ID == "0" {
			continue
		}
		var sb strings.Builder
		for _, xp := range n.Paras {
			sb.WriteString(convertParagraph(xp).Text())
		}
		out = append(out, Note{ID: n.ID, Text: sb.String()})
	}
	return out, nil
}
