package docx

import (
	"encoding/xml"
	"fmt"
)

// Relationship types used by this package.
const (
	relTypeImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// Relationship is one entry in a .rels part.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// relationships models a .rels part. The part uses a default namespace
// with no prefixes, so one struct set reads and writes it.
type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []Relationship `xml:"Relationship"`
}

func parseRelationships(data []byte) (*relationships, error) {
	rels := &relationships{}
	if len(data) > 0 {
		if err := xml.Unmarshal(data, rels); err != nil {
			return nil, fmt.Errorf("parse relationships: %w", err)
		}
	}
	rels.Xmlns = "http://schemas.openxmlformats.org/package/2006/relationships"
	return rels, nil
}

func (r *relationships) marshal() ([]byte, error) {
	data, err := xml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal relationships: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// target returns the target for a relationship ID, or "".
func (r *relationships) target(id string) string {
	for _, rel := range r.Rels {
		if rel.ID == id {
			return rel.Target
		}
	}
	return ""
}

// add appends a relationship with the next free rIdN and returns the ID.
func (r *relationships) add(relType, target string) string {
	max := 0
	for _, rel := range r.Rels {
		var n int
		if _, err := fmt.Sscanf(rel.ID, "rId%d", &n); err == nil && n > max {
			max = n
		}
	}
	id := fmt.Sprintf("rId%d", max+1)
	r.Rels = append(r.Rels, Relationship{ID: id, Type: relType, Target: target})
	return id
}

// documentRels parses word/_rels/document.xml.rels.
func (d *Document) documentRels() (*relationships, error) {
	data, _ := d.pkg.get(partDocumentRels)
	return parseRelationships(data)
}

func (d *Document) setDocumentRels(rels *relationships) error {
	data, err := rels.marshal()
	if err != nil {
		return err
	}
	d.pkg.set(partDocumentRels, data)
	return nil
}
