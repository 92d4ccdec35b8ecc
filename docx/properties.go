package docx

import (
	"encoding/xml"
	"fmt"
	"time"
)

// CoreProperties are the docProps/core.xml metadata fields the tools
// read and write. Zero-value strings mean "unset".
type CoreProperties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	LastModifiedBy string
	Revision       int
	Created        time.Time
	Modified       time.Time
}

func newCoreProperties() *CoreProperties {
	now := time.Now().UTC()
	return &CoreProperties{Created: now, Modified: now}
}

type corePropsOut struct {
	XMLName        xml.Name  `xml:"cp:coreProperties"`
	XmlnsCP        string    `xml:"xmlns:cp,attr"`
	XmlnsDC        string    `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string    `xml:"xmlns:dcterms,attr"`
	XmlnsXSI       string    `xml:"xmlns:xsi,attr"`
	Title          string    `xml:"dc:title,omitempty"`
	Subject        string    `xml:"dc:subject,omitempty"`
	Creator        string    `xml:"dc:creator,omitempty"`
	Keywords       string    `xml:"cp:keywords,omitempty"`
	LastModifiedBy string    `xml:"cp:lastModifiedBy,omitempty"`
	Revision       int       `xml:"cp:revision,omitempty"`
	Created        *dcDate   `xml:"dcterms:created,omitempty"`
	Modified       *dcDate   `xml:"dcterms:modified,omitempty"`
}

type dcDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func (p *CoreProperties) marshal() ([]byte, error) {
	out := corePropsOut{
		XmlnsCP:        "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		XmlnsDC:        "http://purl.org/dc/elements/1.1/",
		XmlnsDCTerms:   "http://purl.org/dc/terms/",
		XmlnsXSI:       "http://www.w3.org/2001/XMLSchema-instance",
		Title:          p.Title,
		Subject:        p.Subject,
		Creator:        p.Creator,
		Keywords:       p.Keywords,
		LastModifiedBy: p.LastModifiedBy,
		Revision:       p.Revision,
	}
	if !p.Created.IsZero() {
		out.Created = &dcDate{Type: "dcterms:W3CDTF", Value: p.Created.Format(time.RFC3339)}
	}
	if !p.Modified.IsZero() {
		out.Modified = &dcDate{Type: "dcterms:W3CDTF", Value: p.Modified.Format(time.RFC3339)}
	}
	data, err := xml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", partCoreProps, err)
	}
	return append([]byte(xml.Header), data...), nil
}

type corePropsIn struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Revision       string `xml:"revision"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

func parseCoreProperties(data []byte) (*CoreProperties, error) {
	var in corePropsIn
	if err := xml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse %s: %w", partCoreProps, err)
	}
	p := &CoreProperties{
		Title:          in.Title,
		Subject:        in.Subject,
		Creator:        in.Creator,
		Keywords:       in.Keywords,
		LastModifiedBy: in.LastModifiedBy,
		Revision:       atoi(in.Revision),
	}
	p.Created = parseDCDate(in.Created)
	p.Modified = parseDCDate(in.Modified)
	return p, nil
}

// parseDCDate accepts the W3CDTF variants found in the wild.
func parseDCDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
