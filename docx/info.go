package docx

import "time"

// Info is the get_document_info result: core properties plus body
// statistics and section geometry.
type Info struct {
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	Subject        string          `json:"subject"`
	Keywords       string          `json:"keywords"`
	Created        string          `json:"created"`
	Modified       string          `json:"modified"`
	LastModifiedBy string          `json:"last_modified_by"`
	Revision       int             `json:"revision"`
	PageCount      int             `json:"page_count"`
	WordCount      int             `json:"word_count"`
	ParagraphCount int             `json:"paragraph_count"`
	TableCount     int             `json:"table_count"`
	Sections       []Section       `json:"sections"`
	HeadersFooters *HeadersFooters `json:"headers_and_footers,omitempty"`
	Notes          *Notes          `json:"notes,omitempty"`
}

// Info summarizes the document. PageCount is the section count; the
// package format stores no rendered page total.
func (d *Document) Info(includeHeadersFooters, includeNotes bool) (*Info, error) {
	sections := d.Sections()
	info := &Info{
		Title:          d.props.Title,
		Author:         d.props.Creator,
		Subject:        d.props.Subject,
		Keywords:       d.props.Keywords,
		Created:        formatInfoTime(d.props.Created),
		Modified:       formatInfoTime(d.props.Modified),
		LastModifiedBy: d.props.LastModifiedBy,
		Revision:       d.props.Revision,
		PageCount:      len(sections),
		WordCount:      d.WordCount(),
		ParagraphCount: len(d.Paragraphs()),
		TableCount:     len(d.Tables()),
		Sections:       sections,
	}

	if includeHeadersFooters {
		hf, err := d.HeadersFooters()
		if err != nil {
			return nil, err
		}
		info.HeadersFooters = hf
	}
	if includeNotes {
		notes, err := d.Notes()
		if err != nil {
			return nil, err
		}
		info.Notes = notes
	}
	return info, nil
}

func formatInfoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
