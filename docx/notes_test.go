package docx

import (
	"archive/zip"
	"bytes"
	"testing"
)

// buildPackage assembles a minimal .docx from raw parts for tests that
// need content the writer does not produce.
func buildPackage(t *testing.T, parts map[string]string) *Document {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	d, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	return d
}

const minimalDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body><w:p><w:r><w:t>body</w:t></w:r></w:p></w:body>
</w:document>`

func TestNotes(t *testing.T) {
	d := buildPackage(t, map[string]string{
		"word/document.xml": minimalDocumentXML,
		"word/footnotes.xml": `<?xml version="1.0"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:footnote w:id="-1"><w:p><w:r><w:t>separator</w:t></w:r></w:p></w:footnote>
<w:footnote w:id="0"><w:p><w:r><w:t>continuation</w:t></w:r></w:p></w:footnote>
<w:footnote w:id="1"><w:p><w:r><w:t>first note</w:t></w:r></w:p></w:footnote>
<w:footnote w:id="2"><w:p><w:r><w:t>second </w:t></w:r><w:r><w:t>note</w:t></w:r></w:p></w:footnote>
</w:footnotes>`,
		"word/endnotes.xml": `<?xml version="1.0"?>
<w:endnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:endnote w:id="1"><w:p><w:r><w:t>closing remark</w:t></w:r></w:p></w:endnote>
</w:endnotes>`,
	})

	notes, err := d.Notes()
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes.Footnotes) != 2 {
		t.Fatalf("footnotes = %d, want 2 (separators skipped)", len(notes.Footnotes))
	}
	if notes.Footnotes[0].ID != "1" || notes.Footnotes[0].Text != "first note" {
		t.Errorf("footnote[0] = %+v", notes.Footnotes[0])
	}
	if notes.Footnotes[1].Text != "second note" {
		t.Errorf("footnote[1] = %+v", notes.Footnotes[1])
	}
	if len(notes.Endnotes) != 1 || notes.Endnotes[0].Text != "closing remark" {
		t.Errorf("endnotes = %+v", notes.Endnotes)
	}
}

func TestNotesAbsentParts(t *testing.T) {
	d := buildPackage(t, map[string]string{"word/document.xml": minimalDocumentXML})
	notes, err := d.Notes()
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes.Footnotes) != 0 || len(notes.Endnotes) != 0 {
		t.Errorf("notes = %+v, want empty", notes)
	}
}
