package docx

import "testing"

func TestHyperlinkRunsKeepDocumentOrder(t *testing.T) {
	d := buildPackage(t, map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body><w:p>
<w:r><w:t xml:space="preserve">See </w:t></w:r>
<w:hyperlink r:id="rId9"><w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>the site</w:t></w:r></w:hyperlink>
<w:r><w:t xml:space="preserve"> now</w:t></w:r>
</w:p></w:body>
</w:document>`,
	})

	p := d.Paragraphs()[0]
	if got := p.Text(); got != "See the site now" {
		t.Fatalf("text = %q, want %q", got, "See the site now")
	}
	if len(p.Runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(p.Runs))
	}
	if !p.Runs[1].Underlined() {
		t.Error("hyperlink run lost its formatting")
	}

	if count := d.ReplaceAll("the site", "the docs"); count != 1 {
		t.Errorf("ReplaceAll = %d, want 1", count)
	}
	if got := p.Text(); got != "See the docs now" {
		t.Errorf("text after replace = %q", got)
	}
}
