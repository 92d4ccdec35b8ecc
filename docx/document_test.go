package docx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func saveAndReopen(t *testing.T, d *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	if err := d.SaveTo(&buf); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	reopened, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	return reopened
}

func TestNewDocumentRoundTrip(t *testing.T) {
	d := New()
	d.AddHeading("Quarterly Report", 1)
	p := d.AddParagraph("Numbers are up.")
	if !p.SetAlignment("center") {
		t.Fatalf("SetAlignment(center) rejected")
	}
	tbl := d.AddTable(2, 3)
	tbl.Cell(0, 0).SetText("Region")
	tbl.Cell(1, 2).SetText("42")
	d.AddPageBreak()

	got := saveAndReopen(t, d)

	paras := got.Paragraphs()
	if len(paras) != 3 {
		t.Fatalf("paragraphs = %d, want 3", len(paras))
	}
	if paras[0].StyleID() != "Heading1" {
		t.Errorf("heading style = %q, want Heading1", paras[0].StyleID())
	}
	if paras[0].Text() != "Quarterly Report" {
		t.Errorf("heading text = %q", paras[0].Text())
	}
	if paras[1].Alignment() != AlignCenter {
		t.Errorf("alignment = %q, want center", paras[1].Alignment())
	}

	tables := got.Tables()
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if rows, cols := len(tables[0].Rows), tables[0].ColumnCount(); rows != 2 || cols != 3 {
		t.Errorf("table = %dx%d, want 2x3", rows, cols)
	}
	if text := tables[0].Cell(0, 0).Text(); text != "Region" {
		t.Errorf("cell(0,0) = %q, want Region", text)
	}
	if text := tables[0].Cell(1, 2).Text(); text != "42" {
		t.Errorf("cell(1,2) = %q, want 42", text)
	}
	if tables[0].StyleID() != "TableGrid" {
		t.Errorf("table style = %q, want TableGrid", tables[0].StyleID())
	}

	breakFound := false
	for _, r := range paras[2].Runs {
		if r.IsPageBreak() {
			breakFound = true
		}
	}
	if !breakFound {
		t.Error("page break lost on round trip")
	}
}

func TestBodyOrderPreserved(t *testing.T) {
	d := New()
	d.AddParagraph("before")
	d.AddTable(1, 1)
	d.AddParagraph("after")

	got := saveAndReopen(t, d)
	items := got.Body().Items
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if _, ok := items[0].(*Paragraph); !ok {
		t.Errorf("items[0] = %T, want *Paragraph", items[0])
	}
	if _, ok := items[1].(*Table); !ok {
		t.Errorf("items[1] = %T, want *Table", items[1])
	}
	if _, ok := items[2].(*Paragraph); !ok {
		t.Errorf("items[2] = %T, want *Paragraph", items[2])
	}
}

func TestRunFormattingRoundTrip(t *testing.T) {
	d := New()
	p := d.AddParagraph("")
	r := p.AddRun("styled")
	r.SetBold(true)
	r.SetItalic(true)
	r.SetUnderline(true)
	r.SetColor("FF0000")
	r.SetSizePt(14)
	r.SetFont("Georgia")

	got := saveAndReopen(t, d).Paragraphs()[0].Runs[0]
	if !got.Bold() || !got.Italic() || !got.Underlined() {
		t.Errorf("toggles lost: bold=%v italic=%v underline=%v", got.Bold(), got.Italic(), got.Underlined())
	}
	if got.ColorHex() != "FF0000" {
		t.Errorf("color = %q, want FF0000", got.ColorHex())
	}
	if got.SizePt() != 14 {
		t.Errorf("size = %v, want 14", got.SizePt())
	}
	if got.FontName() != "Georgia" {
		t.Errorf("font = %q, want Georgia", got.FontName())
	}
}

func TestDeleteParagraph(t *testing.T) {
	d := New()
	d.AddParagraph("one")
	d.AddTable(1, 1)
	d.AddParagraph("two")
	d.AddParagraph("three")

	if err := d.DeleteParagraph(1); err != nil {
		t.Fatalf("DeleteParagraph(1): %v", err)
	}
	paras := d.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(paras))
	}
	if paras[0].Text() != "one" || paras[1].Text() != "three" {
		t.Errorf("got %q, %q", paras[0].Text(), paras[1].Text())
	}
	if len(d.Tables()) != 1 {
		t.Error("table removed by paragraph delete")
	}

	if err := d.DeleteParagraph(5); !errors.Is(err, ErrBadIndex) {
		t.Errorf("DeleteParagraph(5) = %v, want ErrBadIndex", err)
	}
}

func TestSaveBumpsRevision(t *testing.T) {
	d := New()
	d.AddParagraph("v1")

	first := saveAndReopen(t, d)
	if first.Properties().Revision != 1 {
		t.Fatalf("revision = %d, want 1", first.Properties().Revision)
	}
	second := saveAndReopen(t, first)
	if second.Properties().Revision != 2 {
		t.Errorf("revision = %d, want 2", second.Properties().Revision)
	}
	if second.Properties().Modified.IsZero() {
		t.Error("modified timestamp not set")
	}
}

func TestSaveAndOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.docx")

	d := New()
	d.Properties().Title = "On Disk"
	d.AddParagraph("persisted")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Properties().Title != "On Disk" {
		t.Errorf("title = %q", got.Properties().Title)
	}
	if got.Text() != "persisted" {
		t.Errorf("text = %q", got.Text())
	}

	if _, err := Open(filepath.Join(dir, "missing.docx")); !errors.Is(err, ErrNotExist) {
		t.Errorf("Open(missing) = %v, want ErrNotExist", err)
	}
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "orig.docx")
	d := New()
	d.AddParagraph("copy me")
	if err := d.Save(src); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst, err := Copy(src, "")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if dst != filepath.Join(dir, "orig_copy.docx") {
		t.Errorf("dst = %q", dst)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("copy missing: %v", err)
	}

	if _, err := Copy(filepath.Join(dir, "nope.docx"), ""); !errors.Is(err, ErrNotExist) {
		t.Errorf("Copy(missing) = %v, want ErrNotExist", err)
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"report":        "report.docx",
		"report.docx":   "report.docx",
		"Report.DOCX":   "Report.DOCX",
		"notes.old":     "notes.old.docx",
		"dir/report":    "dir/report.docx",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckWriteable(t *testing.T) {
	dir := t.TempDir()
	if err := CheckWriteable(filepath.Join(dir, "new.docx")); err != nil {
		t.Errorf("new file in writeable dir: %v", err)
	}
	if err := CheckWriteable(filepath.Join(dir, "no-such-dir", "new.docx")); !errors.Is(err, ErrNotWriteable) {
		t.Errorf("missing dir = %v, want ErrNotWriteable", err)
	}

	existing := filepath.Join(dir, "existing.docx")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckWriteable(existing); err != nil {
		t.Errorf("writeable file: %v", err)
	}
}

func TestWordCount(t *testing.T) {
	d := New()
	d.AddParagraph("one two three")
	d.AddParagraph("")
	d.AddParagraph("four")
	if got := d.WordCount(); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
}

func TestInfo(t *testing.T) {
	d := New()
	d.Properties().Title = "Stats"
	d.Properties().Creator = "qa"
	d.AddHeading("H", 1)
	d.AddParagraph("a b")
	d.AddTable(1, 2)

	info, err := d.Info(false, false)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Title != "Stats" || info.Author != "qa" {
		t.Errorf("title=%q author=%q", info.Title, info.Author)
	}
	if info.ParagraphCount != 2 || info.TableCount != 1 {
		t.Errorf("counts: paragraphs=%d tables=%d", info.ParagraphCount, info.TableCount)
	}
	if info.WordCount != 3 {
		t.Errorf("word count = %d, want 3", info.WordCount)
	}
	if info.PageCount != 1 || len(info.Sections) != 1 {
		t.Errorf("page count = %d, sections = %d", info.PageCount, len(info.Sections))
	}
	if info.Sections[0].PageWidth != 12240 || info.Sections[0].Orientation != "portrait" {
		t.Errorf("section = %+v", info.Sections[0])
	}
}
