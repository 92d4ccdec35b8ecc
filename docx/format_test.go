package docx

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReplaceAll(t *testing.T) {
	d := New()
	d.AddParagraph("the old value and the old habit")
	d.AddParagraph("nothing here")
	tbl := d.AddTable(1, 1)
	tbl.Cell(0, 0).SetText("old cell")

	count := d.ReplaceAll("old", "new")
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if got := d.Paragraphs()[0].Text(); got != "the new value and the new habit" {
		t.Errorf("paragraph = %q", got)
	}
	if got := d.Tables()[0].Cell(0, 0).Text(); got != "new cell" {
		t.Errorf("cell = %q", got)
	}

	if count := d.ReplaceAll("absent", "x"); count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestFormatRange(t *testing.T) {
	d := New()
	d.AddParagraph("make this word bold")

	on := true
	target, err := d.FormatRange(0, 5, 14, RangeFormat{Bold: &on, Color: "red", SizePt: 12})
	if err != nil {
		t.Fatalf("FormatRange: %v", err)
	}
	if target != "this word" {
		t.Errorf("target = %q, want %q", target, "this word")
	}

	p := d.Paragraphs()[0]
	if p.Text() != "make this word bold" {
		t.Errorf("text changed: %q", p.Text())
	}
	if len(p.Runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(p.Runs))
	}
	if p.Runs[0].Bold() || p.Runs[2].Bold() {
		t.Error("formatting leaked outside the range")
	}
	mid := p.Runs[1]
	if !mid.Bold() {
		t.Error("target run not bold")
	}
	if mid.ColorHex() != "FF0000" {
		t.Errorf("color = %q, want FF0000", mid.ColorHex())
	}
	if mid.SizePt() != 12 {
		t.Errorf("size = %v, want 12", mid.SizePt())
	}

	got := saveAndReopen(t, d)
	if !got.Paragraphs()[0].Runs[1].Bold() {
		t.Error("bold lost on round trip")
	}
}

func TestFormatRangeWholeParagraph(t *testing.T) {
	d := New()
	d.AddParagraph("all of it")

	on := true
	if _, err := d.FormatRange(0, 0, len("all of it"), RangeFormat{Italic: &on}); err != nil {
		t.Fatalf("FormatRange: %v", err)
	}
	p := d.Paragraphs()[0]
	if len(p.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(p.Runs))
	}
	if !p.Runs[0].Italic() {
		t.Error("italic not applied")
	}
}

func TestFormatRangeMultibyte(t *testing.T) {
	d := New()
	d.AddParagraph("café bar")

	on := true
	target, err := d.FormatRange(0, 0, 4, RangeFormat{Bold: &on})
	if err != nil {
		t.Fatalf("FormatRange: %v", err)
	}
	if target != "café" {
		t.Errorf("target = %q, want %q", target, "café")
	}

	p := d.Paragraphs()[0]
	if p.Text() != "café bar" {
		t.Errorf("text changed: %q", p.Text())
	}
	if len(p.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(p.Runs))
	}
	for i, r := range p.Runs {
		if !utf8.ValidString(r.TextValue()) {
			t.Errorf("run %d holds invalid UTF-8: %q", i, r.TextValue())
		}
	}
	if !p.Runs[0].Bold() || p.Runs[1].Bold() {
		t.Error("bold applied to the wrong run")
	}

	// Positions count characters: "café bar" has 8, not 9.
	if _, err := d.FormatRange(0, 0, 9, RangeFormat{}); !errors.Is(err, ErrBadRange) {
		t.Errorf("end past character count = %v, want ErrBadRange", err)
	}
	if _, err := d.FormatRange(0, 0, 8, RangeFormat{}); err != nil {
		t.Errorf("full range by characters: %v", err)
	}
}

func TestFormatRangeErrors(t *testing.T) {
	d := New()
	d.AddParagraph("short")

	if _, err := d.FormatRange(3, 0, 2, RangeFormat{}); !errors.Is(err, ErrBadIndex) {
		t.Errorf("bad index = %v, want ErrBadIndex", err)
	}
	for _, tc := range [][2]int{{-1, 3}, {0, 99}, {4, 2}, {2, 2}} {
		if _, err := d.FormatRange(0, tc[0], tc[1], RangeFormat{}); !errors.Is(err, ErrBadRange) {
			t.Errorf("range %v = %v, want ErrBadRange", tc, err)
		}
	}
}

func TestFormattedText(t *testing.T) {
	d := New()
	d.AddHeading("Title", 1)
	p := d.AddParagraph("plain and ")
	r := p.AddRun("loud")
	r.SetBold(true)
	r.SetSizePt(14)
	tbl := d.AddTable(1, 2)
	tbl.Cell(0, 0).SetText("a")
	tbl.Cell(0, 1).SetText("b")
	for _, run := range tbl.Cell(0, 1).Paragraphs[0].Runs {
		run.SetBold(true)
	}

	out := d.FormattedText()

	for _, want := range []string{
		`[PARAGRAPH style="heading 1" align="LEFT"]`,
		"[/PARAGRAPH]",
		"[bold size=14.0pt]loud[/]",
		"[TABLE rows=1 cols=2]",
		"[ROW]",
		"[CELL]a\n[/CELL]",
		"[CELL][bold]b[/bold]\n[/CELL]",
		"[/TABLE]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
