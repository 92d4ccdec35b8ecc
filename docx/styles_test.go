package docx

import (
	"strings"
	"testing"
)

func TestNewDocumentStyles(t *testing.T) {
	s := New().Styles()

	for _, id := range []string{"Normal", "Heading1", "Heading9", "TableGrid"} {
		if !s.HasStyle(id) {
			t.Errorf("missing style %s", id)
		}
	}

	info, ok := s.Lookup("heading 1")
	if !ok {
		t.Fatal("Lookup by name failed")
	}
	if info.ID != "Heading1" {
		t.Errorf("ID = %q, want Heading1", info.ID)
	}
}

func TestStyleLookupCaseInsensitive(t *testing.T) {
	s := New().Styles()
	for _, q := range []string{"heading1", "HEADING1", "Heading 1", "table grid"} {
		if !s.HasStyle(q) {
			t.Errorf("HasStyle(%q) = false", q)
		}
	}
	if s.HasStyle("NoSuchStyle") {
		t.Error("HasStyle(NoSuchStyle) = true")
	}
}

func TestAddParagraphStyle(t *testing.T) {
	d := New()
	bold := true
	err := d.Styles().AddParagraphStyle(CustomStyle{
		Name:   "Callout Text",
		Bold:   &bold,
		SizePt: 11,
		Font:   "Consolas",
		Color:  "blue",
	})
	if err != nil {
		t.Fatalf("AddParagraphStyle: %v", err)
	}
	if !d.Styles().HasStyle("Callout Text") {
		t.Fatal("style not registered")
	}

	// Duplicate creation is a no-op.
	if err := d.Styles().AddParagraphStyle(CustomStyle{Name: "Callout Text"}); err != nil {
		t.Fatalf("duplicate AddParagraphStyle: %v", err)
	}

	got := saveAndReopen(t, d).Styles()
	info, ok := got.Lookup("Callout Text")
	if !ok {
		t.Fatal("style lost on round trip")
	}
	if info.ID != "CalloutText" {
		t.Errorf("ID = %q, want CalloutText", info.ID)
	}
	if info.Font == nil {
		t.Fatal("font info missing")
	}
	if !info.Font.Bold || info.Font.SizePt != 11 || info.Font.Name != "Consolas" {
		t.Errorf("font = %+v", info.Font)
	}
	if info.Font.Color != "0000FF" {
		t.Errorf("color = %q, want 0000FF", info.Font.Color)
	}
}

func TestAddParagraphStyleUnknownBase(t *testing.T) {
	d := New()
	err := d.Styles().AddParagraphStyle(CustomStyle{Name: "Derived", BasedOn: "Nope"})
	if err != nil {
		t.Fatalf("AddParagraphStyle: %v", err)
	}
	info, _ := d.Styles().Lookup("Derived")
	if info.BasedOn != "Normal" {
		t.Errorf("base = %q, want Normal fallback", info.BasedOn)
	}
}

func TestStylesSpliceKeepsDefaults(t *testing.T) {
	d := New()
	if err := d.Styles().AddParagraphStyle(CustomStyle{Name: "Extra"}); err != nil {
		t.Fatal(err)
	}
	data, err := d.Styles().marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<w:docDefaults>") {
		t.Error("docDefaults dropped")
	}
	if !strings.Contains(out, `w:styleId="Extra"`) {
		t.Error("added style missing")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</w:styles>") {
		t.Errorf("malformed tail: %q", out[len(out)-40:])
	}
}

func TestStyleIDFromName(t *testing.T) {
	if got := styleIDFromName("My Fancy Style"); got != "MyFancyStyle" {
		t.Errorf("got %q", got)
	}
}
