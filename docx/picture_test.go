package docx

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	path := filepath.Join(t.TempDir(), "pic.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddPictureScaled(t *testing.T) {
	path := writeTestPNG(t, 200, 100)

	d := New()
	drawing, err := d.AddPicture(path, 2.0)
	if err != nil {
		t.Fatalf("AddPicture: %v", err)
	}
	if drawing.CX != 2*emuPerInch {
		t.Errorf("cx = %d, want %d", drawing.CX, 2*emuPerInch)
	}
	if drawing.CY != emuPerInch {
		t.Errorf("cy = %d, want %d (aspect preserved)", drawing.CY, emuPerInch)
	}
	if drawing.RelID == "" {
		t.Error("no relationship assigned")
	}
	if drawing.Name != "pic.png" {
		t.Errorf("name = %q", drawing.Name)
	}
}

func TestAddPictureNaturalSize(t *testing.T) {
	path := writeTestPNG(t, 96, 48)

	d := New()
	drawing, err := d.AddPicture(path, 0)
	if err != nil {
		t.Fatalf("AddPicture: %v", err)
	}
	if drawing.CX != 96*emuPerPixel || drawing.CY != 48*emuPerPixel {
		t.Errorf("extent = %dx%d", drawing.CX, drawing.CY)
	}
}

func TestAddPictureRoundTrip(t *testing.T) {
	path := writeTestPNG(t, 10, 10)

	d := New()
	d.AddParagraph("before")
	if _, err := d.AddPicture(path, 1.0); err != nil {
		t.Fatalf("AddPicture: %v", err)
	}

	got := saveAndReopen(t, d)
	paras := got.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(paras))
	}

	var found *Drawing
	for _, r := range paras[1].Runs {
		if r.Drawing != nil {
			found = r.Drawing
		}
	}
	if found == nil {
		t.Fatal("drawing lost on round trip")
	}
	if found.CX != emuPerInch {
		t.Errorf("cx = %d, want %d", found.CX, emuPerInch)
	}
	if found.RelID == "" {
		t.Error("relationship ID lost")
	}
}

func TestAddPictureMissingFile(t *testing.T) {
	d := New()
	if _, err := d.AddPicture(filepath.Join(t.TempDir(), "nope.png"), 1.0); err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestAddPictureBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := New()
	if _, err := d.AddPicture(path, 1.0); err == nil {
		t.Fatal("expected decode error")
	}
}
