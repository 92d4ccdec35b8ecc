package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Error values for consistent error handling by callers.
var (
	ErrNotExist     = errors.New("document does not exist")
	ErrPartMissing  = errors.New("package part missing")
	ErrNotWriteable = errors.New("document is not writeable")
	ErrBadIndex     = errors.New("index out of range")
	ErrBadRange     = errors.New("invalid text range")
)

// Well-known part names inside a .docx package.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCoreProps    = "docProps/core.xml"
	partAppProps     = "docProps/app.xml"
	partFootnotes    = "word/footnotes.xml"
	partEndnotes     = "word/endnotes.xml"
)

// opcPackage holds the raw parts of an Open Packaging Conventions zip.
// Parts the document model does not rewrite survive open→save verbatim,
// in their original order.
type opcPackage struct {
	names []string
	parts map[string][]byte
}

func newPackage() *opcPackage {
	return &opcPackage{parts: make(map[string][]byte)}
}

func readPackage(r io.ReaderAt, size int64) (*opcPackage, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open docx package: %w", err)
	}

	pkg := newPackage()
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		pkg.set(f.Name, data)
	}

	if _, ok := pkg.parts[partDocument]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartMissing, partDocument)
	}
	return pkg, nil
}

func (p *opcPackage) get(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// set stores a part, keeping the first-seen order for existing names and
// appending new names at the end.
func (p *opcPackage) set(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

func (p *opcPackage) has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

func (p *opcPackage) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.names {
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
	}
	return zw.Close()
}

// nextMediaName returns an unused word/media/imageN name for the given
// file extension (without the dot).
func (p *opcPackage) nextMediaName(ext string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("word/media/image%d.%s", i, ext)
		if !p.has(name) {
			return name
		}
	}
}

// relTarget resolves a relationship target relative to word/ into a
// package part name (e.g. "header1.xml" → "word/header1.xml").
func relTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("word", target)
}

// NormalizePath appends the .docx extension when the path lacks one.
// Every filename argument of the tool layer goes through this.
func NormalizePath(p string) string {
	if strings.HasSuffix(strings.ToLower(p), ".docx") {
		return p
	}
	return p + ".docx"
}

// CheckWriteable reports whether path can be created or overwritten.
// For a missing file the parent directory is checked; for an existing
// file an append-mode open probes for locks and permissions.
func CheckWriteable(p string) error {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		dir := path.Dir(p)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: directory %s does not exist", ErrNotWriteable, dir)
		}
		f, err := os.CreateTemp(dir, ".docsmith-probe-*")
		if err != nil {
			return fmt.Errorf("%w: directory %s is not writeable", ErrNotWriteable, dir)
		}
		name := f.Name()
		_ = f.Close()
		_ = os.Remove(name)
		return nil
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotWriteable, err)
	}
	return f.Close()
}

// bufferReaderAt adapts a byte slice for readPackage.
func bufferReaderAt(data []byte) (io.ReaderAt, int64) {
	return bytes.NewReader(data), int64(len(data))
}
