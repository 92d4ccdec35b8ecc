package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Document is an open .docx file: the parsed body plus every raw package
// part. Only the parts the model rewrites (document, styles, core
// properties, picture bookkeeping) change on save; the rest round-trips
// untouched.
type Document struct {
	pkg   *opcPackage
	body  *Body
	props *CoreProperties

	styles *StyleSheet // lazy; non-nil once read or modified
}

type xmlDocumentOut struct {
	XMLName  xml.Name `xml:"w:document"`
	XmlnsW   string   `xml:"xmlns:w,attr"`
	XmlnsR   string   `xml:"xmlns:r,attr"`
	XmlnsWP  string   `xml:"xmlns:wp,attr"`
	XmlnsA   string   `xml:"xmlns:a,attr"`
	XmlnsPic string   `xml:"xmlns:pic,attr"`
	Body     *Body    `xml:"w:body"`
}

// New creates a blank document: US Letter, one-inch margins, with the
// Normal style plus Heading 1-9 and Table Grid pre-registered, matching
// what the create_document tool promises.
func New() *Document {
	pkg := newPackage()
	pkg.set(partContentTypes, []byte(tmplContentTypes))
	pkg.set(partRootRels, []byte(tmplRootRels))
	pkg.set(partDocumentRels, []byte(tmplDocumentRels))
	pkg.set(partStyles, []byte(tmplStyles))
	pkg.set(partAppProps, []byte(tmplAppProps))
	pkg.set(partCoreProps, nil) // serialized on save

	d := &Document{
		pkg:   pkg,
		body:  &Body{Section: defaultSection()},
		props: newCoreProperties(),
	}
	d.Styles().EnsureHeadingStyles()
	d.Styles().EnsureTableGrid()
	return d
}

// Open reads a .docx file from disk.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return OpenReader(f, info.Size())
}

// OpenReader reads a .docx package from r.
func OpenReader(r io.ReaderAt, size int64) (*Document, error) {
	pkg, err := readPackage(r, size)
	if err != nil {
		return nil, err
	}

	data, _ := pkg.get(partDocument)
	body, err := parseBody(data)
	if err != nil {
		return nil, err
	}

	props := newCoreProperties()
	if raw, ok := pkg.get(partCoreProps); ok && len(raw) > 0 {
		props, err = parseCoreProperties(raw)
		if err != nil {
			return nil, err
		}
	}

	return &Document{pkg: pkg, body: body, props: props}, nil
}

// OpenBytes reads a .docx package from an in-memory buffer.
func OpenBytes(data []byte) (*Document, error) {
	r, size := bufferReaderAt(data)
	return OpenReader(r, size)
}

// Save writes the document to path, creating or replacing the file.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if err := d.SaveTo(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// SaveTo serializes the package to w. The modified timestamp is bumped
// and the revision incremented on every save.
func (d *Document) SaveTo(w io.Writer) error {
	docXML, err := d.marshalDocument()
	if err != nil {
		return err
	}
	d.pkg.set(partDocument, docXML)

	if d.styles != nil && d.styles.dirty {
		stylesXML, err := d.styles.marshal()
		if err != nil {
			return err
		}
		d.pkg.set(partStyles, stylesXML)
		d.styles.dirty = false
	}

	d.props.Modified = time.Now().UTC()
	d.props.Revision++
	coreXML, err := d.props.marshal()
	if err != nil {
		return err
	}
	d.pkg.set(partCoreProps, coreXML)

	return d.pkg.writeTo(w)
}

func (d *Document) marshalDocument() ([]byte, error) {
	out := xmlDocumentOut{
		XmlnsW:   nsW,
		XmlnsR:   nsR,
		XmlnsWP:  nsWP,
		XmlnsA:   nsA,
		XmlnsPic: nsPic,
		Body:     d.body,
	}
	data, err := xml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", partDocument, err)
	}
	return append([]byte(xml.Header), data...), nil
}

// Properties returns the document's core properties for reading and
// modification.
func (d *Document) Properties() *CoreProperties {
	return d.props
}

// Body returns the ordered document content.
func (d *Document) Body() *Body {
	return d.body
}

// Paragraphs returns the body paragraphs (table content excluded).
func (d *Document) Paragraphs() []*Paragraph {
	return d.body.Paragraphs()
}

// Tables returns the body tables.
func (d *Document) Tables() []*Table {
	return d.body.Tables()
}

// AddParagraph appends a paragraph with the given text.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.AddRun(text)
	}
	d.body.Items = append(d.body.Items, p)
	return p
}

// AddHeading appends a heading paragraph. Levels outside 1-9 are
// clamped. When the heading style is unavailable the caller is expected
// to fall back to direct formatting; see Styles().HasStyle.
func (d *Document) AddHeading(text string, level int) *Paragraph {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	p := d.AddParagraph(text)
	p.SetStyleID(fmt.Sprintf("Heading%d", level))
	return p
}

// AddTable appends a rows×cols table styled as Table Grid when the
// style exists.
func (d *Document) AddTable(rows, cols int) *Table {
	t := NewTable(rows, cols)
	if d.Styles().HasStyle("TableGrid") {
		t.SetStyleID("TableGrid")
	}
	d.body.Items = append(d.body.Items, t)
	return t
}

// AddPageBreak appends a paragraph holding a single page-break run.
func (d *Document) AddPageBreak() {
	p := &Paragraph{}
	p.Runs = append(p.Runs, &Run{Break: &Break{Type: "page"}})
	d.body.Items = append(d.body.Items, p)
}

// DeleteParagraph removes the paragraph at index (0-based over body
// paragraphs, tables excluded).
func (d *Document) DeleteParagraph(index int) error {
	seen := 0
	for i, item := range d.body.Items {
		if _, ok := item.(*Paragraph); !ok {
			continue
		}
		if seen == index {
			d.body.Items = append(d.body.Items[:i], d.body.Items[i+1:]...)
			return nil
		}
		seen++
	}
	return fmt.Errorf("%w: paragraph %d of %d", ErrBadIndex, index, seen)
}

// Text extracts all plain text: body paragraphs first, then table cell
// paragraphs, newline separated.
func (d *Document) Text() string {
	var lines []string
	for _, p := range d.Paragraphs() {
		lines = append(lines, p.Text())
	}
	for _, t := range d.Tables() {
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				for _, p := range cell.Paragraphs {
					lines = append(lines, p.Text())
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// WordCount counts whitespace-separated words across body paragraphs.
func (d *Document) WordCount() int {
	count := 0
	for _, p := range d.Paragraphs() {
		count += len(strings.Fields(p.Text()))
	}
	return count
}

// Copy duplicates the document file at src to dst with file metadata
// preserved as far as a plain byte copy allows. When dst is empty a
// "_copy" suffix is derived from src.
func Copy(src, dst string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, src)
		}
		return "", err
	}
	if dst == "" {
		base := strings.TrimSuffix(src, ".docx")
		dst = base + "_copy.docx"
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write copy: %w", err)
	}
	return dst, nil
}
