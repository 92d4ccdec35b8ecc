package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// EMUs per inch and per pixel at the 96dpi Word assumes.
const (
	emuPerInch  = 914400
	emuPerPixel = 9525
)

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// Drawing is an inline picture: extent in EMUs plus the relationship ID
// of the image part. Anything fancier in an opened document (anchored
// shapes, effects) is reduced to this on round-trip.
type Drawing struct {
	XMLName xml.Name `xml:"w:drawing"`
	CX      int64
	CY      int64
	ID      int
	Name    string
	RelID   string
}

// MarshalXML writes the full wp:inline/a:graphic/pic:pic element tree.
// The boilerplate is fixed; only extent, docPr, and the blip embed vary.
func (d *Drawing) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	open := func(name string, attrs ...xml.Attr) error {
		return e.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
	}
	closeEl := func(name string) error {
		return e.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
	}
	empty := func(name string, attrs ...xml.Attr) error {
		if err := open(name, attrs...); err != nil {
			return err
		}
		return closeEl(name)
	}
	attr := func(name, value string) xml.Attr {
		return xml.Attr{Name: xml.Name{Local: name}, Value: value}
	}

	cx := strconv.FormatInt(d.CX, 10)
	cy := strconv.FormatInt(d.CY, 10)
	id := strconv.Itoa(d.ID)

	if err := open("w:drawing"); err != nil {
		return err
	}
	if err := open("wp:inline",
		attr("distT", "0"), attr("distB", "0"), attr("distL", "0"), attr("distR", "0")); err != nil {
		return err
	}
	if err := empty("wp:extent", attr("cx", cx), attr("cy", cy)); err != nil {
		return err
	}
	if err := empty("wp:docPr", attr("id", id), attr("name", d.Name)); err != nil {
		return err
	}
	if err := open("a:graphic"); err != nil {
		return err
	}
	if err := open("a:graphicData",
		attr("uri", "http://schemas.openxmlformats.org/drawingml/2006/picture")); err != nil {
		return err
	}
	if err := open("pic:pic"); err != nil {
		return err
	}

	if err := open("pic:nvPicPr"); err != nil {
		return err
	}
	if err := empty("pic:cNvPr", attr("id", id), attr("name", d.Name)); err != nil {
		return err
	}
	if err := empty("pic:cNvPicPr"); err != nil {
		return err
	}
	if err := closeEl("pic:nvPicPr"); err != nil {
		return err
	}

	if err := open("pic:blipFill"); err != nil {
		return err
	}
	if err := empty("a:blip", attr("r:embed", d.RelID)); err != nil {
		return err
	}
	if err := open("a:stretch"); err != nil {
		return err
	}
	if err := empty("a:fillRect"); err != nil {
		return err
	}
	if err := closeEl("a:stretch"); err != nil {
		return err
	}
	if err := closeEl("pic:blipFill"); err != nil {
		return err
	}

	if err := open("pic:spPr"); err != nil {
		return err
	}
	if err := open("a:xfrm"); err != nil {
		return err
	}
	if err := empty("a:off", attr("x", "0"), attr("y", "0")); err != nil {
		return err
	}
	if err := empty("a:ext", attr("cx", cx), attr("cy", cy)); err != nil {
		return err
	}
	if err := closeEl("a:xfrm"); err != nil {
		return err
	}
	if err := open("a:prstGeom", attr("prst", "rect")); err != nil {
		return err
	}
	if err := empty("a:avLst"); err != nil {
		return err
	}
	if err := closeEl("a:prstGeom"); err != nil {
		return err
	}
	if err := closeEl("pic:spPr"); err != nil {
		return err
	}

	if err := closeEl("pic:pic"); err != nil {
		return err
	}
	if err := closeEl("a:graphicData"); err != nil {
		return err
	}
	if err := closeEl("a:graphic"); err != nil {
		return err
	}
	if err := closeEl("wp:inline"); err != nil {
		return err
	}
	return closeEl("w:drawing")
}

// AddPicture appends a paragraph holding the image at imagePath. A
// positive widthInches scales the image to that width with the aspect
// ratio preserved; zero keeps the natural size at 96dpi.
func (d *Document) AddPicture(imagePath string, widthInches float64) (*Drawing, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image %s", ErrNotExist, imagePath)
		}
		return nil, fmt.Errorf("read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(imagePath), err)
	}
	contentType, ok := imageContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image %s has no dimensions", filepath.Base(imagePath))
	}

	var cx, cy int64
	if widthInches > 0 {
		cx = int64(widthInches * emuPerInch)
		cy = int64(float64(cx) * float64(cfg.Height) / float64(cfg.Width))
	} else {
		cx = int64(cfg.Width) * emuPerPixel
		cy = int64(cfg.Height) * emuPerPixel
	}

	mediaName := d.pkg.nextMediaName(format)
	d.pkg.set(mediaName, data)
	if err := d.ensureDefaultContentType(format, contentType); err != nil {
		return nil, err
	}

	rels, err := d.documentRels()
	if err != nil {
		return nil, err
	}
	relID := rels.add(relTypeImage, "media/"+filepath.Base(mediaName))
	if err := d.setDocumentRels(rels); err != nil {
		return nil, err
	}

	drawing := &Drawing{
		CX:    cx,
		CY:    cy,
		ID:    d.nextDrawingID(),
		Name:  filepath.Base(imagePath),
		RelID: relID,
	}
	p := &Paragraph{}
	p.Runs = append(p.Runs, &Run{Drawing: drawing})
	d.body.Items = append(d.body.Items, p)
	return drawing, nil
}

func (d *Document) nextDrawingID() int {
	max := 0
	for _, p := range d.Paragraphs() {
		for _, r := range p.Runs {
			if r.Drawing != nil && r.Drawing.ID > max {
				max = r.Drawing.ID
			}
		}
	}
	return max + 1
}

// ensureDefaultContentType registers a Default extension mapping in
// [Content_Types].xml by splicing before the closing tag, leaving the
// rest of the part untouched.
func (d *Document) ensureDefaultContentType(ext, contentType string) error {
	raw, ok := d.pkg.get(partContentTypes)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPartMissing, partContentTypes)
	}
	if bytes.Contains(raw, []byte(`Extension="`+ext+`"`)) {
		return nil
	}
	idx := bytes.LastIndex(raw, []byte("</"))
	if idx < 0 {
		return fmt.Errorf("malformed %s: no closing tag", partContentTypes)
	}
	frag := fmt.Sprintf(`<Default Extension=%q ContentType=%q/>`, ext, contentType)
	out := make([]byte, 0, len(raw)+len(frag))
	out = append(out, raw[:idx]...)
	out = append(out, frag...)
	out = append(out, raw[idx:]...)
	d.pkg.set(partContentTypes, out)
	return nil
}
