// Package docx reads and writes Word documents in the OOXML
// WordprocessingML format, covering the subset the document tools need:
// paragraphs, runs with direct formatting, tables, inline pictures,
// styles, section geometry, headers, footers, and notes.
//
// # Usage
//
// [New] creates a blank document; [Open] loads one from disk:
//
//	doc := docx.New()
//	doc.AddHeading("Report", 1)
//	doc.AddParagraph("Hello.")
//	if err := doc.Save("report.docx"); err != nil {
//	    ...
//	}
//
// # Round-tripping
//
// A document is an OPC zip of XML parts. Only the parts this package
// models are rewritten on save (word/document.xml, word/styles.xml,
// docProps/core.xml, plus picture bookkeeping); every other part is
// copied through byte for byte, in its original order. Within the body,
// content the model does not represent (fields, anchored shapes from
// other producers, hyperlink targets) is reduced to its visible text.
//
// # Units
//
// The stored XML uses twentieths of a point for page geometry and
// indentation, half-points for font sizes, and EMUs for picture extents.
// Accessors convert where noted; raw struct fields hold stored units.
//
// # Concurrency
//
// A Document is not safe for concurrent use. Callers that share
// documents across goroutines serialize access; the tool layer does
// open-mutate-save under its own lock.
package docx
