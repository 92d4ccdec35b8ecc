package search

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/docsmith/docsmith/catalog"
)

// computeFingerprint generates a stable hash of the document slice.
// The fingerprint changes when document content changes, enabling
// efficient cache invalidation for the bleve index.
func computeFingerprint(docs []catalog.SearchDoc) string {
	h := sha256.New()

	for _, doc := range docs {
		h.Write([]byte(doc.Path))
		h.Write([]byte{0}) // separator
		h.Write([]byte(doc.Title))
		h.Write([]byte{0})
		h.Write([]byte(doc.Text))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
