package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

const documentXMLPath = "word/document.xml"

// zipEntry keeps one archive member's header and raw payload so the
// container can be rewritten without touching unrelated parts.
type zipEntry struct {
	header zip.FileHeader
	data   []byte
}

// Document is an in-memory .docx container exposing its body-level
// tables. The document owns its tables for its whole lifetime; analyses
// derived from them are snapshots and must be re-derived after cell
// mutations if further detection is needed.
type Document struct {
	path    string
	entries []zipEntry
	docXML  []byte
	tables  []*Table
}

// Open reads and parses a .docx file.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docx file: %w", err)
	}

	doc, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// OpenReader parses a .docx container from an in-memory reader.
func OpenReader(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	doc := &Document{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read archive member %s: %w", f.Name, err)
		}
		doc.entries = append(doc.entries, zipEntry{header: f.FileHeader, data: data})
		if f.Name == documentXMLPath {
			doc.docXML = data
		}
	}

	if doc.docXML == nil {
		return nil, fmt.Errorf("not a docx container: missing %s", documentXMLPath)
	}

	tables, err := parseTables(doc.docXML)
	if err != nil {
		return nil, err
	}
	doc.tables = tables
	return doc, nil
}

// Path returns the file path the document was opened from, if any.
func (d *Document) Path() string {
	return d.path
}

// Tables returns the document's body-level tables in document order.
func (d *Document) Tables() []*Table {
	return d.tables
}

// Table returns the table at index i, or nil if i is out of bounds.
func (d *Document) Table(i int) *Table {
	if i < 0 || i >= len(d.tables) {
		return nil
	}
	return d.tables[i]
}

// renderDocumentXML produces document.xml with all pending cell edits
// applied. The stored XML stays pristine so repeated saves are stable.
func (d *Document) renderDocumentXML() []byte {
	var dirty []*Cell
	for _, t := range d.tables {
		dirty = append(dirty, t.dirtyCells()...)
	}
	return spliceCells(d.docXML, dirty)
}

// Save writes the container with all cell edits applied to path. Every
// archive member other than word/document.xml is copied through
// unchanged.
func (d *Document) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := d.SaveTo(out); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SaveTo writes the modified container to w.
func (d *Document) SaveTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	rendered := d.renderDocumentXML()

	for i := range d.entries {
		entry := &d.entries[i]
		data := entry.data
		if entry.header.Name == documentXMLPath {
			data = rendered
		}

		header := entry.header
		fw, err := zw.CreateHeader(&header)
		if err != nil {
			return fmt.Errorf("write archive header %s: %w", entry.header.Name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write archive member %s: %w", entry.header.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}
