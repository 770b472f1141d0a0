package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// parseTables streams through the OOXML tokens of word/document.xml and
// collects the body-level tables. Nested tables (a w:tbl inside a w:tc)
// are not tracked individually; their text is ignored so a cell's text
// reflects only its own paragraphs.
//
// Cell content byte spans are recorded so edited cells can be spliced
// back into the XML on save. xml.Decoder.InputOffset reports the offset
// just past the most recent token, so the offset captured before reading
// a token is that token's start. A span covers only the cell's block
// content: the w:tcPr properties element stays outside it, so widths,
// borders, and merge markers survive a rewrite.
func parseTables(docXML []byte) ([]*Table, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	var (
		tables       []*Table
		current      *Table
		row          []*Cell
		cell         *Cell
		cellText     bytes.Buffer
		cellTagStart int64
		tblDepth     int
		inText       bool
	)

	for {
		tokStart := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					current = &Table{}
				}
			case "tr":
				if tblDepth == 1 {
					row = []*Cell{}
				}
			case "tc":
				if tblDepth == 1 {
					cellTagStart = tokStart
					cell = &Cell{contentStart: dec.InputOffset()}
					cellText.Reset()
				}
			case "t":
				if tblDepth == 1 && cell != nil {
					inText = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tblDepth == 1 && current != nil {
					tables = append(tables, current)
					current = nil
				}
				tblDepth--
			case "tr":
				if tblDepth == 1 && current != nil && row != nil {
					current.rows = append(current.rows, row)
					row = nil
				}
			case "tcPr":
				// Cell properties (width, borders, merge markers) are not
				// content; the writable span starts after them.
				if tblDepth == 1 && cell != nil {
					cell.contentStart = dec.InputOffset()
				}
			case "tc":
				if tblDepth == 1 && cell != nil {
					cell.contentEnd = tokStart
					if dec.InputOffset() == tokStart {
						// Synthesized end of a self-closing <w:tc/>: there
						// is no span between tags, so the splice must
						// replace the whole element.
						cell.contentStart = cellTagStart
						cell.wrapTag = true
					}
					cell.text = cellText.String()
					row = append(row, cell)
					cell = nil
				}
			case "t":
				inText = false
			case "p":
				// Paragraph breaks inside a cell become newlines.
				if tblDepth == 1 && cell != nil {
					cellText.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText {
				cellText.Write(t)
			}
		}
	}

	return tables, nil
}

// cellXML renders the replacement inner XML for an edited cell: a single
// paragraph with one run holding the new text.
func cellXML(text string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	_ = xml.EscapeText(&buf, []byte(text))
	buf.WriteString(`</w:t></w:r></w:p>`)
	return buf.Bytes()
}

// spliceCells rebuilds document.xml with every dirty cell's span replaced
// by its new content. Spans of distinct body-level cells never overlap,
// so a single ordered pass suffices. The input XML is left untouched,
// keeping the operation repeatable.
func spliceCells(docXML []byte, cells []*Cell) []byte {
	if len(cells) == 0 {
		return docXML
	}

	var out bytes.Buffer
	out.Grow(len(docXML))
	var pos int64
	for _, c := range cells {
		out.Write(docXML[pos:c.contentStart])
		if c.wrapTag {
			out.WriteString("<w:tc>")
			out.Write(cellXML(c.text))
			out.WriteString("</w:tc>")
		} else {
			out.Write(cellXML(c.text))
		}
		pos = c.contentEnd
	}
	out.Write(docXML[pos:])
	return out.Bytes()
}
