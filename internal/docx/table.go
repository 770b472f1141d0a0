package docx

import (
	"strings"
)

// Cell is a single table cell with readable and writable plain text.
// Setting text marks the cell dirty; the new content is spliced into
// word/document.xml when the owning document is saved.
type Cell struct {
	text  string
	dirty bool

	// Byte span of the cell's block content within the original
	// word/document.xml, excluding the w:tcPr properties element. Equal
	// offsets mark an empty but writable insert point. Zero for cells
	// built in memory via NewTable.
	contentStart int64
	contentEnd   int64

	// wrapTag is set for cells parsed from a self-closing <w:tc/>: the
	// span covers the whole element and the splice re-wraps the new
	// content in tc tags.
	wrapTag bool
}

// Text returns the cell's plain text with surrounding whitespace trimmed.
// Paragraph breaks inside the cell are joined with newlines.
func (c *Cell) Text() string {
	return strings.TrimSpace(c.text)
}

// SetText destructively replaces the cell's content. All existing
// paragraphs in the cell are dropped in favor of a single run.
func (c *Cell) SetText(text string) {
	c.text = text
	c.dirty = true
}

// Table is an ordered sequence of rows of cells. Row widths may be
// irregular: merged cells collapse, so rows are not padded to a common
// column count.
type Table struct {
	rows [][]*Cell
}

// NewTable builds an in-memory table from plain cell texts. Tables built
// this way are not attached to a document and cannot be saved; they exist
// for programmatic analysis and tests.
func NewTable(cells [][]string) *Table {
	t := &Table{}
	for _, row := range cells {
		cellRow := make([]*Cell, 0, len(row))
		for _, text := range row {
			cellRow = append(cellRow, &Cell{text: text})
		}
		t.rows = append(t.rows, cellRow)
	}
	return t
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColCount returns the widest row's cell count.
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Row returns the cells of row i, or nil if i is out of bounds.
func (t *Table) Row(i int) []*Cell {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// Rows returns all rows of the table.
func (t *Table) Rows() [][]*Cell {
	return t.rows
}

// CellAt returns the cell at (row, col) and whether the coordinate is
// within the table's actual bounds.
func (t *Table) CellAt(row, col int) (*Cell, bool) {
	if row < 0 || row >= len(t.rows) {
		return nil, false
	}
	if col < 0 || col >= len(t.rows[row]) {
		return nil, false
	}
	return t.rows[row][col], true
}

// TextAt returns the trimmed text at (row, col), or the empty string if
// the coordinate is out of bounds.
func (t *Table) TextAt(row, col int) string {
	cell, ok := t.CellAt(row, col)
	if !ok {
		return ""
	}
	return cell.Text()
}

// FirstColumnTexts returns the text of each row's first cell, in row
// order. Rows without cells are skipped.
func (t *Table) FirstColumnTexts() []string {
	texts := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if len(row) > 0 {
			texts = append(texts, row[0].Text())
		}
	}
	return texts
}

// FirstRowTexts returns the cell texts of row 0, or nil for an empty table.
func (t *Table) FirstRowTexts() []string {
	if len(t.rows) == 0 {
		return nil
	}
	texts := make([]string, 0, len(t.rows[0]))
	for _, cell := range t.rows[0] {
		texts = append(texts, cell.Text())
	}
	return texts
}

// dirtyCells returns the table's modified cells that carry a document
// span, in document order.
func (t *Table) dirtyCells() []*Cell {
	var cells []*Cell
	for _, row := range t.rows {
		for _, cell := range row {
			if cell.dirty && cell.contentEnd > 0 && cell.contentEnd >= cell.contentStart {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}
