package analysis

import (
	"fmt"

	"github.com/smartfill/smartfill/internal/docx"
	"github.com/smartfill/smartfill/internal/fields"
)

// FieldLocator scans a classified table and binds each recognized label
// cell to its inferred value cell(s). One strategy per layout category.
type FieldLocator struct {
	dict *fields.Dictionary
}

// NewFieldLocator creates a locator over the given dictionary.
func NewFieldLocator(dict *fields.Dictionary) *FieldLocator {
	return &FieldLocator{dict: dict}
}

// Locate produces the field mapping for a table under the given layout.
// Fields with no matching label are simply absent; this is never an
// error. The returned key slice preserves detection order.
func (fl *FieldLocator) Locate(table *docx.Table, layout TableLayout) (map[string]FieldLocation, []string) {
	locations := make(map[string]FieldLocation)
	var keys []string

	add := func(loc FieldLocation) {
		if _, exists := locations[loc.Key]; !exists {
			keys = append(keys, loc.Key)
		}
		// Re-binding an existing key keeps its detection position but
		// takes the new location: last write wins.
		locations[loc.Key] = loc
	}

	switch layout {
	case LayoutVertical:
		fl.locateVertical(table, add)
	case LayoutHorizontal:
		fl.locateHorizontal(table, add)
	case LayoutMixed:
		fl.locateMixed(table, add)
	case LayoutEmpty:
		// Nothing to scan.
	}

	return locations, keys
}

// locateVertical binds label cells to the cell in the next column of the
// same row. The last column of each row is never a label. Keys are the
// bare field identifiers, so a label recurring in later rows overwrites
// the earlier binding.
func (fl *FieldLocator) locateVertical(table *docx.Table, add func(FieldLocation)) {
	for rowIdx, row := range table.Rows() {
		for colIdx := 0; colIdx < len(row)-1; colIdx++ {
			text := row[colIdx].Text()
			id, ok := fl.dict.Match(text)
			if !ok {
				continue
			}
			add(FieldLocation{
				Field:     id,
				Key:       id,
				LabelText: text,
				Label:     CellRef{Row: rowIdx, Col: colIdx},
				Values:    []CellRef{{Row: rowIdx, Col: colIdx + 1}},
				Layout:    LayoutVertical,
			})
		}
	}
}

// locateHorizontal scans only the header row and binds each labeled
// column to every data row beneath it. Keys carry the column index so
// duplicate headers stay distinct. A table with no data rows yields no
// bindings.
func (fl *FieldLocator) locateHorizontal(table *docx.Table, add func(FieldLocation)) {
	if table.RowCount() < 2 {
		return
	}

	for colIdx, cell := range table.Row(0) {
		text := cell.Text()
		id, ok := fl.dict.Match(text)
		if !ok {
			continue
		}

		values := make([]CellRef, 0, table.RowCount()-1)
		for rowIdx := 1; rowIdx < table.RowCount(); rowIdx++ {
			values = append(values, CellRef{Row: rowIdx, Col: colIdx})
		}
		add(FieldLocation{
			Field:     id,
			Key:       fmt.Sprintf("%s_%d", id, colIdx),
			LabelText: text,
			Label:     CellRef{Row: 0, Col: colIdx},
			Values:    values,
			Layout:    LayoutHorizontal,
		})
	}
}

// locateMixed scans every non-empty cell and infers the value location
// per label. Keys carry row and column so the same field may recur
// anywhere in the table.
func (fl *FieldLocator) locateMixed(table *docx.Table, add func(FieldLocation)) {
	for rowIdx, row := range table.Rows() {
		for colIdx, cell := range row {
			text := cell.Text()
			if text == "" {
				continue
			}
			id, ok := fl.dict.Match(text)
			if !ok {
				continue
			}
			add(FieldLocation{
				Field:     id,
				Key:       fmt.Sprintf("%s_%d_%d", id, rowIdx, colIdx),
				LabelText: text,
				Label:     CellRef{Row: rowIdx, Col: colIdx},
				Values:    []CellRef{fl.findValueCell(table, rowIdx, colIdx)},
				Layout:    LayoutMixed,
			})
		}
	}
}

// findValueCell picks the most likely value location for a label at
// (row, col): the right neighbor if it does not look like a label, else
// the cell below, else the label cell itself. Out-of-bounds candidates
// are simply not usable; the search never fails.
func (fl *FieldLocator) findValueCell(table *docx.Table, row, col int) CellRef {
	if right, ok := table.CellAt(row, col+1); ok && !fl.dict.IsLabel(right.Text()) {
		return CellRef{Row: row, Col: col + 1}
	}

	if below, ok := table.CellAt(row+1, col); ok && !fl.dict.IsLabel(below.Text()) {
		return CellRef{Row: row + 1, Col: col}
	}

	// Label and value share the cell; the filler composes "label：value".
	return CellRef{Row: row, Col: col}
}
