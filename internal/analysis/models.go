package analysis

import "fmt"

// TableLayout represents the detected layout category of a table, which
// selects the field location strategy.
type TableLayout string

const (
	// LayoutEmpty marks a table with zero rows.
	LayoutEmpty TableLayout = "empty"
	// LayoutVertical marks label/value pairs across adjacent columns in
	// the same row.
	LayoutVertical TableLayout = "vertical"
	// LayoutHorizontal marks a header row with repeated data rows
	// beneath each labeled column.
	LayoutHorizontal TableLayout = "horizontal"
	// LayoutMixed is the fallback for anything not confidently vertical
	// or horizontal; it triggers a full per-cell scan.
	LayoutMixed TableLayout = "mixed"
)

// IsValid checks if the layout is one of the known categories.
func (l TableLayout) IsValid() bool {
	switch l {
	case LayoutEmpty, LayoutVertical, LayoutHorizontal, LayoutMixed:
		return true
	default:
		return false
	}
}

// AllLayouts returns every valid layout category.
func AllLayouts() []TableLayout {
	return []TableLayout{LayoutEmpty, LayoutVertical, LayoutHorizontal, LayoutMixed}
}

// CellRef addresses one cell by zero-based row and column.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c CellRef) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// FieldLocation records one detected field occurrence in a table.
//
// Field is the base identifier from the pattern dictionary; Key is the
// disambiguated map key (plain identifier for vertical tables,
// identifier_<col> for horizontal, identifier_<row>_<col> for mixed).
// Keeping the base identifier on the struct means fill data is matched
// without any suffix parsing.
type FieldLocation struct {
	Field     string
	Key       string
	LabelText string
	Label     CellRef
	// Values holds the inferred value cell coordinates. They are
	// best-effort guesses: not guaranteed empty, distinct from other
	// fields' cells, or even in bounds. For mixed layouts a value equal
	// to Label means label and value share the cell.
	Values []CellRef
	Layout TableLayout
}

// SharesLabelCell reports whether the value location coincides with the
// label cell, which makes the filler compose "label：value" text.
func (f FieldLocation) SharesLabelCell() bool {
	return len(f.Values) == 1 && f.Values[0] == f.Label
}

// TableAnalysis is the per-table detection snapshot: dimensions, layout,
// and the located fields keyed by disambiguated key. It is computed once
// and never mutated; filling changes cell contents only, so re-run the
// analyzer explicitly if detection is needed after a fill.
type TableAnalysis struct {
	Index    int
	RowCount int
	ColCount int
	Layout   TableLayout
	// Headers holds the first-row texts for horizontal tables.
	Headers []string
	Fields  map[string]FieldLocation
	// Keys preserves field detection order for deterministic iteration.
	Keys []string
}

// DocumentAnalysis aggregates the per-table snapshots of one document.
type DocumentAnalysis struct {
	Tables     []TableAnalysis
	FieldCount int
}

// CellWrite records a single attempted cell write during a fill.
type CellWrite struct {
	Table int
	Key   string
	Field string
	Cell  CellRef
	Text  string
	// Err holds the failure reason for writes that were skipped; empty
	// for successful writes.
	Err string
}

// FillReport summarizes a fill pass. Per-cell failures are recorded
// here rather than aborting the pass.
type FillReport struct {
	Filled int
	Failed int
	Writes []CellWrite
}
