package analysis

import (
	"github.com/smartfill/smartfill/internal/docx"
	"github.com/smartfill/smartfill/internal/fields"
)

// minLabelCount is how many label matches a candidate row or column
// needs before a table is confidently classified as horizontal or
// vertical. Anything below falls back to mixed.
const minLabelCount = 2

// LayoutClassifier decides which location strategy applies to a table.
// It is a cheap heuristic over the first column and first row, not a
// guarantee; mixed is the default for anything unconvincing.
type LayoutClassifier struct {
	dict *fields.Dictionary
}

// NewLayoutClassifier creates a classifier over the given dictionary.
func NewLayoutClassifier(dict *fields.Dictionary) *LayoutClassifier {
	return &LayoutClassifier{dict: dict}
}

// Classify maps a table to exactly one layout category.
func (lc *LayoutClassifier) Classify(table *docx.Table) TableLayout {
	if table.RowCount() == 0 {
		return LayoutEmpty
	}

	if lc.dict.LabelCount(table.FirstColumnTexts()) >= minLabelCount {
		return LayoutVertical
	}

	if lc.dict.LabelCount(table.FirstRowTexts()) >= minLabelCount {
		return LayoutHorizontal
	}

	return LayoutMixed
}
