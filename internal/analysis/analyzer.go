// Package analysis implements the table form detection pipeline: layout
// classification, field location, form filling, and mapping export.
package analysis

import (
	"go.uber.org/zap"

	"github.com/smartfill/smartfill/internal/docx"
	"github.com/smartfill/smartfill/internal/fields"
)

// Analyzer derives the field mapping of a document's tables. The result
// is a one-shot snapshot of the current cell contents; callers that
// mutate cells afterwards must analyze again if they need fresh
// detection.
type Analyzer struct {
	classifier *LayoutClassifier
	locator    *FieldLocator
	logger     *zap.Logger
}

// NewAnalyzer creates an analyzer over the given pattern dictionary.
func NewAnalyzer(dict *fields.Dictionary, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		classifier: NewLayoutClassifier(dict),
		locator:    NewFieldLocator(dict),
		logger:     logger,
	}
}

// AnalyzeDocument classifies and scans every table of the document.
func (a *Analyzer) AnalyzeDocument(doc *docx.Document) *DocumentAnalysis {
	result := &DocumentAnalysis{}
	for idx, table := range doc.Tables() {
		ta := a.AnalyzeTable(table, idx)
		result.Tables = append(result.Tables, ta)
		result.FieldCount += len(ta.Keys)

		a.logger.Debug("analyzed table",
			zap.Int("table", idx),
			zap.Int("rows", ta.RowCount),
			zap.Int("cols", ta.ColCount),
			zap.String("layout", string(ta.Layout)),
			zap.Int("fields", len(ta.Keys)),
		)
	}

	a.logger.Info("document analysis complete",
		zap.Int("tables", len(result.Tables)),
		zap.Int("fields", result.FieldCount),
	)
	return result
}

// AnalyzeTable classifies one table and locates its fields.
func (a *Analyzer) AnalyzeTable(table *docx.Table, index int) TableAnalysis {
	layout := a.classifier.Classify(table)
	locations, keys := a.locator.Locate(table, layout)

	ta := TableAnalysis{
		Index:    index,
		RowCount: table.RowCount(),
		ColCount: table.ColCount(),
		Layout:   layout,
		Fields:   locations,
		Keys:     keys,
	}
	if layout == LayoutHorizontal {
		ta.Headers = table.FirstRowTexts()
	}
	return ta
}
