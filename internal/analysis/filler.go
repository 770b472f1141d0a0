package analysis

import (
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/smartfill/smartfill/internal/docx"
)

// labelValueSeparator joins label and value when both share a cell.
const labelValueSeparator = "："

// Filler writes caller data into the value cells of a located mapping.
// Filling is best-effort: an individual bad coordinate is recorded and
// skipped, never aborting the pass.
type Filler struct {
	logger *zap.Logger
}

// NewFiller creates a filler.
func NewFiller(logger *zap.Logger) *Filler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filler{logger: logger}
}

// Fill writes each data value into the cells its field was bound to.
// Data keys are base field identifiers; keys with no detected location
// anywhere are silently ignored, as forms commonly lack fields. Values
// are coerced to display text. The document's cells are mutated in
// place; the analysis itself is left untouched.
func (f *Filler) Fill(doc *docx.Document, da *DocumentAnalysis, data map[string]any) FillReport {
	report := FillReport{}
	for _, ta := range da.Tables {
		table := doc.Table(ta.Index)
		if table == nil {
			f.logger.Warn("analysis references missing table", zap.Int("table", ta.Index))
			continue
		}
		f.fillTable(table, ta, data, &report)
	}

	f.logger.Info("fill complete",
		zap.Int("filled", report.Filled),
		zap.Int("failed", report.Failed),
	)
	return report
}

func (f *Filler) fillTable(table *docx.Table, ta TableAnalysis, data map[string]any, report *FillReport) {
	for _, key := range ta.Keys {
		loc := ta.Fields[key]
		value, ok := data[loc.Field]
		if !ok {
			continue
		}

		text := cast.ToString(value)
		switch loc.Layout {
		case LayoutVertical:
			f.write(table, ta.Index, loc, loc.Values[0], text, report)
		case LayoutHorizontal:
			// Only the first data row receives the value; one value is
			// never spread across the remaining rows.
			if len(loc.Values) > 0 {
				f.write(table, ta.Index, loc, loc.Values[0], text, report)
			}
		case LayoutMixed:
			target := loc.Values[0]
			if loc.SharesLabelCell() {
				text = loc.LabelText + labelValueSeparator + text
			}
			f.write(table, ta.Index, loc, target, text, report)
		}
	}
}

// write sets one cell's text, tallying the outcome in the report.
func (f *Filler) write(table *docx.Table, tableIdx int, loc FieldLocation, target CellRef, text string, report *FillReport) {
	entry := CellWrite{
		Table: tableIdx,
		Key:   loc.Key,
		Field: loc.Field,
		Cell:  target,
		Text:  text,
	}

	cell, ok := table.CellAt(target.Row, target.Col)
	if !ok {
		entry.Err = "value cell out of table bounds"
		report.Failed++
		report.Writes = append(report.Writes, entry)
		f.logger.Warn("skipping unwritable cell",
			zap.Int("table", tableIdx),
			zap.String("key", loc.Key),
			zap.String("cell", target.String()),
		)
		return
	}

	cell.SetText(text)
	report.Filled++
	report.Writes = append(report.Writes, entry)
	f.logger.Debug("filled cell",
		zap.Int("table", tableIdx),
		zap.String("key", loc.Key),
		zap.String("label", loc.LabelText),
		zap.String("cell", target.String()),
	)
}
