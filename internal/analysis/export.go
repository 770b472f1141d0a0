package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Exporter serializes a document analysis for human review before a
// fill is committed. Export carries no business logic; it renders the
// snapshot as-is.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

type exportField struct {
	Field      string    `json:"field"`
	Label      string    `json:"label"`
	Layout     string    `json:"layout"`
	LabelCell  CellRef   `json:"label_cell"`
	ValueCells []CellRef `json:"value_cells"`
}

type exportTable struct {
	TableIndex int                    `json:"table_index"`
	Dimensions string                 `json:"dimensions"`
	Layout     string                 `json:"layout"`
	Headers    []string               `json:"headers,omitempty"`
	Fields     map[string]exportField `json:"fields"`
}

// ExportJSON renders the analysis as indented UTF-8 JSON.
func (e *Exporter) ExportJSON(da *DocumentAnalysis) ([]byte, error) {
	tables := make([]exportTable, 0, len(da.Tables))
	for _, ta := range da.Tables {
		et := exportTable{
			TableIndex: ta.Index,
			Dimensions: fmt.Sprintf("%dx%d", ta.RowCount, ta.ColCount),
			Layout:     string(ta.Layout),
			Headers:    ta.Headers,
			Fields:     make(map[string]exportField, len(ta.Fields)),
		}
		for key, loc := range ta.Fields {
			et.Fields[key] = exportField{
				Field:      loc.Field,
				Label:      loc.LabelText,
				Layout:     string(loc.Layout),
				LabelCell:  loc.Label,
				ValueCells: loc.Values,
			}
		}
		tables = append(tables, et)
	}

	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal field mapping: %w", err)
	}
	return data, nil
}

// WriteJSON writes the JSON export to path.
func (e *Exporter) WriteJSON(da *DocumentAnalysis, path string) error {
	data, err := e.ExportJSON(da)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write field mapping: %w", err)
	}
	return nil
}

// xlsxHeaders are the review workbook's columns, one row per detected
// field occurrence.
var xlsxHeaders = []string{"Table", "Layout", "Key", "Field", "Label", "Label Cell", "Value Cells"}

// ExportWorkbook renders the analysis as an XLSX review workbook.
func (e *Exporter) ExportWorkbook(da *DocumentAnalysis) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Fields"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for _, ta := range da.Tables {
		for _, key := range ta.Keys {
			loc := ta.Fields[key]
			values := ""
			for i, v := range loc.Values {
				if i > 0 {
					values += " "
				}
				values += v.String()
			}

			cols := []any{ta.Index, string(ta.Layout), key, loc.Field, loc.LabelText, loc.Label.String(), values}
			for i, v := range cols {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, fmt.Errorf("write field row: %w", err)
				}
			}
			row++
		}
	}

	// Widen the text-heavy columns.
	_ = f.SetColWidth(sheet, "C", "E", 24)
	_ = f.SetColWidth(sheet, "G", "G", 30)

	return f, nil
}

// WriteXLSX writes the review workbook to path.
func (e *Exporter) WriteXLSX(da *DocumentAnalysis, path string) error {
	f, err := e.ExportWorkbook(da)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
