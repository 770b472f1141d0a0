package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smartfill/smartfill/internal/analysis"
	"github.com/smartfill/smartfill/internal/docx"
	"github.com/smartfill/smartfill/internal/fields"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: docx file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	docxPath := flag.Arg(0)
	if _, err := os.Stat(docxPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", docxPath)
		os.Exit(1)
	}

	result, err := detectFields(docxPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error detecting fields: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Docx Detect Fields - Debug form field detection in docx tables")
	fmt.Println()
	fmt.Println("This tool shows exactly how each table in a docx document is classified")
	fmt.Println("and which labels were matched, for diagnosing forms that fill incorrectly.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -verbose       Show every field's label and value cells")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  docx_detect_fields application.docx")
	fmt.Println("  docx_detect_fields -verbose contract.docx")
	fmt.Println("  docx_detect_fields -format json forms/leave_request.docx")
	fmt.Println()
	fmt.Println("TABLE LAYOUTS:")
	fmt.Println("  • vertical    labels in the first column, values to their right")
	fmt.Println("  • horizontal  labels in the first row, values in the rows below")
	fmt.Println("  • mixed       labels anywhere; values right, below, or in the label cell")
	fmt.Println("  • empty       table has no rows")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  docx_detect_fields [OPTIONS] <docx_file>")
}

// DetectionResult is the complete field detection output for one file
type DetectionResult struct {
	FilePath   string        `json:"file_path"`
	TableCount int           `json:"table_count"`
	FieldCount int           `json:"field_count"`
	Tables     []TableReport `json:"tables"`
}

// TableReport describes the detection outcome for one table
type TableReport struct {
	Index   int           `json:"index"`
	Rows    int           `json:"rows"`
	Cols    int           `json:"cols"`
	Layout  string        `json:"layout"`
	Headers []string      `json:"headers,omitempty"`
	Fields  []FieldReport `json:"fields"`
}

// FieldReport describes one located field
type FieldReport struct {
	Key        string             `json:"key"`
	Field      string             `json:"field"`
	Label      string             `json:"label"`
	LabelCell  analysis.CellRef   `json:"label_cell"`
	ValueCells []analysis.CellRef `json:"value_cells"`
	SharesCell bool               `json:"shares_label_cell,omitempty"`
}

func detectFields(docxPath string) (*DetectionResult, error) {
	absPath, err := filepath.Abs(docxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	doc, err := docx.Open(absPath)
	if err != nil {
		return nil, err
	}

	dict, err := fields.NewDictionary()
	if err != nil {
		return nil, err
	}

	da := analysis.NewAnalyzer(dict, nil).AnalyzeDocument(doc)

	result := &DetectionResult{
		FilePath:   absPath,
		TableCount: len(da.Tables),
		FieldCount: da.FieldCount,
	}
	for _, ta := range da.Tables {
		report := TableReport{
			Index:   ta.Index,
			Rows:    ta.RowCount,
			Cols:    ta.ColCount,
			Layout:  string(ta.Layout),
			Headers: ta.Headers,
			Fields:  []FieldReport{},
		}
		for _, key := range ta.Keys {
			loc := ta.Fields[key]
			report.Fields = append(report.Fields, FieldReport{
				Key:        loc.Key,
				Field:      loc.Field,
				Label:      loc.LabelText,
				LabelCell:  loc.Label,
				ValueCells: loc.Values,
				SharesCell: loc.SharesLabelCell(),
			})
		}
		result.Tables = append(result.Tables, report)
	}

	return result, nil
}

func outputResults(result *DetectionResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *DetectionResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *DetectionResult) error {
	if result.TableCount == 0 {
		fmt.Println("No tables found in the document")
		return nil
	}

	fmt.Printf("File: %s\n", result.FilePath)
	fmt.Printf("Tables: %d, detected fields: %d\n", result.TableCount, result.FieldCount)
	fmt.Println()

	for _, table := range result.Tables {
		fmt.Printf("Table %d: %dx%d, %s layout, %d field(s)\n",
			table.Index, table.Rows, table.Cols, table.Layout, len(table.Fields))

		if len(table.Headers) > 0 && *verbose {
			fmt.Printf("  headers: %v\n", table.Headers)
		}

		for _, field := range table.Fields {
			fmt.Printf("  [%s] %s\n", field.Key, field.Label)
			if *verbose {
				fmt.Printf("      field: %s\n", field.Field)
				fmt.Printf("      label cell: %s\n", field.LabelCell)
				fmt.Printf("      value cells: %v\n", field.ValueCells)
				if field.SharesCell {
					fmt.Println("      value shares the label cell; a fill appends to the label")
				}
			}
		}

		if len(table.Fields) == 0 {
			fmt.Println("  no labels matched the pattern dictionary")
		}
		fmt.Println()
	}

	return nil
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}
