// Package form orchestrates docx form detection and filling behind
// request/result operations shared by the CLI and the MCP server.
package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartfill/smartfill/internal/analysis"
	"github.com/smartfill/smartfill/internal/descriptions"
	"github.com/smartfill/smartfill/internal/docx"
	"github.com/smartfill/smartfill/internal/fields"
)

// Service handles docx form operations by orchestrating the document
// layer and the analysis pipeline
type Service struct {
	maxFileSize int64
	dict        *fields.Dictionary
	analyzer    *analysis.Analyzer
	filler      *analysis.Filler
	exporter    *analysis.Exporter
	validator   *Validator
	search      *Search
	logger      *zap.Logger
}

// NewService creates a new form service with all components
func NewService(maxFileSize int64, dict *fields.Dictionary, logger *zap.Logger) (*Service, error) {
	if dict == nil {
		var err error
		dict, err = fields.NewDictionary()
		if err != nil {
			return nil, fmt.Errorf("failed to build pattern dictionary: %w", err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		maxFileSize: maxFileSize,
		dict:        dict,
		analyzer:    analysis.NewAnalyzer(dict, logger),
		filler:      analysis.NewFiller(logger),
		exporter:    analysis.NewExporter(),
		validator:   NewValidator(maxFileSize),
		search:      NewSearch(maxFileSize),
		logger:      logger,
	}, nil
}

// Dictionary returns the pattern dictionary the service detects with
func (s *Service) Dictionary() *fields.Dictionary {
	return s.dict
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// DocxAnalyzeFile detects the fillable form fields of a docx file
func (s *Service) DocxAnalyzeFile(req DocxAnalyzeFileRequest) (*DocxAnalyzeFileResult, error) {
	doc, da, err := s.openAndAnalyze(req.Path)
	if err != nil {
		return nil, err
	}

	result := &DocxAnalyzeFileResult{
		Path:       doc.Path(),
		TableCount: len(da.Tables),
		FieldCount: da.FieldCount,
	}
	for _, ta := range da.Tables {
		result.Tables = append(result.Tables, summarizeTable(ta))
	}
	return result, nil
}

// DocxFillFile fills a docx form with the supplied data and writes the
// result to the output path. The input file is never modified; when no
// output path is given, one is derived next to the input.
func (s *Service) DocxFillFile(req DocxFillFileRequest) (*DocxFillFileResult, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("fill data cannot be empty")
	}

	doc, da, err := s.openAndAnalyze(req.Path)
	if err != nil {
		return nil, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = derivedOutputPath(req.Path, "_filled", ".docx")
	}

	report := s.filler.Fill(doc, da, req.Data)
	if err := doc.Save(outputPath); err != nil {
		return nil, fmt.Errorf("failed to save filled document: %w", err)
	}

	result := &DocxFillFileResult{
		Path:        req.Path,
		OutputPath:  outputPath,
		TableCount:  len(da.Tables),
		FieldCount:  da.FieldCount,
		FilledCount: report.Filled,
		FailedCount: report.Failed,
	}
	for _, w := range report.Writes {
		if w.Err == "" {
			continue
		}
		result.Errors = append(result.Errors, WriteError{
			Table:  w.Table,
			Key:    w.Key,
			Cell:   w.Cell,
			Reason: w.Err,
		})
	}
	return result, nil
}

// DocxValidateFile performs validation on a docx file
func (s *Service) DocxValidateFile(req DocxValidateFileRequest) (*DocxValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// IsValidDocx performs a quick validation check on a file
func (s *Service) IsValidDocx(path string) bool {
	return s.validator.IsValidDocx(path)
}

// DocxSearchDirectory searches for docx files in a directory
func (s *Service) DocxSearchDirectory(req DocxSearchDirectoryRequest) (*DocxSearchDirectoryResult, error) {
	return s.search.SearchDirectory(req)
}

// DocxExportMapping analyzes a file and writes its field mapping to disk
// for human review, as JSON or as an XLSX workbook
func (s *Service) DocxExportMapping(req DocxExportMappingRequest) (*DocxExportMappingResult, error) {
	_, da, err := s.openAndAnalyze(req.Path)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "json"
	}

	outputPath := req.OutputPath
	switch format {
	case "json":
		if outputPath == "" {
			outputPath = derivedOutputPath(req.Path, "_mapping", ".json")
		}
		err = s.exporter.WriteJSON(da, outputPath)
	case "xlsx":
		if outputPath == "" {
			outputPath = derivedOutputPath(req.Path, "_mapping", ".xlsx")
		}
		err = s.exporter.WriteXLSX(da, outputPath)
	default:
		return nil, fmt.Errorf("unsupported mapping format: %s", req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export field mapping: %w", err)
	}

	return &DocxExportMappingResult{
		Path:       req.Path,
		OutputPath: outputPath,
		Format:     format,
		FieldCount: da.FieldCount,
	}, nil
}

// DocxServerInfo returns comprehensive server information and usage guidance
func (s *Service) DocxServerInfo(req DocxServerInfoRequest, serverName, version,
	defaultDirectory string,
) (*DocxServerInfoResult, error) {
	// Get directory contents with a timeout to prevent hanging.
	// Limit to first 100 files for performance.
	directoryContents := []FileInfo{}

	resultChan := make(chan []FileInfo, 1)
	errorChan := make(chan error, 1)

	go func() {
		files, err := s.search.FindDocxInDirectoryLimited(defaultDirectory, 100)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- files
	}()

	select {
	case files := <-resultChan:
		directoryContents = files
	case <-errorChan:
		// Don't fail completely if directory scan fails, just return empty contents
	case <-time.After(5 * time.Second):
	}

	availableTools := []ToolInfo{
		{
			Name:        "docx_analyze_file",
			Description: descriptions.GetToolDescription("docx_analyze_file"),
			Usage: "Use this tool first to see which fields were recognized, their labels, " +
				"and which cells would receive values.",
			Parameters: "path (required): Full absolute path to the docx file",
		},
		{
			Name:        "docx_fill_file",
			Description: descriptions.GetToolDescription("docx_fill_file"),
			Usage: "Use this tool after docx_analyze_file. Data keys are the field identifiers " +
				"from the analysis (name, phone, email, ...); unknown keys are ignored.",
			Parameters: "path (required): Full absolute path to the docx file, " +
				"data (required): Object mapping field identifiers to values, " +
				"output_path (optional): Where to write the filled copy",
		},
		{
			Name:        "docx_validate_file",
			Description: descriptions.GetToolDescription("docx_validate_file"),
			Usage:       "Use this tool to check a file before attempting to analyze or fill it.",
			Parameters:  "path (required): Full absolute path to the docx file",
		},
		{
			Name:        "docx_search_directory",
			Description: descriptions.GetToolDescription("docx_search_directory"),
			Usage: "Use this tool to find docx files. Office lock files (~$...) are " +
				"filtered out automatically.",
			Parameters: "directory (optional): Directory path to search (uses default if empty), " +
				"query (optional): Search query for fuzzy matching",
		},
		{
			Name:        "docx_export_mapping",
			Description: descriptions.GetToolDescription("docx_export_mapping"),
			Usage:       "Use this tool to produce a reviewable artifact of the detected mapping.",
			Parameters: "path (required): Full absolute path to the docx file, " +
				"format (optional): 'json' (default) or 'xlsx', " +
				"output_path (optional): Where to write the export",
		},
		{
			Name:        "docx_server_info",
			Description: descriptions.GetToolDescription("docx_server_info"),
			Usage:       "Use this tool to discover what the server can do and which fields it recognizes.",
			Parameters:  "none",
		},
	}

	usageGuidance := `Docx Form Server Usage Guide:

1. START WITH DISCOVERY:
   - Use 'docx_search_directory' to find available docx files
   - Use 'docx_validate_file' to check a file before processing

2. ANALYZE THE FORM:
   - Use 'docx_analyze_file' to detect the fillable fields
   - Each table is classified by layout:
     * "vertical": labels in one column, values in the next
     * "horizontal": a header row of labels with data rows beneath
     * "mixed": labels anywhere, values placed right, below, or in-cell
     * "empty": a table with no rows
   - Field identifiers (name, phone, email, ...) are the keys to fill with

3. FILL THE FORM:
   - Use 'docx_fill_file' with a data object keyed by field identifier
   - Unknown keys are ignored; missing fields are simply left blank
   - The original file is untouched; a filled copy is written

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- Labels are matched against Chinese form conventions (姓名, 电话, 邮箱, ...)
- Re-analyze after filling if you need detection over the new contents`

	return &DocxServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  defaultDirectory,
		MaxFileSize:       s.maxFileSize,
		SupportedFields:   s.dict.IDs(),
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
		UsageGuidance:     usageGuidance,
	}, nil
}

// openAndAnalyze runs the same metadata validation ladder as
// DocxValidateFile before opening, so lock files, wrong extensions, and
// oversized files are rejected uniformly across operations.
func (s *Service) openAndAnalyze(path string) (*docx.Document, *analysis.DocumentAnalysis, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot access file: %w", err)
	}
	if err := s.validator.ValidateFileInfo(path, info); err != nil {
		return nil, nil, err
	}

	doc, err := docx.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open docx file: %w", err)
	}
	return doc, s.analyzer.AnalyzeDocument(doc), nil
}

// summarizeTable converts an analysis snapshot into its wire shape
func summarizeTable(ta analysis.TableAnalysis) TableSummary {
	summary := TableSummary{
		Index:      ta.Index,
		Rows:       ta.RowCount,
		Cols:       ta.ColCount,
		Layout:     string(ta.Layout),
		Headers:    ta.Headers,
		FieldCount: len(ta.Keys),
		Fields:     make(map[string]FieldSummary, len(ta.Fields)),
	}
	for key, loc := range ta.Fields {
		summary.Fields[key] = FieldSummary{
			Field:      loc.Field,
			Label:      loc.LabelText,
			LabelCell:  loc.Label,
			ValueCells: loc.Values,
		}
	}
	return summary
}

// derivedOutputPath builds "<dir>/<stem><suffix><ext>" from an input path
func derivedOutputPath(path, suffix, ext string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return stem + suffix + ext
}
