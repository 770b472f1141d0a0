package form

import "github.com/smartfill/smartfill/internal/analysis"

// FileInfo represents information about a docx file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// FieldSummary describes one detected field occurrence in a table
type FieldSummary struct {
	Field      string             `json:"field"`
	Label      string             `json:"label"`
	LabelCell  analysis.CellRef   `json:"label_cell"`
	ValueCells []analysis.CellRef `json:"value_cells"`
}

// TableSummary describes one analyzed table
type TableSummary struct {
	Index      int                     `json:"index"`
	Rows       int                     `json:"rows"`
	Cols       int                     `json:"cols"`
	Layout     string                  `json:"layout"`
	Headers    []string                `json:"headers,omitempty"`
	FieldCount int                     `json:"field_count"`
	Fields     map[string]FieldSummary `json:"fields"`
}

// WriteError records one cell write that was skipped during a fill
type WriteError struct {
	Table  int              `json:"table"`
	Key    string           `json:"key"`
	Cell   analysis.CellRef `json:"cell"`
	Reason string           `json:"reason"`
}

// Request Types

// DocxAnalyzeFileRequest represents a request to analyze the form fields of a docx file
type DocxAnalyzeFileRequest struct {
	Path string `json:"path"`
}

// DocxFillFileRequest represents a request to fill a docx form with data
type DocxFillFileRequest struct {
	Path       string         `json:"path"`
	OutputPath string         `json:"output_path"`
	Data       map[string]any `json:"data"`
}

// DocxValidateFileRequest represents a request to validate a docx file
type DocxValidateFileRequest struct {
	Path string `json:"path"`
}

// DocxSearchDirectoryRequest represents a request to search for docx files in a directory
type DocxSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// DocxExportMappingRequest represents a request to export a file's field mapping
type DocxExportMappingRequest struct {
	Path       string `json:"path"`
	Format     string `json:"format"` // "json" or "xlsx"
	OutputPath string `json:"output_path"`
}

// DocxServerInfoRequest represents a request to get server information and capabilities
type DocxServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// DocxAnalyzeFileResult represents the result of a form analysis operation
type DocxAnalyzeFileResult struct {
	Path       string         `json:"path"`
	TableCount int            `json:"table_count"`
	FieldCount int            `json:"field_count"`
	Tables     []TableSummary `json:"tables"`
}

// DocxFillFileResult represents the result of a form fill operation
type DocxFillFileResult struct {
	Path        string       `json:"path"`
	OutputPath  string       `json:"output_path"`
	TableCount  int          `json:"table_count"`
	FieldCount  int          `json:"field_count"`
	FilledCount int          `json:"filled_count"`
	FailedCount int          `json:"failed_count"`
	Errors      []WriteError `json:"errors,omitempty"`
}

// DocxValidateFileResult represents the result of a docx validation operation
type DocxValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// DocxSearchDirectoryResult represents the result of a docx search operation
type DocxSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// DocxExportMappingResult represents the result of a mapping export operation
type DocxExportMappingResult struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
	FieldCount int    `json:"field_count"`
}

// ToolInfo describes an available MCP tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// DocxServerInfoResult represents server information and usage guidance
type DocxServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	SupportedFields   []string   `json:"supported_fields"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}
