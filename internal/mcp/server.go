package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/smartfill/smartfill/internal/config"
	"github.com/smartfill/smartfill/internal/form"
)

// Server represents the MCP server instance
type Server struct {
	config      *config.Config
	formService *form.Service
	mcpServer   *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, formService *form.Service) (*Server, error) {
	if formService == nil {
		return nil, fmt.Errorf("formService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:      cfg,
		formService: formService,
		mcpServer:   mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register docx analyze file tool
	docxAnalyzeFileTool := mcp.NewTool(
		"docx_analyze_file",
		mcp.WithDescription("Detect the fillable form fields in a docx file's tables"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the docx file"),
		),
	)
	s.mcpServer.AddTool(docxAnalyzeFileTool, s.handleDocxAnalyzeFile)

	// Register docx fill file tool
	docxFillFileTool := mcp.NewTool(
		"docx_fill_file",
		mcp.WithDescription("Fill a docx form with data and save the result to a new file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the docx file"),
		),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("Object mapping field identifiers (name, phone, ...) to values"),
		),
		mcp.WithString("output_path",
			mcp.Description("Where to write the filled copy (derived from the input path if empty)"),
		),
	)
	s.mcpServer.AddTool(docxFillFileTool, s.handleDocxFillFile)

	// Register docx validate file tool
	docxValidateFileTool := mcp.NewTool(
		"docx_validate_file",
		mcp.WithDescription("Validate if a file is a readable docx document"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the docx file"),
		),
	)
	s.mcpServer.AddTool(docxValidateFileTool, s.handleDocxValidateFile)

	// Register docx search directory tool
	docxSearchDirectoryTool := mcp.NewTool(
		"docx_search_directory",
		mcp.WithDescription("Search for docx files in a directory with optional fuzzy search"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(docxSearchDirectoryTool, s.handleDocxSearchDirectory)

	// Register docx export mapping tool
	docxExportMappingTool := mcp.NewTool(
		"docx_export_mapping",
		mcp.WithDescription("Export a docx file's detected field mapping to JSON or XLSX for review"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the docx file"),
		),
		mcp.WithString("format",
			mcp.Description("Export format: 'json' (default) or 'xlsx'"),
		),
		mcp.WithString("output_path",
			mcp.Description("Where to write the mapping (derived from the input path if empty)"),
		),
	)
	s.mcpServer.AddTool(docxExportMappingTool, s.handleDocxExportMapping)

	// Register docx server info tool
	docxServerInfoTool := mcp.NewTool(
		"docx_server_info",
		mcp.WithDescription("Get server information, supported fields, directory contents, and usage guidance"),
	)
	s.mcpServer.AddTool(docxServerInfoTool, s.handleDocxServerInfo)
}

// Handler functions
func (s *Server) handleDocxAnalyzeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := form.DocxAnalyzeFileRequest{Path: path}
	result, err := s.formService.DocxAnalyzeFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDocxAnalyzeFileResult(result)), nil
}

func (s *Server) handleDocxFillFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	data, ok := args["data"].(map[string]any)
	if !ok || len(data) == 0 {
		return mcp.NewToolResultError("data must be a non-empty object mapping field identifiers to values"), nil
	}

	outputPath := ""
	if out, ok := args["output_path"].(string); ok {
		outputPath = out
	}

	req := form.DocxFillFileRequest{
		Path:       path,
		OutputPath: outputPath,
		Data:       data,
	}
	result, err := s.formService.DocxFillFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDocxFillFileResult(result)), nil
}

func (s *Server) handleDocxValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := form.DocxValidateFileRequest{Path: path}
	result, err := s.formService.DocxValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Docx file %s is valid: %s", result.Path, result.Message)
	} else {
		responseText = fmt.Sprintf("Docx validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocxSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.DocxDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := form.DocxSearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	}

	result, err := s.formService.DocxSearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No docx files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatDocxSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocxExportMapping(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	format := ""
	if f, ok := args["format"].(string); ok {
		format = f
	}
	outputPath := ""
	if out, ok := args["output_path"].(string); ok {
		outputPath = out
	}

	req := form.DocxExportMappingRequest{
		Path:       path,
		Format:     format,
		OutputPath: outputPath,
	}
	result, err := s.formService.DocxExportMapping(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Exported field mapping for %s\n", result.Path)
	responseText += fmt.Sprintf("Format: %s\n", result.Format)
	responseText += fmt.Sprintf("Fields: %d\n", result.FieldCount)
	responseText += fmt.Sprintf("Written to: %s", result.OutputPath)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocxServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := form.DocxServerInfoRequest{}
	result, err := s.formService.DocxServerInfo(req, s.config.ServerName, s.config.Version, s.config.DocxDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDocxServerInfoResult(result)), nil
}

// Formatting methods
func (s *Server) formatDocxAnalyzeFileResult(result *form.DocxAnalyzeFileResult) string {
	text := fmt.Sprintf("Analyzed docx: %s\n", result.Path)
	text += fmt.Sprintf("Tables: %d\n", result.TableCount)
	text += fmt.Sprintf("Detected fields: %d\n", result.FieldCount)

	for _, table := range result.Tables {
		text += fmt.Sprintf("\nTable %d (%dx%d, layout: %s)\n", table.Index, table.Rows, table.Cols, table.Layout)
		if len(table.Headers) > 0 {
			text += fmt.Sprintf("  Headers: %v\n", table.Headers)
		}
		if table.FieldCount == 0 {
			text += "  No fields detected\n"
			continue
		}

		keys := make([]string, 0, len(table.Fields))
		for key := range table.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			field := table.Fields[key]
			text += fmt.Sprintf("  %s: label %q at %s, value cell(s) %v\n",
				field.Field, field.Label, field.LabelCell, field.ValueCells)
		}
	}

	return text
}

func (s *Server) formatDocxFillFileResult(result *form.DocxFillFileResult) string {
	text := fmt.Sprintf("Filled docx: %s\n", result.Path)
	text += fmt.Sprintf("Output written to: %s\n", result.OutputPath)
	text += fmt.Sprintf("Tables: %d, detected fields: %d\n", result.TableCount, result.FieldCount)
	text += fmt.Sprintf("Cells filled: %d\n", result.FilledCount)

	if result.FailedCount > 0 {
		text += fmt.Sprintf("Cells failed: %d\n", result.FailedCount)
		for _, e := range result.Errors {
			text += fmt.Sprintf("  table %d, %s at %s: %s\n", e.Table, e.Key, e.Cell, e.Reason)
		}
	}

	return text
}

func (s *Server) formatDocxSearchDirectoryResult(result *form.DocxSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d docx file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatDocxServerInfoResult(result *form.DocxServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d docx files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No docx files found in default directory\n\n"
	}

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Supported field identifiers
	if len(result.SupportedFields) > 0 {
		text += "\n🏷️  Supported Field Identifiers:\n"
		for _, field := range result.SupportedFields {
			text += fmt.Sprintf("  • %s\n", field)
		}
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server over standard I/O
func (s *Server) Run(ctx context.Context) error {
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting docx form MCP server in stdio mode")
		log.Printf("Docx directory: %s", s.config.DocxDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
