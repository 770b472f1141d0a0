package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartfill/smartfill/internal/config"
	"github.com/smartfill/smartfill/internal/form"
	"github.com/smartfill/smartfill/internal/mcp"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the zap logger for the configured mode. In stdio
// mode all output goes to stderr so the MCP protocol on stdout stays
// clean, and verbosity is cut to errors unless debug is enabled.
func setupLogging(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	if cfg.IsStdioMode() && !cfg.IsDebug() {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	return zapCfg.Build()
}

// runStdioMode serves MCP over standard I/O until the parent process
// closes stdin or the context is cancelled
func runStdioMode(ctx context.Context, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runAnalyzeMode detects the form fields of a single file and prints
// them, optionally exporting the mapping for review
func runAnalyzeMode(cfg *config.Config, service *form.Service) error {
	result, err := service.DocxAnalyzeFile(form.DocxAnalyzeFileRequest{Path: cfg.InputPath})
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", result.Path)
	fmt.Printf("Tables: %d\n", result.TableCount)
	fmt.Printf("Detected fields: %d\n", result.FieldCount)

	for _, table := range result.Tables {
		fmt.Printf("\nTable %d (%dx%d, %s layout, %d fields)\n",
			table.Index, table.Rows, table.Cols, table.Layout, table.FieldCount)

		keys := make([]string, 0, len(table.Fields))
		for key := range table.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			field := table.Fields[key]
			fmt.Printf("  %-20s label=%q label_cell=(%d,%d) value_cells=%d\n",
				field.Field, field.Label, field.LabelCell.Row, field.LabelCell.Col, len(field.ValueCells))
		}
	}

	if cfg.MappingPath != "" {
		export, err := service.DocxExportMapping(form.DocxExportMappingRequest{
			Path:       cfg.InputPath,
			Format:     cfg.MappingFormat,
			OutputPath: cfg.MappingPath,
		})
		if err != nil {
			return fmt.Errorf("failed to export field mapping: %w", err)
		}
		fmt.Printf("\nField mapping exported to %s (%s)\n", export.OutputPath, export.Format)
	}

	return nil
}

// runFillMode reads the fill data file, fills the form, and prints a
// short report of what was written
func runFillMode(cfg *config.Config, service *form.Service) error {
	data, err := loadFillData(cfg.DataPath)
	if err != nil {
		return err
	}

	result, err := service.DocxFillFile(form.DocxFillFileRequest{
		Path:       cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Data:       data,
	})
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", result.Path)
	fmt.Printf("Output: %s\n", result.OutputPath)
	fmt.Printf("Detected fields: %d\n", result.FieldCount)
	fmt.Printf("Cells filled: %d\n", result.FilledCount)
	if result.FailedCount > 0 {
		fmt.Printf("Cells failed: %d\n", result.FailedCount)
		for _, writeErr := range result.Errors {
			fmt.Printf("  table %d key %s cell (%d,%d): %s\n",
				writeErr.Table, writeErr.Key, writeErr.Cell.Row, writeErr.Cell.Col, writeErr.Reason)
		}
	}

	return nil
}

// loadFillData reads a JSON object mapping field identifiers to values
func loadFillData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fill data file: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("fill data file %s is not a JSON object: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fill data file %s contains no values", path)
	}

	return data, nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		logger.Debug("starting", zap.String("config", cfg.String()))
	}

	// Create the form service shared by all modes
	formService, err := form.NewService(cfg.MaxFileSize, nil, logger)
	if err != nil {
		log.Fatalf("Failed to create form service: %v", err)
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch cfg.Mode {
	case config.ModeStdio:
		server, err := mcp.NewServer(cfg, formService)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runStdioMode(ctx, server)

	case config.ModeAnalyze:
		if err := runAnalyzeMode(cfg, formService); err != nil {
			log.Fatalf("Analyze failed: %v", err)
		}

	case config.ModeFill:
		if err := runFillMode(cfg, formService); err != nil {
			log.Fatalf("Fill failed: %v", err)
		}
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Smartfill\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
