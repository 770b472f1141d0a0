package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio   = "stdio"
	ModeAnalyze = "analyze"
	ModeFill    = "fill"

	// Default values
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
	DefaultMappingFormat = "json"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the smartfill tool and MCP server
type Config struct {
	// Run mode: "stdio" serves MCP over standard I/O, "analyze" and
	// "fill" run one-shot against a single file
	Mode string

	// Document configuration
	InputPath     string // docx file to analyze or fill
	OutputPath    string // where the filled copy is written (fill mode)
	DataPath      string // JSON file mapping field identifiers to values (fill mode)
	MappingPath   string // where the field mapping export is written
	MappingFormat string // "json" or "xlsx"
	DocxDirectory string // default directory for docx discovery

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum docx file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:          ModeStdio, // Default to stdio mode for MCP compatibility
		DocxDirectory: currentDir,
		MappingFormat: DefaultMappingFormat,
		Version:       "1.0.0",
		ServerName:    "smartfill",
		LogLevel:      DefaultLogLevel,
		MaxFileSize:   DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocxDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocxDirectory); err == nil {
			cfg.DocxDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("SMARTFILL")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("data", cfg.DataPath)
	viper.SetDefault("mapping", cfg.MappingPath)
	viper.SetDefault("mappingformat", cfg.MappingFormat)
	viper.SetDefault("dir", cfg.DocxDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'analyze' or 'fill' for one-shot runs")
	pflag.String("input", cfg.InputPath, "Docx file to analyze or fill")
	pflag.String("output", cfg.OutputPath, "Output path for the filled copy (fill mode)")
	pflag.String("data", cfg.DataPath, "JSON file mapping field identifiers to values (fill mode)")
	pflag.String("mapping", cfg.MappingPath, "Output path for the field mapping export")
	pflag.String("mappingformat", cfg.MappingFormat, "Field mapping export format: 'json' or 'xlsx'")
	pflag.String("dir", cfg.DocxDirectory, "Directory containing docx files")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum docx file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("data", pflag.Lookup("data"))
	_ = viper.BindPFlag("mapping", pflag.Lookup("mapping"))
	_ = viper.BindPFlag("mappingformat", pflag.Lookup("mappingformat"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSmartfill - detect and fill form fields in docx tables\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                                  "+
			"# MCP stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/forms                             "+
			"# MCP stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=analyze --input=form.docx                 "+
			"# print detected fields\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=analyze --input=form.docx --mapping=m.xlsx --mappingformat=xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=fill --input=form.docx --data=data.json --output=filled.docx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_MODE          Run mode\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_INPUT         Docx file to process\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_OUTPUT        Output path for the filled copy\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_DATA          JSON fill data file\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_MAPPING       Field mapping export path\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_MAPPINGFORMAT Field mapping export format\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_DIR           Docx directory\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  SMARTFILL_MAXFILESIZE   Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputPath = viper.GetString("input")
	cfg.OutputPath = viper.GetString("output")
	cfg.DataPath = viper.GetString("data")
	cfg.MappingPath = viper.GetString("mapping")
	cfg.MappingFormat = viper.GetString("mappingformat")
	cfg.DocxDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	switch c.Mode {
	case ModeStdio, ModeAnalyze, ModeFill:
	default:
		return errors.New("mode must be one of 'stdio', 'analyze', 'fill'")
	}

	// One-shot modes need an input file
	if (c.Mode == ModeAnalyze || c.Mode == ModeFill) && c.InputPath == "" {
		return fmt.Errorf("%s mode requires --input", c.Mode)
	}
	if c.Mode == ModeFill && c.DataPath == "" {
		return errors.New("fill mode requires --data")
	}

	// Validate mapping format
	if c.MappingFormat != "json" && c.MappingFormat != "xlsx" {
		return fmt.Errorf("invalid mapping format: %s (must be 'json' or 'xlsx')", c.MappingFormat)
	}

	// Validate docx directory
	if c.DocxDirectory == "" {
		return errors.New("docx directory cannot be empty")
	}

	// Check if docx directory exists, create if it doesn't
	if _, err := os.Stat(c.DocxDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DocxDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create docx directory %s: %w", c.DocxDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access docx directory %s: %w", c.DocxDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Input: %s, DocxDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.InputPath, c.DocxDirectory, c.LogLevel, c.MaxFileSize)
}

// IsStdioMode returns true if the tool should serve MCP over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
