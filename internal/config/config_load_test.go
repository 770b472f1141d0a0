package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("SMARTFILL_MODE")
	os.Unsetenv("SMARTFILL_INPUT")
	os.Unsetenv("SMARTFILL_OUTPUT")
	os.Unsetenv("SMARTFILL_DATA")
	os.Unsetenv("SMARTFILL_MAPPING")
	os.Unsetenv("SMARTFILL_MAPPINGFORMAT")
	os.Unsetenv("SMARTFILL_DIR")
	os.Unsetenv("SMARTFILL_LOGLEVEL")
	os.Unsetenv("SMARTFILL_MAXFILESIZE")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Set minimal args (just program name)
	setArgs([]string{"smartfill"})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Verify default values
	if cfg.Mode != "stdio" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "stdio")
	}
	if cfg.MappingFormat != "json" {
		t.Errorf("LoadFromFlags() MappingFormat = %v, want %v", cfg.MappingFormat, "json")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	// DocxDirectory should be current working directory
	if cfg.DocxDirectory == "" {
		t.Error("LoadFromFlags() DocxDirectory should not be empty")
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name            string
		argsTemplate    []string
		wantMode        string
		wantInput       string
		wantLogLevel    string
		wantMaxFileSize int64
	}{
		{
			name:            "stdio mode with custom directory",
			argsTemplate:    []string{"smartfill", "--dir=%s"},
			wantMode:        "stdio",
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "analyze mode",
			argsTemplate:    []string{"smartfill", "--mode=analyze", "--input=form.docx", "--dir=%s"},
			wantMode:        "analyze",
			wantInput:       "form.docx",
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "fill mode",
			argsTemplate:    []string{"smartfill", "--mode=fill", "--input=form.docx", "--data=data.json", "--dir=%s"},
			wantMode:        "fill",
			wantInput:       "form.docx",
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "debug logging",
			argsTemplate:    []string{"smartfill", "--loglevel=debug", "--dir=%s"},
			wantMode:        "stdio",
			wantLogLevel:    "debug",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "custom max file size",
			argsTemplate:    []string{"smartfill", "--maxfilesize=50000000", "--dir=%s"},
			wantMode:        "stdio",
			wantLogLevel:    "info",
			wantMaxFileSize: 50000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save original args and environment
			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
				resetFlags()
				clearEnvVars()
			}()

			// Create temp directory for this test
			tempDir := t.TempDir()

			// Build args with temp directory
			args := make([]string, len(tt.argsTemplate))
			for i, arg := range tt.argsTemplate {
				if arg == "--dir=%s" {
					args[i] = "--dir=" + tempDir
				} else {
					args[i] = arg
				}
			}

			setArgs(args)
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			if cfg.Mode != tt.wantMode {
				t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, tt.wantMode)
			}
			if cfg.InputPath != tt.wantInput {
				t.Errorf("LoadFromFlags() InputPath = %v, want %v", cfg.InputPath, tt.wantInput)
			}
			if cfg.LogLevel != tt.wantLogLevel {
				t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, tt.wantLogLevel)
			}
			if cfg.MaxFileSize != tt.wantMaxFileSize {
				t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, tt.wantMaxFileSize)
			}
			// DocxDirectory should be expanded to absolute path
			if cfg.DocxDirectory == "" {
				t.Error("LoadFromFlags() DocxDirectory should not be empty")
			}
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Create temp directory for testing
	tempDir := t.TempDir()

	// Set environment variables
	os.Setenv("SMARTFILL_MODE", "analyze")
	os.Setenv("SMARTFILL_INPUT", "form.docx")
	os.Setenv("SMARTFILL_DIR", tempDir)
	os.Setenv("SMARTFILL_LOGLEVEL", "warn")
	os.Setenv("SMARTFILL_MAXFILESIZE", "200000000")

	setArgs([]string{"smartfill"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "analyze" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "analyze")
	}
	if cfg.InputPath != "form.docx" {
		t.Errorf("LoadFromFlags() InputPath = %v, want %v", cfg.InputPath, "form.docx")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 200000000)
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Set environment variables
	os.Setenv("SMARTFILL_MODE", "analyze")
	os.Setenv("SMARTFILL_INPUT", "env.docx")

	// Set args that should override environment
	setArgs([]string{"smartfill", "--mode=fill", "--input=flag.docx", "--data=data.json"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Flags should override environment variables
	if cfg.Mode != "fill" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v (should override env)", cfg.Mode, "fill")
	}
	if cfg.InputPath != "flag.docx" {
		t.Errorf("LoadFromFlags() InputPath = %v, want %v (should override env)", cfg.InputPath, "flag.docx")
	}
	if cfg.DataPath != "data.json" {
		t.Errorf("LoadFromFlags() DataPath = %v, want %v", cfg.DataPath, "data.json")
	}
}

func TestLoadFromFlags_InvalidMode(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"smartfill", "--mode=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid mode")
	}
	if err != nil && !strings.Contains(err.Error(), "mode must be one of") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid mode", err)
	}
}

func TestLoadFromFlags_FillModeMissingData(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"smartfill", "--mode=fill", "--input=form.docx", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for fill mode without data file")
	}
	if err != nil && !strings.Contains(err.Error(), "requires --data") {
		t.Errorf("LoadFromFlags() error = %v, want error about missing data file", err)
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"smartfill", "--loglevel=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid log level")
	}
	if err != nil && !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid log level", err)
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"smartfill", "--version"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected version error")
	}
	if err != nil && err.Error() != "version requested" {
		t.Errorf("LoadFromFlags() error = %v, want 'version requested'", err)
	}
}
