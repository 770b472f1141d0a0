package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.MappingFormat != "json" {
		t.Errorf("Expected default mapping format to be 'json', got '%s'", cfg.MappingFormat)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "smartfill" {
		t.Errorf("Expected default server name to be 'smartfill', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	// Test that docx directory is set to current working directory by default
	currentDir, _ := os.Getwd()
	if cfg.DocxDirectory != currentDir {
		t.Errorf("Expected default docx directory to be '%s', got '%s'", currentDir, cfg.DocxDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid config - analyze mode",
			config: &Config{
				Mode:          "analyze",
				InputPath:     "form.docx",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: false,
		},
		{
			name: "valid config - fill mode",
			config: &Config{
				Mode:          "fill",
				InputPath:     "form.docx",
				DataPath:      "data.json",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: false,
		},
		{
			name: "invalid mode",
			config: &Config{
				Mode:          "invalid",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: true,
		},
		{
			name: "analyze mode without input",
			config: &Config{
				Mode:          "analyze",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: true,
		},
		{
			name: "fill mode without data file",
			config: &Config{
				Mode:          "fill",
				InputPath:     "form.docx",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: true,
		},
		{
			name: "invalid mapping format",
			config: &Config{
				Mode:          "stdio",
				MappingFormat: "csv",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: true,
		},
		{
			name: "empty docx directory",
			config: &Config{
				Mode:          "stdio",
				MappingFormat: "json",
				DocxDirectory: "",
				LogLevel:      "info",
				MaxFileSize:   1024,
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: &Config{
				Mode:          "stdio",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "invalid",
				MaxFileSize:   1024,
			},
			wantErr: true,
		},
		{
			name: "invalid max file size",
			config: &Config{
				Mode:          "stdio",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      "info",
				MaxFileSize:   0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     bool
	}{
		{
			name:     "debug level",
			logLevel: "debug",
			want:     true,
		},
		{
			name:     "info level",
			logLevel: "info",
			want:     false,
		},
		{
			name:     "warn level",
			logLevel: "warn",
			want:     false,
		},
		{
			name:     "error level",
			logLevel: "error",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:          "fill",
		InputPath:     "/home/user/forms/app.docx",
		DocxDirectory: "/home/user/forms",
		LogLevel:      "debug",
		MaxFileSize:   1024,
	}

	result := cfg.String()

	// Check that the string contains expected components
	expectedSubstrings := []string{
		"Mode: fill",
		"Input: /home/user/forms/app.docx",
		"DocxDirectory: /home/user/forms",
		"LogLevel: debug",
		"MaxFileSize: 1024",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}

func TestConfigValidateCreatesMissingDirectory(t *testing.T) {
	tempParent := t.TempDir()
	nonExistentDir := filepath.Join(tempParent, "forms", "incoming")

	cfg := &Config{
		Mode:          "stdio",
		MappingFormat: "json",
		DocxDirectory: nonExistentDir,
		LogLevel:      "info",
		MaxFileSize:   1024,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() should create a missing directory, got error: %v", err)
	}

	if _, err := os.Stat(nonExistentDir); err != nil {
		t.Errorf("Directory should have been created: %s", nonExistentDir)
	}
}

func TestConfigValidateLogLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error"}
	invalidLevels := []string{"DEBUG", "INFO", "trace", "fatal", ""}

	tempDir := t.TempDir()

	// Test valid log levels
	for _, level := range validLevels {
		t.Run("valid_"+level, func(t *testing.T) {
			cfg := &Config{
				Mode:          "stdio",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      level,
				MaxFileSize:   1024,
			}

			if err := cfg.Validate(); err != nil {
				t.Errorf("Config.Validate() should accept log level '%s', got error: %v", level, err)
			}
		})
	}

	// Test invalid log levels
	for _, level := range invalidLevels {
		t.Run("invalid_"+level, func(t *testing.T) {
			cfg := &Config{
				Mode:          "stdio",
				MappingFormat: "json",
				DocxDirectory: tempDir,
				LogLevel:      level,
				MaxFileSize:   1024,
			}

			if err := cfg.Validate(); err == nil {
				t.Errorf("Config.Validate() should reject log level '%s'", level)
			}
		})
	}
}

func TestConfigIsStdioMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{
			name: "stdio mode",
			mode: "stdio",
			want: true,
		},
		{
			name: "fill mode",
			mode: "fill",
			want: false,
		},
		{
			name: "analyze mode",
			mode: "analyze",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsStdioMode(); got != tt.want {
				t.Errorf("Config.IsStdioMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
