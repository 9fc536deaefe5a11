package common

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment  string             `toml:"environment"` // "development" or "production"
	Worksheet    WorksheetConfig    `toml:"worksheet"`
	Dictionaries DictionariesConfig `toml:"dictionaries"`
	Output       OutputConfig       `toml:"output"`
	Report       ReportConfig       `toml:"report"`
	Logging      LoggingConfig      `toml:"logging"`
}

// WorksheetConfig locates the raw input worksheet
type WorksheetConfig struct {
	Path string `toml:"path" validate:"required"` // CSV worksheet path
}

// DictionariesConfig locates the two semantic dictionary directories
type DictionariesConfig struct {
	ResourceDir string `toml:"resource_dir" validate:"required"` // Resource/metadata dictionary directory (*.yaml)
	SignalDir   string `toml:"signal_dir" validate:"required"`   // Signal/span dictionary directory (*.yaml)
}

// OutputConfig locates the intermediate document directory
type OutputConfig struct {
	Dir string `toml:"dir" validate:"required"` // Directory for the six intermediate structure documents
}

// ReportConfig controls the rendered HTML report
type ReportConfig struct {
	Path  string `toml:"path" validate:"required"` // Output HTML file path
	Title string `toml:"title"`                    // Report title
}

// LoggingConfig controls arbor logger behavior
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in ordino.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Worksheet: WorksheetConfig{
			Path: "./worksheet.csv",
		},
		Dictionaries: DictionariesConfig{
			ResourceDir: "./dictionaries/resource",
			SignalDir:   "./dictionaries/signal",
		},
		Output: OutputConfig{
			Dir: "./out",
		},
		Report: ReportConfig{
			Path:  "./out/structure_analysis.html",
			Title: "Metadata and Facets Structure Analysis",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration from defaults, then merges each config
// file in order (later files override earlier ones), then applies environment
// variable overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies ORDINO_* environment variables on top of file
// configuration.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ORDINO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if path := os.Getenv("ORDINO_WORKSHEET_PATH"); path != "" {
		config.Worksheet.Path = path
	}
	if dir := os.Getenv("ORDINO_DICTIONARIES_RESOURCE_DIR"); dir != "" {
		config.Dictionaries.ResourceDir = dir
	}
	if dir := os.Getenv("ORDINO_DICTIONARIES_SIGNAL_DIR"); dir != "" {
		config.Dictionaries.SignalDir = dir
	}
	if dir := os.Getenv("ORDINO_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}
	if path := os.Getenv("ORDINO_REPORT_PATH"); path != "" {
		config.Report.Path = path
	}
	if level := os.Getenv("ORDINO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority).
// Empty values leave the config untouched.
func ApplyFlagOverrides(config *Config, worksheet, outDir, report string) {
	if worksheet != "" {
		config.Worksheet.Path = worksheet
	}
	if outDir != "" {
		config.Output.Dir = outDir
	}
	if report != "" {
		config.Report.Path = report
	}
}

// Validate validates the configuration using go-playground/validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
