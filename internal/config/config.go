package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete analyzer configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Scan    ScanConfig    `yaml:"scan" envconfig:"SCAN"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ScanConfig contains extraction defaults
type ScanConfig struct {
	// ExcludedExtensions are skipped during discovery. Compared
	// case-insensitively, leading dot included.
	ExcludedExtensions []string `yaml:"excluded_extensions" envconfig:"EXCLUDED_EXTENSIONS"`
	// Workers bounds concurrent file extraction. 1 means sequential.
	Workers int `yaml:"workers" envconfig:"WORKERS"`
	// ProgressInterval is the file count between progress log lines.
	ProgressInterval int `yaml:"progress_interval" envconfig:"PROGRESS_INTERVAL"`
}

// ExportConfig contains report output configuration
type ExportConfig struct {
	OutputDir  string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	FilePrefix string `yaml:"file_prefix" envconfig:"FILE_PREFIX"`
}

// Default returns the built-in configuration defaults
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logstats.log",
		},
		Scan: ScanConfig{
			ExcludedExtensions: []string{".exe", ".bat"},
			Workers:            1,
			ProgressInterval:   10,
		},
		Export: ExportConfig{
			OutputDir:  ".",
			FilePrefix: "duration_analysis",
		},
	}
}

// Load builds the effective configuration: built-in defaults, overlaid by
// the YAML file at path when it exists, overlaid by LOGSTATS_* environment
// variables. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFromFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process("LOGSTATS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays YAML configuration onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan workers must be at least 1, got %d", c.Scan.Workers)
	}
	if c.Scan.ProgressInterval < 1 {
		return fmt.Errorf("scan progress interval must be at least 1, got %d", c.Scan.ProgressInterval)
	}
	return nil
}
