package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Taxpayer   TaxpayerConfig   `yaml:"taxpayer"`
	Fiscal     FiscalConfig     `yaml:"fiscal"`
	Paths      PathsConfig      `yaml:"paths"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

// TaxpayerConfig identifies the taxpayer.
type TaxpayerConfig struct {
	Name        string `yaml:"name"`
	TFNLastFour string `yaml:"tfn_last_four,omitempty"`
}

// FiscalConfig pins the working tax year.
type FiscalConfig struct {
	TaxYear string `yaml:"tax_year"` // "YYYY-YY", e.g. "2025-26"
}

// PathsConfig locates the local dataset and export directory, relative to the
// project root unless absolute.
type PathsConfig struct {
	Database  string `yaml:"database"`
	ExportDir string `yaml:"export_dir"`
}

// ThresholdsConfig controls document-extraction verdicts.
type ThresholdsConfig struct {
	AutoAccept float64 `yaml:"auto_accept"`
	ReviewFlag float64 `yaml:"review_flag"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(taxpayerName, taxYear string) *Config {
	return &Config{
		Taxpayer: TaxpayerConfig{
			Name: taxpayerName,
		},
		Fiscal: FiscalConfig{
			TaxYear: taxYear,
		},
		Paths: PathsConfig{
			Database:  "data/tally.db",
			ExportDir: "exports",
		},
		Thresholds: ThresholdsConfig{
			AutoAccept: 0.75,
			ReviewFlag: 0.50,
		},
	}
}
