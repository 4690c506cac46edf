// Package config loads and validates the YAML configuration that drives an
// extraction run.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/tsawler/tabula/tables"
	"gopkg.in/yaml.v2"
)

// TableSettings holds the geometric tolerances handed to the table detector.
// Fields are pointers so values absent from the YAML keep the detector's own
// defaults.
type TableSettings struct {
	MinRows            *int     `yaml:"min_rows"`
	MinCols            *int     `yaml:"min_cols"`
	MinConfidence      *float64 `yaml:"min_confidence"`
	UseLines           *bool    `yaml:"use_lines"`
	UseWhitespace      *bool    `yaml:"use_whitespace"`
	MaxCellGap         *float64 `yaml:"max_cell_gap"`
	AlignmentTolerance *float64 `yaml:"alignment_tolerance"`
	DetectMergedCells  *bool    `yaml:"detect_merged_cells"`
}

// DetectorConfig builds the detector configuration, starting from the
// library defaults and overriding only the fields set in the YAML.
func (s TableSettings) DetectorConfig() tables.Config {
	cfg := tables.DefaultConfig()
	if s.MinRows != nil {
		cfg.MinRows = *s.MinRows
	}
	if s.MinCols != nil {
		cfg.MinCols = *s.MinCols
	}
	if s.MinConfidence != nil {
		cfg.MinConfidence = *s.MinConfidence
	}
	if s.UseLines != nil {
		cfg.UseLines = *s.UseLines
	}
	if s.UseWhitespace != nil {
		cfg.UseWhitespace = *s.UseWhitespace
	}
	if s.MaxCellGap != nil {
		cfg.MaxCellGap = *s.MaxCellGap
	}
	if s.AlignmentTolerance != nil {
		cfg.AlignmentTolerance = *s.AlignmentTolerance
	}
	if s.DetectMergedCells != nil {
		cfg.DetectMergedCells = *s.DetectMergedCells
	}
	return cfg
}

// Config is the parsed configuration for one run. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	PDFURL        string        `yaml:"pdf_url"`
	Pattern       string        `yaml:"pattern"`
	TableSettings TableSettings `yaml:"table_settings"`

	titlePattern *regexp.Regexp
}

// Load reads the YAML file at path and validates it. The PDF_URL environment
// variable, when set, overrides the configured source URL. A missing required
// key or a malformed title pattern is fatal here, before any network access.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if url := os.Getenv("PDF_URL"); url != "" {
		cfg.PDFURL = url
	}
	if cfg.PDFURL == "" {
		return nil, fmt.Errorf("config is missing pdf_url")
	}
	if cfg.Pattern == "" {
		return nil, fmt.Errorf("config is missing pattern")
	}

	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid title pattern %q: %w", cfg.Pattern, err)
	}
	cfg.titlePattern = re

	return &cfg, nil
}

// TitlePattern returns the compiled title regular expression.
func (c *Config) TitlePattern() *regexp.Regexp {
	return c.titlePattern
}
