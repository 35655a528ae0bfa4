package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lgbarn/board-rules-go/internal/errors"
)

// OutputFormat selects the report format.
type OutputFormat int

const (
	TextFormat OutputFormat = iota // One line per ply plus a summary
	JSONFormat                     // One JSON document per run
)

// String returns the format's flag name.
func (f OutputFormat) String() string {
	if f == JSONFormat {
		return "json"
	}
	return "text"
}

// OutputConfig holds settings related to the replay report.
type OutputConfig struct {
	// Format specifies the report format
	Format OutputFormat

	// ShowTurns lists every ply, not just the summary
	ShowTurns bool

	// ShowLayout adds the final placement string to the summary
	ShowLayout bool

	// ParquetFile, when set, receives one row per replayed ply
	ParquetFile string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:     TextFormat,
		ShowTurns:  true,
		ShowLayout: true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.ParquetFile != "" && !strings.EqualFold(filepath.Ext(o.ParquetFile), ".parquet") {
		return fmt.Errorf("parquet file %q must end in .parquet: %w", o.ParquetFile, errors.ErrInvalidConfig)
	}
	return nil
}
