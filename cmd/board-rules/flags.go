// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/errors"
)

var (
	// Input options
	variantName = flag.String("variant", "western", "Default variant for scripts without a Variant tag: western, xiangqi")
	charset     = flag.String("charset", config.CharsetUTF8, "Input charset: "+strings.Join(config.Charsets, ", "))

	// Output options
	outputFile  = flag.String("o", "", "Output file (default: stdout)")
	logFile     = flag.String("l", "", "Log file for warnings and notifications (default: stderr)")
	jsonOutput  = flag.Bool("J", false, "Output in JSON format")
	parquetFile = flag.String("parquet", "", "Also write one row per move to this parquet file")
	noTurns     = flag.Bool("noturns", false, "Write a compact move list instead of one line per move")
	noLayout    = flag.Bool("nolayout", false, "Don't output the final layout")

	// Replay options
	keepGoing = flag.Bool("keepgoing", false, "Keep replaying a game after an unexpected outcome")
	plyLimit  = flag.Int("plylimit", 0, "Replay at most N moves of each game (0 = no limit)")
	strict    = flag.Bool("strict", false, "Stop at the first script that cannot be parsed")
	workers   = flag.Int("workers", 0, "Games replayed in parallel (0 = one per CPU)")

	// Logging
	verbosity = flag.Int("v", 1, "Verbosity: 0 silent, 1 checks and warnings, 2 also rejections")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyInputFlags configures the default variant and charset.
func applyInputFlags(cfg *config.Config) error {
	v, ok := chess.ParseVariant(strings.ToLower(strings.TrimSpace(*variantName)))
	if !ok {
		return fmt.Errorf("variant %q: %w", *variantName, errors.ErrInvalidConfig)
	}
	cfg.Variant = v
	cfg.Charset = *charset
	return nil
}

// applyOutputFlags configures report formatting.
func applyOutputFlags(cfg *config.Config) {
	if *jsonOutput {
		cfg.Output.Format = config.JSONFormat
	} else {
		cfg.Output.Format = config.TextFormat
	}
	cfg.Output.ParquetFile = *parquetFile
	cfg.Output.ShowTurns = !*noTurns
	cfg.Output.ShowLayout = !*noLayout
}

// applyReplayFlags configures how games are replayed.
func applyReplayFlags(cfg *config.Config) {
	cfg.Replay.KeepGoing = *keepGoing
	cfg.Replay.PlyLimit = *plyLimit
	cfg.Replay.Strict = *strict
	cfg.Workers = *workers
}

// applyFlags applies all command-line flags to the configuration and
// validates the result.
func applyFlags(cfg *config.Config) error {
	if err := applyInputFlags(cfg); err != nil {
		return err
	}
	applyOutputFlags(cfg)
	applyReplayFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
	return cfg.Validate()
}
