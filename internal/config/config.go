// Package config provides configuration for board-rules.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/errors"
)

// Charset names accepted for script input.
const (
	CharsetUTF8        = "utf-8"
	CharsetLatin1      = "latin1"
	CharsetWindows1252 = "windows-1252"
	CharsetShiftJIS    = "shift-jis"
)

// Charsets lists the canonical charset names.
var Charsets = []string{CharsetUTF8, CharsetLatin1, CharsetWindows1252, CharsetShiftJIS}

var charsetAliases = map[string]string{
	"":             CharsetUTF8,
	"utf8":         CharsetUTF8,
	"utf-8":        CharsetUTF8,
	"latin1":       CharsetLatin1,
	"latin-1":      CharsetLatin1,
	"iso-8859-1":   CharsetLatin1,
	"iso8859-1":    CharsetLatin1,
	"cp1252":       CharsetWindows1252,
	"windows1252":  CharsetWindows1252,
	"windows-1252": CharsetWindows1252,
	"sjis":         CharsetShiftJIS,
	"shiftjis":     CharsetShiftJIS,
	"shift-jis":    CharsetShiftJIS,
	"shift_jis":    CharsetShiftJIS,
}

// NormalizeCharset maps a charset name or alias to its canonical name.
func NormalizeCharset(name string) (string, bool) {
	c, ok := charsetAliases[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Config holds all program configuration.
type Config struct {
	// Variant used for scripts without a Variant tag.
	Variant chess.Variant

	// 0=nothing, 1=check announcements, 2=rejections as well
	Verbosity int

	// Input charset of scripts (see Charsets).
	Charset string

	// Number of scripts replayed in parallel; 0 means one per CPU.
	Workers int

	Output *OutputConfig
	Replay *ReplayConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Variant:    chess.Western,
		Verbosity:  1,
		Charset:    CharsetUTF8,
		Output:     NewOutputConfig(),
		Replay:     NewReplayConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate checks the configuration for values the replay cannot use.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if _, ok := NormalizeCharset(c.Charset); !ok {
		return fmt.Errorf("charset %q (want one of %s): %w",
			c.Charset, strings.Join(Charsets, ", "), errors.ErrInvalidConfig)
	}
	if c.Output != nil {
		if err := c.Output.Validate(); err != nil {
			return err
		}
	}
	if c.Replay != nil {
		if err := c.Replay.Validate(); err != nil {
			return err
		}
	}
	return nil
}
