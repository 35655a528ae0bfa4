package config

import (
	"io"

	"github.com/lgbarn/board-rules-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithVariant sets the default variant.
func (b *ConfigBuilder) WithVariant(v chess.Variant) *ConfigBuilder {
	b.cfg.Variant = v
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithCharset sets the input charset.
func (b *ConfigBuilder) WithCharset(name string) *ConfigBuilder {
	b.cfg.Charset = name
	return b
}

// WithWorkers sets the number of parallel replays.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	if enabled {
		b.cfg.Output.Format = JSONFormat
	} else {
		b.cfg.Output.Format = TextFormat
	}
	return b
}

// WithParquetFile sets the per-ply parquet export path.
func (b *ConfigBuilder) WithParquetFile(path string) *ConfigBuilder {
	b.cfg.Output.ParquetFile = path
	return b
}

// WithPlyLimit stops each game after n plies.
func (b *ConfigBuilder) WithPlyLimit(n int) *ConfigBuilder {
	b.cfg.Replay.PlyLimit = n
	return b
}

// KeepGoing controls whether a game continues past its first surprise.
func (b *ConfigBuilder) KeepGoing(keep bool) *ConfigBuilder {
	b.cfg.Replay.KeepGoing = keep
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
