package config

import (
	"io"

	"github.com/rs/zerolog"
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

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled, exact bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	b.cfg.Duplicate.ExactMatch = exact
	return b
}

// WithDuplicateCapacity bounds the duplicate detector.
func (b *ConfigBuilder) WithDuplicateCapacity(n int) *ConfigBuilder {
	b.cfg.Duplicate.MaxCapacity = n
	return b
}

// WithWorkers sets the batch decoder concurrency.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithBackend selects the board backend by name.
func (b *ConfigBuilder) WithBackend(name string) *ConfigBuilder {
	b.cfg.Backend = name
	return b
}

// WithLog sets the log destination and level.
func (b *ConfigBuilder) WithLog(w io.Writer, level zerolog.Level) *ConfigBuilder {
	b.cfg.LogFile = w
	b.cfg.LogLevel = level
	return b
}

// AllowComments controls whether brace comments are accepted on input.
func (b *ConfigBuilder) AllowComments(allow bool) *ConfigBuilder {
	b.cfg.Parse.AllowComments = allow
	return b
}

// KeepComments controls whether comments are written on export.
func (b *ConfigBuilder) KeepComments(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepComments = keep
	return b
}

// KeepNAGs controls whether NAGs are written on export.
func (b *ConfigBuilder) KeepNAGs(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepNAGs = keep
	return b
}

// KeepMoveNumbers controls whether move numbers are written on export.
func (b *ConfigBuilder) KeepMoveNumbers(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepMoveNumbers = keep
	return b
}
