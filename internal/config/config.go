// Package config provides configuration for the chess core: PGN parsing
// and export options, logging, the batch decoder and backend selection.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// DefaultBackend is the name of the built-in move generator backend.
const DefaultBackend = "engine"

// Config holds all library configuration.
type Config struct {
	// Sub-configurations
	Output    *OutputConfig
	Parse     *ParseConfig
	Duplicate *DuplicateConfig

	// Workers is the number of goroutines used by the batch decoder.
	Workers int

	// Backend names the board backend selected at start-up.
	Backend string

	// Logging
	LogFile  io.Writer
	LogLevel zerolog.Level
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Output:    NewOutputConfig(),
		Parse:     NewParseConfig(),
		Duplicate: NewDuplicateConfig(),
		Workers:   runtime.GOMAXPROCS(0),
		Backend:   DefaultBackend,
		LogFile:   os.Stderr,
		LogLevel:  zerolog.WarnLevel,
	}
}

// Logger returns a zerolog logger writing to LogFile at LogLevel.
func (c *Config) Logger() zerolog.Logger {
	w := c.LogFile
	if w == nil {
		w = io.Discard
	}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
}

// Validate checks the configuration for values no component can work
// with.
func (c *Config) Validate() error {
	switch {
	case c.Output == nil || c.Parse == nil || c.Duplicate == nil:
		return fmt.Errorf("%w: missing sub-configuration", errors.ErrInvalidConfig)
	case c.Output.MaxLineLength < MinLineLength:
		return fmt.Errorf("%w: line length %d is below %d", errors.ErrInvalidConfig, c.Output.MaxLineLength, MinLineLength)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", errors.ErrInvalidConfig, c.Workers)
	case c.Backend == "":
		return fmt.Errorf("%w: empty backend name", errors.ErrInvalidConfig)
	case c.Duplicate.MaxCapacity < 0:
		return fmt.Errorf("%w: negative duplicate capacity", errors.ErrInvalidConfig)
	}
	return nil
}
