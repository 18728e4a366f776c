// Package backend defines the board representation interface and the
// process-wide registry of implementations.
//
// The built-in engine is the default. The notnil and dragontooth backends
// wrap third-party move generators and exist mainly to cross-check it.
package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/backend/dragontooth"
	"github.com/lgbarn/chesscore-go/internal/backend/notnil"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Backend parses, serializes, generates and applies moves on positions.
// Implementations must be safe for concurrent use.
type Backend interface {
	Name() string
	ParseFEN(text string) (chess.Position, error)
	SerializeFEN(pos chess.Position) string
	LegalMoves(pos chess.Position) []chess.Move
	ApplyMove(pos chess.Position, m chess.Move) (chess.Position, error)
}

// Engine is the built-in backend.
type Engine struct{}

// Name returns "engine".
func (Engine) Name() string { return config.DefaultBackend }

func (Engine) ParseFEN(text string) (chess.Position, error) { return engine.ParseFEN(text) }

func (Engine) SerializeFEN(pos chess.Position) string { return engine.SerializeFEN(pos) }

func (Engine) LegalMoves(pos chess.Position) []chess.Move { return engine.LegalMoves(pos) }

func (Engine) ApplyMove(pos chess.Position, m chess.Move) (chess.Position, error) {
	return engine.ApplyMove(pos, m)
}

var registry = map[string]Backend{
	config.DefaultBackend: Engine{},
	notnil.Name:           notnil.New(),
	dragontooth.Name:      dragontooth.New(),
}

var (
	mu      sync.RWMutex
	current Backend = Engine{}
)

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", errors.ErrUnknownBackend, name, Names())
	}
	return b, nil
}

// Use makes the named backend current for the process. It is meant to be
// called once during start-up.
func Use(name string, log zerolog.Logger) (Backend, error) {
	b, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	prev := current
	current = b
	mu.Unlock()

	log.Info().
		Str("backend", b.Name()).
		Str("previous", prev.Name()).
		Msg("selected board backend")
	return b, nil
}

// Configure selects the backend named by cfg.Backend, logging through the
// config's logger.
func Configure(cfg *config.Config) (Backend, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Use(cfg.Backend, cfg.Logger())
}

// Current returns the backend selected for the process.
func Current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Perft counts the leaf nodes of the legal move tree of pos to the given
// depth using b.
func Perft(b Backend, pos chess.Position, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := b.LegalMoves(pos)
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		next, err := b.ApplyMove(pos, m)
		if err != nil {
			return 0, fmt.Errorf("%s: %s after %s: %w", b.Name(), m.UCI(), b.SerializeFEN(pos), err)
		}
		n, err := Perft(b, next, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Divide returns the perft count below each move b generates in pos,
// keyed by UCI text.
func Divide(b Backend, pos chess.Position, depth int) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, m := range b.LegalMoves(pos) {
		next, err := b.ApplyMove(pos, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s after %s: %w", b.Name(), m.UCI(), b.SerializeFEN(pos), err)
		}
		n, err := Perft(b, next, depth-1)
		if err != nil {
			return nil, err
		}
		out[m.UCI()] = n
	}
	return out, nil
}

// CrossCheck compares the divide counts of b with the built-in engine's and
// describes every move where they differ, in UCI order. A move missing
// from one side is reported with a count of -1.
func CrossCheck(b Backend, pos chess.Position, depth int) ([]string, error) {
	got, err := Divide(b, pos, depth)
	if err != nil {
		return nil, err
	}
	want := engine.Divide(pos, depth)

	count := func(div map[string]uint64, uci string) int64 {
		n, ok := div[uci]
		if !ok {
			return -1
		}
		return int64(n)
	}
	var diffs []string
	for uci := range want {
		if g, w := count(got, uci), count(want, uci); g != w {
			diffs = append(diffs, fmt.Sprintf("%s: %s %d, engine %d", uci, b.Name(), g, w))
		}
	}
	for uci := range got {
		if _, ok := want[uci]; !ok {
			diffs = append(diffs, fmt.Sprintf("%s: %s %d, engine -1", uci, b.Name(), got[uci]))
		}
	}
	sort.Strings(diffs)
	return diffs, nil
}
