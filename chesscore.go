// Package chesscore parses, validates and writes chess positions and games.
//
// Positions travel as FEN and games as PGN. Every move is checked against
// the full rules of chess, moves are rendered and read in SAN, and a parsed
// PGN document is written back byte for byte unless the game was changed.
package chesscore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lgbarn/chesscore-go/internal/backend"
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/parser"
	"github.com/lgbarn/chesscore-go/internal/worker"
)

type (
	// Position is an immutable board snapshot.
	Position = chess.Position

	// Move is a single move; only moves from LegalMoves carry flags.
	Move = chess.Move

	// Game is a start position, the moves played from it, tags and a result.
	Game = chess.Game

	Status = chess.Status
	Result = chess.Result

	// Backend parses, serializes, generates and applies moves.
	Backend = backend.Backend

	Config        = config.Config
	ConfigBuilder = config.ConfigBuilder
)

var (
	mu      sync.RWMutex
	current = config.NewConfig()
)

// NewConfigBuilder returns a builder seeded with the default configuration.
func NewConfigBuilder() *ConfigBuilder {
	return config.NewConfigBuilder()
}

// Configure validates cfg, selects its backend and makes it the
// configuration used by the package-level functions. Call it once during
// start-up.
func Configure(cfg *Config) error {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := backend.Configure(cfg); err != nil {
		return err
	}
	mu.Lock()
	current = cfg
	mu.Unlock()
	return nil
}

// UseBackend selects the named backend for the process, keeping the rest
// of the configuration.
func UseBackend(name string) error {
	cfg := *currentConfig()
	cfg.Backend = name
	return Configure(&cfg)
}

// CurrentBackend returns the selected backend.
func CurrentBackend() Backend {
	return backend.Current()
}

func currentConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// ParseFEN parses a FEN string.
func ParseFEN(text string) (Position, error) {
	return backend.Current().ParseFEN(text)
}

// SerializeFEN writes pos as FEN.
func SerializeFEN(pos Position) string {
	return backend.Current().SerializeFEN(pos)
}

// LegalMoves returns every legal move in pos.
func LegalMoves(pos Position) []Move {
	return backend.Current().LegalMoves(pos)
}

// ApplyMove plays m on pos and returns the new position. Flags on m are
// ignored.
func ApplyMove(pos Position, m Move) (Position, error) {
	return backend.Current().ApplyMove(pos, m)
}

// ApplyMoveText plays a move given as SAN ("Nf3") or UCI ("g1f3").
func ApplyMoveText(pos Position, text string) (Position, error) {
	m, err := engine.ResolveText(pos, text)
	if err != nil {
		return Position{}, err
	}
	return ApplyMove(pos, m)
}

// GameStatus classifies pos. history holds the earlier positions of the
// game, oldest first, for repetition detection.
func GameStatus(pos Position, history []Position) Status {
	return engine.Status(pos, history)
}

// RenderSAN writes m in Standard Algebraic Notation.
func RenderSAN(pos Position, m Move) (string, error) {
	return engine.RenderSAN(pos, m)
}

// ParseSAN resolves SAN text to the legal move it denotes.
func ParseSAN(pos Position, text string) (Move, error) {
	return engine.ParseSAN(pos, text)
}

// ParsePGN parses every game in text. Nothing is returned on error. Empty
// text holds no games; text made only of whitespace is rejected since it
// could not be written back.
func ParsePGN(text string) ([]*Game, error) {
	if text == "" {
		return []*Game{}, nil
	}
	games, err := parser.NewParser(strings.NewReader(text), currentConfig()).ParseAllGames()
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, noGames()
	}
	return games, nil
}

// ParsePGNConcurrent parses the games of text on up to workers goroutines.
// The result matches ParsePGN.
func ParsePGNConcurrent(ctx context.Context, text string, workers int) ([]*Game, error) {
	if text == "" {
		return []*Game{}, nil
	}
	cfg := *currentConfig()
	if workers > 0 {
		cfg.Workers = workers
	}
	games, err := worker.NewDecoder(&cfg).DecodeString(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, noGames()
	}
	return games, nil
}

func noGames() error {
	return &errors.FormatError{
		Err:    errors.ErrInvalidPGN,
		Field:  "movetext",
		Reason: "no games",
	}
}

// PGNDecoder reads games one at a time from a stream.
type PGNDecoder struct {
	p *parser.Parser
}

// NewPGNDecoder returns a decoder reading from r.
func NewPGNDecoder(r io.Reader) *PGNDecoder {
	return &PGNDecoder{p: parser.NewParser(r, currentConfig())}
}

// Decode returns the next game, or io.EOF after the last one. An error
// other than io.EOF is returned again by every later call.
func (d *PGNDecoder) Decode() (*Game, error) {
	g, err := d.p.ParseGame()
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, io.EOF
	}
	return g, nil
}

// SerializePGN writes a game as PGN. A game parsed from text and not
// changed since is written exactly as it was read.
func SerializePGN(g *Game) string {
	return output.SerializeGame(g, currentConfig())
}

// SerializePGNGames writes several games as one PGN document.
func SerializePGNGames(games []*Game) string {
	return output.SerializeGames(games, currentConfig())
}

// NewGame starts a game from the standard position, or from fen when it is
// not empty.
func NewGame(fen string) (*Game, error) {
	if fen == "" {
		return engine.NewGame(), nil
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return g, nil
}

// Play appends a move given as SAN or UCI to g.
func Play(g *Game, text string) error {
	_, err := engine.PlayText(g, text)
	return err
}

// GameJSON returns an indented JSON view of g: its tags, result and status,
// and for every move the SAN, UCI and FEN after it.
func GameJSON(g *Game) ([]byte, error) {
	var buf bytes.Buffer
	if err := output.NewJSONWriterSingle(&buf, currentConfig()).WriteGame(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Diagram draws pos as a text board with rank 8 at the top. With coloured
// set the board uses terminal colours.
func Diagram(pos Position, coloured bool) string {
	return output.Diagram(pos, coloured)
}

// Encoder writes games to a stream.
type Encoder struct {
	w output.GameWriter
}

// NewPGNEncoder returns an encoder writing PGN to w. Games are separated
// the same way SerializePGNGames separates them.
func NewPGNEncoder(w io.Writer) *Encoder {
	return &Encoder{w: output.NewPGNWriter(w, currentConfig())}
}

// NewJSONEncoder returns an encoder that collects games and writes them to
// w as one JSON document on Flush or Close.
func NewJSONEncoder(w io.Writer) *Encoder {
	return &Encoder{w: output.NewJSONWriter(w, currentConfig())}
}

// Encode writes g, or queues it for a JSON encoder.
func (e *Encoder) Encode(g *Game) error {
	return e.w.WriteGame(g)
}

// Flush writes any queued games.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Close flushes the encoder. It does not close the underlying writer.
func (e *Encoder) Close() error {
	return e.w.Close()
}

// Perft counts the leaf nodes of the legal move tree of pos to depth with
// the current backend.
func Perft(pos Position, depth int) (uint64, error) {
	return backend.Perft(backend.Current(), pos, depth)
}

// CrossCheckBackend counts the moves below pos to depth with the named
// backend and with the built-in engine, and describes every root move on
// which the two disagree. No output means the backends agree.
func CrossCheckBackend(name string, pos Position, depth int) ([]string, error) {
	b, err := backend.Lookup(name)
	if err != nil {
		return nil, err
	}
	return backend.CrossCheck(b, pos, depth)
}

