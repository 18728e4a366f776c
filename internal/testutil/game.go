package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/parser"
)

// Well known positions.
const (
	StartFEN      = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN   = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	Position3FEN  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	SmotheredFEN  = "6rk/5Npp/8/8/8/8/8/6K1 b - - 0 1"
	StalemateFEN  = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	FoolsMatePGN  = "[Event \"Fool's mate\"]\n\n1. f3 e5 2. g4 Qh4# 0-1\n"
	TwoKnightsFEN = "4k3/8/8/8/8/5N2/8/1N5K w - - 0 1"
)

// SilentConfig returns a default config whose logger discards everything.
func SilentConfig() *config.Config {
	return config.NewConfigBuilder().WithLog(nil, zerolog.Disabled).Build()
}

// MustParseGames parses pgn and fails the test on any error.
func MustParseGames(t testing.TB, pgn string) []*chess.Game {
	t.Helper()
	games, err := parser.NewParser(strings.NewReader(pgn), SilentConfig()).ParseAllGames()
	if err != nil {
		t.Fatalf("failed to parse test games: %v\n%s", err, pgn)
	}
	return games
}

// MustParseGame parses pgn and returns its single game.
func MustParseGame(t testing.TB, pgn string) *chess.Game {
	t.Helper()
	games := MustParseGames(t, pgn)
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1:\n%s", len(games), pgn)
	}
	return games[0]
}

// MustFEN parses a FEN string and fails the test on error.
func MustFEN(t testing.TB, fen string) chess.Position {
	t.Helper()
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

// MustPlay plays SAN or UCI moves from the standard starting position.
func MustPlay(t testing.TB, moves ...string) *chess.Game {
	t.Helper()
	g := engine.NewGame()
	for _, text := range moves {
		if _, err := engine.PlayText(g, text); err != nil {
			t.Fatalf("playing %q: %v", text, err)
		}
	}
	return g
}
