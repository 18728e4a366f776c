package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lgbarn/chesscore-go/internal/chess"
	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

func TestParseFEN_RoundTrip(t *testing.T) {
	t.Parallel()

	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 57 130",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 3 0",
	}

	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q) error: %v", fen, err)
			}
			if got := SerializeFEN(pos); got != fen {
				t.Errorf("SerializeFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestParseFEN_Fields(t *testing.T) {
	t.Parallel()

	pos, err := ParseFEN("  rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b Kq e3 4 12\n")
	if err != nil {
		t.Fatalf("ParseFEN() error: %v", err)
	}

	if got := pos.Get(chess.E4); got != chess.W(chess.Pawn) {
		t.Errorf("e4 = %v, want white pawn", got)
	}
	if got := pos.Get(chess.E8); got != chess.B(chess.King) {
		t.Errorf("e8 = %v, want black king", got)
	}
	if !pos.IsEmpty(chess.E2) {
		t.Error("e2 should be empty")
	}
	if pos.ToMove != chess.Black {
		t.Errorf("ToMove = %v, want black", pos.ToMove)
	}
	if want := chess.WhiteKingside | chess.BlackQueenside; pos.Castling != want {
		t.Errorf("Castling = %v, want %v", pos.Castling, want)
	}
	if pos.EnPassant != chess.E3 {
		t.Errorf("EnPassant = %v, want e3", pos.EnPassant)
	}
	if pos.HalfmoveClock != 4 || pos.MoveNumber != 12 {
		t.Errorf("counters = %d %d, want 4 12", pos.HalfmoveClock, pos.MoveNumber)
	}
}

func TestParseFEN_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"empty", "", ""},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", ""},
		{"double space", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR  w KQkq - 0 1", ""},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1", "piece placement"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "piece placement"},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "piece placement"},
		{"consecutive digits", "rnbqkbnr/pppppppp/44/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "piece placement"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", "piece placement"},
		{"pawn on last rank", "Pnbqkbnr/pppppppp/8/8/8/8/1PPPPPPP/RNBQKBNR w KQkq - 0 1", "piece placement"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", "side to move"},
		{"castling order", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w QK - 0 1", "castling rights"},
		{"castling duplicate", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1", "castling rights"},
		{"castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1", "castling rights"},
		{"en passant rank", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e4 0 1", "en passant square"},
		{"en passant side", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1", "en passant square"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", "halfmove clock"},
		{"leading zero", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 01", "fullmove number"},
		{"fullmove letters", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x", "fullmove number"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseFEN(tt.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded, want error", tt.fen)
			}
			if !chesserrors.Is(err, chesserrors.ErrInvalidFEN) {
				t.Errorf("error %v is not ErrInvalidFEN", err)
			}
			var fe *chesserrors.FormatError
			if !chesserrors.As(err, &fe) {
				t.Fatalf("error %T is not *FormatError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestParseFEN_ErrorColumn(t *testing.T) {
	t.Parallel()

	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	var fe *chesserrors.FormatError
	if !chesserrors.As(err, &fe) {
		t.Fatalf("error %v is not *FormatError", err)
	}
	want := chesserrors.FormatError{
		Err:    chesserrors.ErrInvalidFEN,
		Field:  "side to move",
		Token:  "x",
		Column: 45,
		Reason: "expected w or b, found",
	}
	if diff := cmp.Diff(want, *fe, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Errorf("FormatError mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckKings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fen    string
		reason string
	}{
		{InitialFEN, ""},
		{"8/8/8/8/8/8/4P3/8 w - - 0 1", "white has 0 kings, want 1"},
		{"8/8/8/8/8/8/4P3/4K3 w - - 0 1", "black has 0 kings, want 1"},
		{"4k3/8/8/8/8/8/8/3KK3 w - - 0 1", "white has 2 kings, want 1"},
	}

	for _, tt := range tests {
		err := CheckKings(MustParseFEN(tt.fen))
		if tt.reason == "" {
			if err != nil {
				t.Errorf("CheckKings(%q) = %v, want nil", tt.fen, err)
			}
			continue
		}
		var fe *chesserrors.FormatError
		if !chesserrors.As(err, &fe) || fe.Field != "piece placement" || fe.Reason != tt.reason {
			t.Errorf("CheckKings(%q) = %v, want %q", tt.fen, err, tt.reason)
		}
	}
}

func TestPositionForTags(t *testing.T) {
	t.Parallel()

	tags := chess.NewTagMap()
	pos, err := PositionForTags(tags)
	if err != nil {
		t.Fatalf("PositionForTags() error: %v", err)
	}
	if diff := cmp.Diff(chess.StartingPosition(), pos); diff != "" {
		t.Errorf("no FEN tag should give the starting position (-want +got):\n%s", diff)
	}

	tags.Set(chess.TagFEN, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	pos, err = PositionForTags(tags)
	if err != nil {
		t.Fatalf("PositionForTags() error: %v", err)
	}
	if pos.KingSquare(chess.White) != chess.E1 || pos.KingSquare(chess.Black) != chess.E8 {
		t.Errorf("kings at %v %v, want e1 e8", pos.KingSquare(chess.White), pos.KingSquare(chess.Black))
	}

	tags.Set(chess.TagFEN, "not a fen")
	if _, err := PositionForTags(tags); !chesserrors.Is(err, chesserrors.ErrInvalidFEN) {
		t.Errorf("bad FEN tag error = %v, want ErrInvalidFEN", err)
	}
}
