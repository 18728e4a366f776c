// Package dragontooth adapts the dragontoothmg bitboard move generator to
// the backend interface.
package dragontooth

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Name is the registry name of this backend.
const Name = "dragontooth"

// Backend generates and applies moves with dragontoothmg. Positions are
// validated by the engine's FEN codec before dragontoothmg sees them, since
// its own parser does not report errors.
type Backend struct{}

// New returns the dragontoothmg backend.
func New() Backend { return Backend{} }

func (Backend) Name() string { return Name }

// ParseFEN parses text and rejects positions dragontoothmg cannot search,
// which are those without exactly one king per side.
func (Backend) ParseFEN(text string) (chess.Position, error) {
	pos, err := engine.ParseFEN(text)
	if err != nil {
		return chess.Position{}, err
	}
	if err := engine.CheckKings(pos); err != nil {
		return chess.Position{}, err
	}
	return pos, nil
}

func (Backend) SerializeFEN(pos chess.Position) string {
	return engine.SerializeFEN(pos)
}

// LegalMoves returns the moves dragontoothmg generates for pos in
// canonical order. It returns nil if pos lacks a king on either side.
func (Backend) LegalMoves(pos chess.Position) []chess.Move {
	board, err := load(pos)
	if err != nil {
		return nil
	}
	generated := board.GenerateLegalMoves()
	moves := make([]chess.Move, 0, len(generated))
	for _, gm := range generated {
		m, ok := chess.ParseUCI(gm.String())
		if !ok {
			continue
		}
		moves = append(moves, chess.AnnotateMove(pos, m))
	}
	engine.SortMoves(moves)
	return moves
}

// ApplyMove plays m if dragontoothmg lists it as legal.
func (Backend) ApplyMove(pos chess.Position, m chess.Move) (chess.Position, error) {
	board, err := load(pos)
	if err != nil {
		return chess.Position{}, err
	}
	uci := m.UCI()
	for _, gm := range board.GenerateLegalMoves() {
		if gm.String() != uci {
			continue
		}
		board.Apply(gm)
		next, err := engine.ParseFEN(board.ToFen())
		if err != nil {
			return chess.Position{}, fmt.Errorf("dragontoothmg produced %w", err)
		}
		next.EnPassant = chess.NoSquare
		if played := chess.AnnotateMove(pos, m); played.IsDoublePush() {
			next.EnPassant = chess.NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
		return next, nil
	}

	illegal := &errors.IllegalMoveError{
		From:   m.From.String(),
		To:     m.To.String(),
		Reason: errors.ReasonUnreachable,
	}
	if m.Promotion != chess.Empty {
		illegal.Promotion = string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return chess.Position{}, illegal
}

func load(pos chess.Position) (dragontoothmg.Board, error) {
	if err := engine.CheckKings(pos); err != nil {
		return dragontoothmg.Board{}, err
	}
	return dragontoothmg.ParseFen(engine.SerializeFEN(pos)), nil
}
