// Package notnil adapts github.com/notnil/chess to the backend interface.
package notnil

import (
	"fmt"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Name is the registry name of this backend.
const Name = "notnil"

// Backend generates and applies moves with notnil/chess. FEN text is read
// and written by the engine's codec so all backends agree on the format.
type Backend struct{}

// New returns the notnil backend.
func New() Backend { return Backend{} }

// Name returns "notnil".
func (Backend) Name() string { return Name }

// ParseFEN parses text and checks notnil/chess accepts it too.
func (Backend) ParseFEN(text string) (chess.Position, error) {
	pos, err := engine.ParseFEN(text)
	if err != nil {
		return chess.Position{}, err
	}
	if _, err := load(pos); err != nil {
		return chess.Position{}, err
	}
	return pos, nil
}

func (Backend) SerializeFEN(pos chess.Position) string {
	return engine.SerializeFEN(pos)
}

// LegalMoves returns the moves notnil/chess generates for pos in canonical
// order. It returns nil if the position cannot be loaded.
func (Backend) LegalMoves(pos chess.Position) []chess.Move {
	np, err := load(pos)
	if err != nil {
		return nil
	}
	valid := np.ValidMoves()
	moves := make([]chess.Move, 0, len(valid))
	for _, vm := range valid {
		m, ok := chess.ParseUCI(vm.String())
		if !ok {
			continue
		}
		moves = append(moves, chess.AnnotateMove(pos, m))
	}
	engine.SortMoves(moves)
	return moves
}

// ApplyMove plays m if notnil/chess lists it as legal.
func (Backend) ApplyMove(pos chess.Position, m chess.Move) (chess.Position, error) {
	np, err := load(pos)
	if err != nil {
		return chess.Position{}, err
	}

	uci := m.UCI()
	for _, vm := range np.ValidMoves() {
		if vm.String() != uci {
			continue
		}
		next, err := engine.ParseFEN(np.Update(vm).String())
		if err != nil {
			return chess.Position{}, fmt.Errorf("notnil produced %w", err)
		}
		next.EnPassant = chess.NoSquare
		if played := chess.AnnotateMove(pos, m); played.IsDoublePush() {
			next.EnPassant = chess.NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
		return next, nil
	}
	return chess.Position{}, &errors.IllegalMoveError{
		From:      m.From.String(),
		To:        m.To.String(),
		Promotion: promotionLetter(m),
		Reason:    errors.ReasonUnreachable,
	}
}

func load(pos chess.Position) (*nchess.Position, error) {
	if err := engine.CheckKings(pos); err != nil {
		return nil, err
	}
	opt, err := nchess.FEN(engine.SerializeFEN(pos))
	if err != nil {
		return nil, &errors.FormatError{
			Err:    errors.ErrInvalidFEN,
			Field:  "position",
			Reason: err.Error(),
		}
	}
	return nchess.NewGame(opt).Position(), nil
}

func promotionLetter(m chess.Move) string {
	if m.Promotion == chess.Empty {
		return ""
	}
	return string(m.Promotion.Letter() + ('a' - 'A'))
}
