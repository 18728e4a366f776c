package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ApplyMove plays a move and returns the resulting position. The move is
// matched against the legal moves of pos by origin, destination and
// promotion; any flags set by the caller are ignored. pos itself is not
// modified.
func ApplyMove(pos chess.Position, m chess.Move) (chess.Position, error) {
	legal, ok := findLegal(LegalMoves(pos), m)
	if !ok {
		return chess.Position{}, illegalMove(pos, m)
	}
	return makeMove(pos, legal), nil
}

// makeMove applies a move produced by the generator for pos without
// checking legality.
func makeMove(pos chess.Position, m chess.Move) chess.Position {
	next := pos
	colour := pos.ToMove
	piece := next.Get(m.From)
	isPawn := chess.ExtractPiece(piece) == chess.Pawn

	next.Set(m.From, chess.Empty)
	if m.IsEnPassant() {
		next.Set(enPassantVictimSquare(m.From, m.To), chess.Empty)
	}
	if m.Promotion != chess.Empty {
		piece = chess.MakeColouredPiece(colour, m.Promotion)
	}
	next.Set(m.To, piece)

	if m.IsCastle() {
		if rule := castleRuleFor(m); rule != nil {
			rook := next.Get(rule.rook)
			next.Set(rule.rook, chess.Empty)
			next.Set(rule.rookTo, rook)
		}
	}

	next.Castling = updateCastlingRights(pos.Castling, m.From, m.To)

	next.EnPassant = chess.NoSquare
	if m.IsDoublePush() {
		next.EnPassant = chess.NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if isPawn || m.IsCapture() {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if colour == chess.Black {
		next.MoveNumber++
	}
	next.ToMove = colour.Opposite()

	return next
}

// illegalMove builds the error for a move that is not in the legal set,
// working out the most specific reason.
func illegalMove(pos chess.Position, m chess.Move) error {
	err := &errors.IllegalMoveError{
		From:   m.From.String(),
		To:     m.To.String(),
		Reason: illegalReason(pos, m),
	}
	if m.Promotion != chess.Empty {
		err.Promotion = string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return err
}

func illegalReason(pos chess.Position, m chess.Move) errors.IllegalReason {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return errors.ReasonUnreachable
	}

	piece := pos.Get(m.From)
	if piece == chess.Empty {
		return errors.ReasonNoPiece
	}
	colour := chess.ExtractColour(piece)
	if colour != pos.ToMove {
		return errors.ReasonWrongSide
	}
	kind := chess.ExtractPiece(piece)

	// A pseudo-legal move with the same squares: either the promotion is
	// wrong or the move exposes the king.
	for _, pm := range pseudoLegalMoves(pos) {
		if pm.From != m.From || pm.To != m.To {
			continue
		}
		if pm.Promotion != m.Promotion {
			return errors.ReasonMalformedPromotion
		}
		return errors.ReasonKingInCheck
	}

	if m.Promotion != chess.Empty && (kind != chess.Pawn || m.To.Rank() != promotionRank(colour)) {
		return errors.ReasonMalformedPromotion
	}

	if kind == chess.King && m.From.Rank() == m.To.Rank() && abs(m.To.File()-m.From.File()) == 2 {
		return errors.ReasonCastlingNotAllowed
	}

	if target := pos.Get(m.To); target != chess.Empty && chess.ExtractColour(target) == colour {
		return errors.ReasonBlockedPath
	}

	if kind == chess.Pawn {
		return pawnIllegalReason(m, colour)
	}

	if !canPieceMove(kind, m.From, m.To) {
		return errors.ReasonUnreachable
	}
	if kind != chess.Knight && kind != chess.King && !isPathClear(pos, m.From, m.To) {
		return errors.ReasonBlockedPath
	}
	return errors.ReasonUnreachable
}

// pawnIllegalReason explains why a pawn move shape failed.
func pawnIllegalReason(m chess.Move, colour chess.Colour) errors.IllegalReason {
	dir := chess.ColourOffset(colour)
	fileDiff := m.To.File() - m.From.File()
	rankDiff := m.To.Rank() - m.From.Rank()

	switch {
	case fileDiff == 0 && rankDiff == dir:
		return errors.ReasonBlockedPath
	case fileDiff == 0 && rankDiff == 2*dir && m.From.Rank() == pawnStartRank(colour):
		return errors.ReasonBlockedPath
	}
	return errors.ReasonUnreachable
}
