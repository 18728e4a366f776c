package engine

import (
	"sort"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// LegalMoves returns every legal move in the position in canonical order:
// by origin square (a1, b1, .. h8), then destination square, then
// promotion piece queen, rook, bishop, knight.
func LegalMoves(pos chess.Position) []chess.Move {
	pseudo := pseudoLegalMoves(pos)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if !leavesKingInCheck(pos, m) {
			legal = append(legal, m)
		}
	}
	SortMoves(legal)
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(pos chess.Position) bool {
	for _, m := range pseudoLegalMoves(pos) {
		if !leavesKingInCheck(pos, m) {
			return true
		}
	}
	return false
}

// pseudoLegalMoves generates moves that obey piece movement rules for the
// side to move, without testing whether they leave the king in check.
func pseudoLegalMoves(pos chess.Position) []chess.Move {
	colour := pos.ToMove
	moves := make([]chess.Move, 0, 48)

	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := pos.Squares[sq]
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			continue
		}

		switch chess.ExtractPiece(piece) {
		case chess.Pawn:
			moves = genPawnMoves(moves, pos, sq)
		case chess.Knight:
			moves = genStepMoves(moves, pos, sq, knightOffsets)
		case chess.Bishop:
			moves = genSlidingMoves(moves, pos, sq, true, false)
		case chess.Rook:
			moves = genSlidingMoves(moves, pos, sq, false, true)
		case chess.Queen:
			moves = genSlidingMoves(moves, pos, sq, true, true)
		case chess.King:
			moves = genStepMoves(moves, pos, sq, kingOffsets)
		}
	}

	return genCastlingMoves(moves, pos)
}

// leavesKingInCheck makes a move on a copy of the position and checks
// whether the mover's king is attacked afterwards.
func leavesKingInCheck(pos chess.Position, m chess.Move) bool {
	return IsInCheck(makeMove(pos, m), pos.ToMove)
}

// promotionOrder ranks promotion pieces for canonical ordering.
func promotionOrder(p chess.Piece) int {
	switch p {
	case chess.Rook:
		return 1
	case chess.Bishop:
		return 2
	case chess.Knight:
		return 3
	default:
		return 0
	}
}

// moveKey is the canonical sort key of a move.
func moveKey(m chess.Move) int {
	return int(m.From)*chess.NumSquares*8 + int(m.To)*8 + promotionOrder(m.Promotion)
}

// SortMoves puts moves into canonical order: by origin square, then
// destination, then promotion piece Q, R, B, N.
func SortMoves(moves []chess.Move) {
	sort.Slice(moves, func(i, j int) bool {
		return moveKey(moves[i]) < moveKey(moves[j])
	})
}

// findLegal returns the legal move matching m's origin, destination and
// promotion, with its flags filled in.
func findLegal(legal []chess.Move, m chess.Move) (chess.Move, bool) {
	for _, lm := range legal {
		if lm.SameAs(m) {
			return lm, true
		}
	}
	return chess.Move{}, false
}
