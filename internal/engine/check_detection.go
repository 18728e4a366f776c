package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
// A side without a king is never in check.
func IsInCheck(pos chess.Position, colour chess.Colour) bool {
	kingSq := pos.KingSquare(colour)
	if kingSq == chess.NoSquare {
		return false
	}
	return IsSquareAttacked(pos, kingSq, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given
// colour. Pawns attack diagonally forward; their pushes do not count.
func IsSquareAttacked(pos chess.Position, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, relative to their direction.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnDir := -chess.ColourOffset(byColour)
	for _, df := range [2]int{-1, 1} {
		if pos.Get(offset(sq, df, pawnDir)) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if pos.Get(offset(sq, o[0], o[1])) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if pos.Get(offset(sq, o[0], o[1])) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	for _, dir := range diagonalDirs {
		if slideHits(pos, sq, dir, bishop, queen) {
			return true
		}
	}

	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	for _, dir := range straightDirs {
		if slideHits(pos, sq, dir, rook, queen) {
			return true
		}
	}

	return false
}

// slideHits walks from sq along dir and reports whether the first piece
// met is a or b.
func slideHits(pos chess.Position, sq chess.Square, dir [2]int, a, b chess.Piece) bool {
	for cur := offset(sq, dir[0], dir[1]); cur != chess.NoSquare; cur = offset(cur, dir[0], dir[1]) {
		piece := pos.Get(cur)
		if piece == chess.Empty {
			continue
		}
		return piece == a || piece == b
	}
	return false
}

// givesCheck classifies the position after a move from the point of view
// of the side now to move.
func givesCheck(next chess.Position) chess.CheckStatus {
	if !IsInCheck(next, next.ToMove) {
		return chess.NoCheck
	}
	if HasLegalMoves(next) {
		return chess.Check
	}
	return chess.Checkmate
}
