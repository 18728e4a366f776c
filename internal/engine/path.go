package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// canPieceMove reports whether a piece of the given kind could travel from
// one square to another on an otherwise empty board. Pawns are handled by
// the caller since their geometry depends on colour and occupancy.
func canPieceMove(pieceType chess.Piece, from, to chess.Square) bool {
	fileDiff := abs(to.File() - from.File())
	rankDiff := abs(to.Rank() - from.Rank())
	if fileDiff == 0 && rankDiff == 0 {
		return false
	}

	switch pieceType {
	case chess.Knight:
		return (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1)
	case chess.Bishop:
		return fileDiff == rankDiff
	case chess.Rook:
		return fileDiff == 0 || rankDiff == 0
	case chess.Queen:
		return fileDiff == rankDiff || fileDiff == 0 || rankDiff == 0
	case chess.King:
		return fileDiff <= 1 && rankDiff <= 1
	}
	return false
}

// isPathClear checks that every square strictly between from and to is
// empty. The squares must share a rank, file or diagonal.
func isPathClear(pos chess.Position, from, to chess.Square) bool {
	df := sign(to.File() - from.File())
	dr := sign(to.Rank() - from.Rank())

	for sq := offset(from, df, dr); sq != to && sq != chess.NoSquare; sq = offset(sq, df, dr) {
		if !pos.IsEmpty(sq) {
			return false
		}
	}
	return true
}
