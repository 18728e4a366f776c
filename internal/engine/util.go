package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// Direction offsets as (file, rank) deltas.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// offset returns the square df files and dr ranks away from sq, or
// NoSquare if that is off the board.
func offset(sq chess.Square, df, dr int) chess.Square {
	return chess.NewSquare(sq.File()+df, sq.Rank()+dr)
}

// pawnStartRank returns the 0-based rank pawns of colour start on.
func pawnStartRank(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return 6
}

// promotionRank returns the 0-based rank on which pawns of colour promote.
func promotionRank(colour chess.Colour) int {
	if colour == chess.White {
		return 7
	}
	return 0
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
