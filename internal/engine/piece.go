package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// addMove appends a non-pawn move, flagging it as a capture if the target
// square is occupied.
func addMove(moves []chess.Move, pos chess.Position, from, to chess.Square) []chess.Move {
	m := chess.Move{From: from, To: to}
	if !pos.IsEmpty(to) {
		m.Flags |= chess.FlagCapture
	}
	return append(moves, m)
}

// canLandOn reports whether a piece of colour may end its move on sq.
func canLandOn(pos chess.Position, sq chess.Square, colour chess.Colour) bool {
	target := pos.Get(sq)
	return target == chess.Empty || chess.ExtractColour(target) != colour
}

// genStepMoves generates knight or king steps from a square.
func genStepMoves(moves []chess.Move, pos chess.Position, from chess.Square, offsets [8][2]int) []chess.Move {
	colour := chess.ExtractColour(pos.Get(from))
	for _, o := range offsets {
		to := offset(from, o[0], o[1])
		if to != chess.NoSquare && canLandOn(pos, to, colour) {
			moves = addMove(moves, pos, from, to)
		}
	}
	return moves
}

// genSlidingMoves generates bishop, rook and queen moves. Each ray stops at
// the first occupied square, which is included if it holds an enemy piece.
func genSlidingMoves(moves []chess.Move, pos chess.Position, from chess.Square, diagonal, straight bool) []chess.Move {
	colour := chess.ExtractColour(pos.Get(from))

	slide := func(dir [2]int) {
		for to := offset(from, dir[0], dir[1]); to != chess.NoSquare; to = offset(to, dir[0], dir[1]) {
			target := pos.Get(to)
			if target == chess.Empty {
				moves = addMove(moves, pos, from, to)
				continue
			}
			if chess.ExtractColour(target) != colour {
				moves = addMove(moves, pos, from, to)
			}
			break
		}
	}

	if diagonal {
		for _, dir := range diagonalDirs {
			slide(dir)
		}
	}
	if straight {
		for _, dir := range straightDirs {
			slide(dir)
		}
	}
	return moves
}
