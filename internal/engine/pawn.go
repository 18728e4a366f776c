package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// genPawnMoves generates pushes, captures, en passant and promotions for
// the pawn on from.
func genPawnMoves(moves []chess.Move, pos chess.Position, from chess.Square) []chess.Move {
	colour := chess.ExtractColour(pos.Get(from))
	dir := chess.ColourOffset(colour)

	if one := offset(from, 0, dir); one != chess.NoSquare && pos.IsEmpty(one) {
		moves = addPawnMove(moves, from, one, 0)
		if from.Rank() == pawnStartRank(colour) {
			if two := offset(from, 0, 2*dir); pos.IsEmpty(two) {
				moves = append(moves, chess.Move{From: from, To: two, Flags: chess.FlagDoublePush})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := offset(from, df, dir)
		if to == chess.NoSquare {
			continue
		}
		target := pos.Get(to)
		switch {
		case target != chess.Empty && chess.ExtractColour(target) != colour:
			moves = addPawnMove(moves, from, to, chess.FlagCapture)
		case target == chess.Empty && to == pos.EnPassant && enPassantVictimPresent(pos, from, to):
			moves = append(moves, chess.Move{From: from, To: to, Flags: chess.FlagCapture | chess.FlagEnPassant})
		}
	}
	return moves
}

// addPawnMove appends a pawn move, expanding it into the four promotion
// choices when it reaches the last rank.
func addPawnMove(moves []chess.Move, from, to chess.Square, flags chess.MoveFlag) []chess.Move {
	colour := chess.White
	if to.Rank() < from.Rank() {
		colour = chess.Black
	}
	if to.Rank() != promotionRank(colour) {
		return append(moves, chess.Move{From: from, To: to, Flags: flags})
	}
	for _, piece := range chess.PromotionPieces {
		moves = append(moves, chess.Move{From: from, To: to, Promotion: piece, Flags: flags})
	}
	return moves
}

// enPassantVictimSquare returns the square of the pawn removed by an en
// passant capture from from to to.
func enPassantVictimSquare(from, to chess.Square) chess.Square {
	return chess.NewSquare(to.File(), from.Rank())
}

// enPassantVictimPresent checks that an enemy pawn stands beside the
// capturing pawn.
func enPassantVictimPresent(pos chess.Position, from, to chess.Square) bool {
	colour := chess.ExtractColour(pos.Get(from))
	return pos.Get(enPassantVictimSquare(from, to)) == chess.MakeColouredPiece(colour.Opposite(), chess.Pawn)
}
