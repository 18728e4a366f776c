package engine

import "github.com/lgbarn/chesscore-go/internal/chess"

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(pos chess.Position) bool {
	return IsInCheck(pos, pos.ToMove) && !HasLegalMoves(pos)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(pos chess.Position) bool {
	return !IsInCheck(pos, pos.ToMove) && !HasLegalMoves(pos)
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(pos chess.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(pos)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(makeMove(pos, m), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each legal move, keyed by UCI text.
func Divide(pos chess.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range LegalMoves(pos) {
		out[m.UCI()] = Perft(makeMove(pos, m), depth-1)
	}
	return out
}
