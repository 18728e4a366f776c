package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/hashing"
)

// FiftyMoveLimit is the half-move clock value at which a draw can be
// claimed under the fifty-move rule.
const FiftyMoveLimit = 100

// RepetitionLimit is the number of occurrences of a position that makes a
// repetition draw.
const RepetitionLimit = 3

// Status classifies the position reached after the moves in history.
// history holds the earlier positions of the game, oldest first, and may
// be empty. Precedence: checkmate, stalemate, insufficient material,
// fifty-move rule, repetition.
func Status(pos chess.Position, history []chess.Position) chess.Status {
	if !HasLegalMoves(pos) {
		if IsInCheck(pos, pos.ToMove) {
			return chess.StatusCheckmate
		}
		return chess.Stalemate
	}
	if HasInsufficientMaterial(pos) {
		return chess.DrawInsufficientMaterial
	}
	if pos.HalfmoveClock >= FiftyMoveLimit {
		return chess.DrawFiftyMove
	}
	if RepetitionCount(pos, history) >= RepetitionLimit {
		return chess.DrawRepetition
	}
	return chess.Ongoing
}

// GameStatus classifies the current position of a game.
func GameStatus(g *chess.Game) chess.Status {
	return Status(g.Position(), g.History())
}

// RepetitionKey identifies a position for repetition purposes: placement,
// side to move, castling rights, and the en passant square only when an
// en passant capture is actually legal.
func RepetitionKey(pos chess.Position) uint64 {
	return hashing.Zobrist(pos, hasEnPassantCapture(pos))
}

// RepetitionCount returns how many times pos occurs in history plus pos
// itself.
func RepetitionCount(pos chess.Position, history []chess.Position) int {
	key := RepetitionKey(pos)
	count := 1
	for _, earlier := range history {
		if earlier.ToMove == pos.ToMove && RepetitionKey(earlier) == key {
			count++
		}
	}
	return count
}

// hasEnPassantCapture reports whether the side to move has a legal en
// passant capture.
func hasEnPassantCapture(pos chess.Position) bool {
	if !pos.EnPassant.Valid() {
		return false
	}
	for _, m := range LegalMoves(pos) {
		if m.IsEnPassant() {
			return true
		}
	}
	return false
}

// HasInsufficientMaterial returns true if neither side can possibly
// deliver mate. Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - any number of bishops of either side, all on squares of one colour
func HasInsufficientMaterial(pos chess.Position) bool {
	counts := pos.PieceCount()
	knights := 0
	bishops := 0
	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		c := counts[colour]
		if c[chess.Pawn] > 0 || c[chess.Rook] > 0 || c[chess.Queen] > 0 {
			return false
		}
		knights += c[chess.Knight]
		bishops += c[chess.Bishop]
	}

	switch {
	case knights == 0 && bishops == 0:
		return true
	case knights == 1 && bishops == 0:
		return true
	case knights == 0:
		return bishopsOnOneColour(pos)
	}
	return false
}

// bishopsOnOneColour reports whether every bishop on the board stands on
// the same square colour.
func bishopsOnOneColour(pos chess.Position) bool {
	light, dark := false, false
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if chess.ExtractPiece(pos.Squares[sq]) != chess.Bishop {
			continue
		}
		if sq.IsLight() {
			light = true
		} else {
			dark = true
		}
	}
	return !(light && dark)
}
