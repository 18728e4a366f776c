package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
)

// Castling SAN text.
const (
	KingsideCastleText  = "O-O"
	QueensideCastleText = "O-O-O"
)

// RenderSAN returns the SAN text of a move in pos. The move must be legal.
func RenderSAN(pos chess.Position, m chess.Move) (string, error) {
	legal := LegalMoves(pos)
	lm, ok := findLegal(legal, m)
	if !ok {
		return "", illegalMove(pos, m)
	}
	return renderSAN(pos, lm, legal), nil
}

// renderSAN formats a legal move with flags, using the full legal move
// list of pos for disambiguation.
func renderSAN(pos chess.Position, m chess.Move, legal []chess.Move) string {
	buf := make([]byte, 0, 8)
	kind := chess.ExtractPiece(pos.Get(m.From))

	switch {
	case m.Flags&chess.FlagKingsideCastle != 0:
		buf = append(buf, KingsideCastleText...)
	case m.Flags&chess.FlagQueensideCastle != 0:
		buf = append(buf, QueensideCastleText...)
	case kind == chess.Pawn:
		if m.IsCapture() {
			buf = append(buf, m.From.FileLetter(), 'x')
		}
		buf = append(buf, m.To.String()...)
		if m.Promotion != chess.Empty {
			buf = append(buf, '=', m.Promotion.Letter())
		}
	default:
		buf = append(buf, kind.Letter())
		buf = append(buf, disambiguation(pos, m, kind, legal)...)
		if m.IsCapture() {
			buf = append(buf, 'x')
		}
		buf = append(buf, m.To.String()...)
	}

	switch givesCheck(makeMove(pos, m)) {
	case chess.Check:
		buf = append(buf, '+')
	case chess.Checkmate:
		buf = append(buf, '#')
	}
	return string(buf)
}

// disambiguation returns the origin file, rank, or both, whichever is the
// shortest that tells m apart from other legal moves of the same piece kind
// to the same square.
func disambiguation(pos chess.Position, m chess.Move, kind chess.Piece, legal []chess.Move) string {
	ambiguous, sameFile, sameRank := false, false, false
	for _, other := range legal {
		if other.To != m.To || other.From == m.From || other.IsCastle() {
			continue
		}
		if chess.ExtractPiece(pos.Get(other.From)) != kind {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(m.From.FileLetter())
	case !sameRank:
		return string(m.From.RankDigit())
	default:
		return m.From.String()
	}
}
