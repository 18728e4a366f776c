package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// ParseSAN resolves SAN text to the unique legal move it denotes in pos.
// It fails with UnknownMoveError when no legal move matches and with
// AmbiguousMoveError when more than one does.
func ParseSAN(pos chess.Position, text string) (chess.Move, error) {
	if text == chess.NullMoveText || text == "Z0" {
		return chess.Move{}, &errors.UnknownMoveError{Text: text, Reason: "null moves are not supported"}
	}

	d, err := DecodeSAN(text)
	if err != nil {
		return chess.Move{}, &errors.UnknownMoveError{Text: text, Reason: err.Error()}
	}

	var matches []chess.Move
	for _, m := range LegalMoves(pos) {
		if sanMatches(pos, d, m) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return chess.Move{}, &errors.UnknownMoveError{Text: text, Reason: "no legal move matches"}
	case 1:
		return matches[0], nil
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.UCI()
	}
	return chess.Move{}, &errors.AmbiguousMoveError{Text: text, Candidates: candidates}
}

// sanMatches reports whether a legal move fits the decoded SAN. A capture
// may omit its "x", but a move marked as a capture must take something.
func sanMatches(pos chess.Position, d SANMove, m chess.Move) bool {
	if d.Castle != 0 {
		return m.Flags&d.Castle != 0
	}
	if m.IsCastle() || m.To != d.To || m.Promotion != d.Promotion {
		return false
	}
	if d.Capture && !m.IsCapture() {
		return false
	}
	if chess.ExtractPiece(pos.Get(m.From)) != d.Piece {
		return false
	}
	if d.FromFile >= 0 && m.From.File() != d.FromFile {
		return false
	}
	if d.FromRank >= 0 && m.From.Rank() != d.FromRank {
		return false
	}
	// A pawn move without an origin file is a push along its own file.
	if d.Piece == chess.Pawn && d.FromFile < 0 && m.From.File() != d.To.File() {
		return false
	}
	return true
}

// ResolveText accepts either UCI text ("e2e4", "e7e8q") or SAN and returns
// the legal move it denotes.
func ResolveText(pos chess.Position, text string) (chess.Move, error) {
	if m, ok := chess.ParseUCI(text); ok {
		lm, found := findLegal(LegalMoves(pos), m)
		if !found {
			return chess.Move{}, illegalMove(pos, m)
		}
		return lm, nil
	}
	return ParseSAN(pos, text)
}

// ApplyText resolves UCI or SAN text and plays it.
func ApplyText(pos chess.Position, text string) (chess.Position, error) {
	m, err := ResolveText(pos, text)
	if err != nil {
		return chess.Position{}, err
	}
	return makeMove(pos, m), nil
}
