package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// SANMove is the lexical content of a SAN token, before it is matched
// against a position.
type SANMove struct {
	// Piece kind moved; Pawn for pawn moves, King for castling.
	Piece chess.Piece

	// Disambiguation hints, -1 when absent.
	FromFile int
	FromRank int

	To        chess.Square
	Promotion chess.Piece
	Capture   bool

	// FlagKingsideCastle or FlagQueensideCastle for castling, else 0.
	Castle chess.MoveFlag

	// Trailing "+" or "#" as written.
	Check string

	// Trailing move assessment such as "!" or "?!" as written.
	Assessment string
}

// isFile returns true if c is a valid file character.
func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

// sanPiece returns the piece named by an upper-case SAN letter.
func sanPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N':
		return chess.PieceFromLetter(c)
	}
	return chess.Empty
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// DecodeSAN splits SAN text into its parts. It accepts "0-0" for castling,
// an optional "=" before the promotion piece, and trailing check marks and
// assessments. It does not consult a position.
func DecodeSAN(text string) (SANMove, error) {
	d := SANMove{FromFile: -1, FromRank: -1, To: chess.NoSquare}
	s := text

	end := len(s)
	for end > 0 && (s[end-1] == '!' || s[end-1] == '?') {
		end--
	}
	d.Assessment = s[end:]
	s = s[:end]

	end = len(s)
	for end > 0 && (s[end-1] == '+' || s[end-1] == '#') {
		end--
	}
	d.Check = s[end:]
	s = s[:end]

	if s == "" {
		return d, fmt.Errorf("empty move text")
	}

	if isCastlingChar(s[0]) {
		return decodeCastle(d, s, text)
	}

	d.Piece = chess.Pawn
	if p := sanPiece(s[0]); p != chess.Empty {
		d.Piece = p
		s = s[1:]
	}

	// Promotion suffix: "=Q" or "Q".
	if n := len(s); n > 0 {
		if p := sanPiece(s[n-1]); p != chess.Empty {
			if d.Piece != chess.Pawn || !chess.IsPromotionPiece(p) {
				return d, fmt.Errorf("unexpected piece letter at end of %q", text)
			}
			d.Promotion = p
			s = s[:n-1]
			s = strings.TrimSuffix(s, "=")
		} else if s[n-1] == '=' {
			return d, fmt.Errorf("missing promotion piece in %q", text)
		}
	}

	if len(s) < 2 || !isFile(s[len(s)-2]) || !isRank(s[len(s)-1]) {
		return d, fmt.Errorf("missing destination square in %q", text)
	}
	d.To, _ = chess.ParseSquare(s[len(s)-2:])
	s = s[:len(s)-2]

	if n := len(s); n > 0 && (s[n-1] == 'x' || s[n-1] == ':') {
		d.Capture = true
		s = s[:n-1]
	}

	switch len(s) {
	case 0:
	case 1:
		switch {
		case isFile(s[0]):
			d.FromFile = int(s[0] - 'a')
		case isRank(s[0]):
			d.FromRank = int(s[0] - '1')
		default:
			return d, fmt.Errorf("invalid disambiguation in %q", text)
		}
	case 2:
		if !isFile(s[0]) || !isRank(s[1]) {
			return d, fmt.Errorf("invalid disambiguation in %q", text)
		}
		d.FromFile = int(s[0] - 'a')
		d.FromRank = int(s[1] - '1')
	default:
		return d, fmt.Errorf("unrecognised move text %q", text)
	}

	if d.Piece == chess.Pawn && d.Capture && d.FromFile < 0 {
		return d, fmt.Errorf("pawn capture without origin file in %q", text)
	}
	return d, nil
}

// decodeCastle accepts O-O, O-O-O and their 0 and o spellings.
func decodeCastle(d SANMove, s, text string) (SANMove, error) {
	parts := strings.Split(s, "-")
	for _, p := range parts {
		if len(p) != 1 || !isCastlingChar(p[0]) {
			return d, fmt.Errorf("malformed castling %q", text)
		}
	}
	d.Piece = chess.King
	switch len(parts) {
	case 2:
		d.Castle = chess.FlagKingsideCastle
	case 3:
		d.Castle = chess.FlagQueensideCastle
	default:
		return d, fmt.Errorf("malformed castling %q", text)
	}
	return d, nil
}
