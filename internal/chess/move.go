package chess

import "golang.org/x/exp/slices"

// MoveFlag describes properties of a move relative to the position it was
// generated from.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagKingsideCastle
	FlagQueensideCastle
	FlagDoublePush
)

// Move represents a single chess move. Flags are only meaningful on moves
// produced by the move generator for a particular position.
type Move struct {
	From Square
	To   Square

	// The piece kind promoted to (Empty if not a promotion).
	Promotion Piece

	Flags MoveFlag
}

// NewMove creates a move without flags.
func NewMove(from, to Square, promotion Piece) Move {
	return Move{From: from, To: to, Promotion: promotion}
}

// IsCapture returns true if this move captures, including en passant.
func (m Move) IsCapture() bool {
	return m.Flags&FlagCapture != 0
}

// IsEnPassant returns true if this move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flags&FlagEnPassant != 0
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != Empty
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flags&(FlagKingsideCastle|FlagQueensideCastle) != 0
}

// IsDoublePush returns true if this move is a pawn advancing two squares.
func (m Move) IsDoublePush() bool {
	return m.Flags&FlagDoublePush != 0
}

// SameAs compares origin, destination and promotion, ignoring flags.
func (m Move) SameAs(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

// UCI returns the long algebraic form used by UCI engines, e.g. "e2e4" or
// "e7e8q".
func (m Move) UCI() string {
	buf := make([]byte, 0, 5)
	buf = append(buf, m.From.String()...)
	buf = append(buf, m.To.String()...)
	if m.Promotion != Empty {
		buf = append(buf, m.Promotion.Letter()+('a'-'A'))
	}
	return string(buf)
}

// String returns the UCI form of the move.
func (m Move) String() string {
	return m.UCI()
}

// ParseUCI decodes long algebraic text such as "e2e4" or "a7a8q".
// The returned move carries no flags.
func ParseUCI(text string) (Move, bool) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, false
	}
	from, ok := ParseSquare(text[0:2])
	if !ok {
		return Move{}, false
	}
	to, ok := ParseSquare(text[2:4])
	if !ok {
		return Move{}, false
	}
	m := NewMove(from, to, Empty)
	if len(text) == 5 {
		c := text[4]
		if c < 'a' || c > 'z' {
			return Move{}, false
		}
		m.Promotion = PieceFromLetter(c)
		if !IsPromotionPiece(m.Promotion) {
			return Move{}, false
		}
	}
	return m, true
}

// AnnotateMove sets the flags of m from the pieces on pos. It does not
// check that m is legal.
func AnnotateMove(pos Position, m Move) Move {
	m.Flags = 0
	piece := pos.Get(m.From)
	if piece == Empty {
		return m
	}
	if pos.Get(m.To) != Empty {
		m.Flags |= FlagCapture
	}

	fileDelta := m.To.File() - m.From.File()
	rankDelta := m.To.Rank() - m.From.Rank()
	switch ExtractPiece(piece) {
	case Pawn:
		if rankDelta == 2 || rankDelta == -2 {
			m.Flags |= FlagDoublePush
		}
		if fileDelta != 0 && m.To == pos.EnPassant && pos.Get(m.To) == Empty {
			m.Flags |= FlagCapture | FlagEnPassant
		}
	case King:
		if fileDelta == 2 {
			m.Flags |= FlagKingsideCastle
		} else if fileDelta == -2 {
			m.Flags |= FlagQueensideCastle
		}
	}
	return m
}

// Annotation holds the NAGs and comments that follow a move in PGN
// movetext.
type Annotation struct {
	NAGs     []string // e.g. "$1"
	Comments []string // comment bodies without braces
}

// HasNAGs returns true if this annotation has any NAGs.
func (a Annotation) HasNAGs() bool {
	return len(a.NAGs) > 0
}

// HasComments returns true if this annotation has any comments.
func (a Annotation) HasComments() bool {
	return len(a.Comments) > 0
}

// IsEmpty reports whether there is nothing to print after the move.
func (a Annotation) IsEmpty() bool {
	return !a.HasNAGs() && !a.HasComments()
}

func (a Annotation) clone() Annotation {
	return Annotation{
		NAGs:     slices.Clone(a.NAGs),
		Comments: slices.Clone(a.Comments),
	}
}
