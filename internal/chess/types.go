// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Piece represents a chess piece type, or a coloured piece when built with
// MakeColouredPiece.
type Piece uint8

const (
	Empty Piece = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceFromLetter converts an upper or lower case piece letter to a piece type.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return Empty
	}
}

// PromotionPieces lists the promotion choices in canonical priority order.
var PromotionPieces = [...]Piece{Queen, Rook, Bishop, Knight}

// IsPromotionPiece reports whether a pawn may promote to p.
func IsPromotionPiece(p Piece) bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// Board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// FENLetter returns the FEN letter of a coloured piece: upper case for
// White, lower case for Black.
func FENLetter(colouredPiece Piece) byte {
	letter := ExtractPiece(colouredPiece).Letter()
	if ExtractColour(colouredPiece) == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// CheckStatus indicates whether a move gives check or checkmate.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)

// Status classifies a position at the end of a move.
type Status int

const (
	Ongoing Status = iota
	StatusCheckmate
	Stalemate
	DrawFiftyMove
	DrawInsufficientMaterial
	DrawRepetition
)

var statusNames = [...]string{
	Ongoing:                  "ongoing",
	StatusCheckmate:          "checkmate",
	Stalemate:                "stalemate",
	DrawFiftyMove:            "draw-fifty-move",
	DrawInsufficientMaterial: "draw-insufficient-material",
	DrawRepetition:           "draw-repetition",
}

// String returns the string representation of a status.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// IsTerminal reports whether the status ends the game.
func (s Status) IsTerminal() bool {
	return s != Ongoing
}

// Result is a PGN game termination marker.
type Result string

const (
	WhiteWins    Result = "1-0"
	BlackWins    Result = "0-1"
	Draw         Result = "1/2-1/2"
	NoResult     Result = "*"
	NullMoveText        = "--"
)

// ParseResult converts a result token; ok is false for anything else.
func ParseResult(s string) (Result, bool) {
	switch r := Result(s); r {
	case WhiteWins, BlackWins, Draw, NoResult:
		return r, true
	}
	return "", false
}
