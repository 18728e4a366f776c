package chess

// Square identifies one of the 64 board squares, a1=0 through h8=63,
// rank-major.
type Square int8

// NoSquare marks an absent square, e.g. no en passant target.
const NoSquare Square = -1

// Named squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from 0-based file and rank indices.
// It returns NoSquare when either index is off the board.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// File returns the 0-based file (0 = a).
func (s Square) File() int { return int(s) % BoardSize }

// Rank returns the 0-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) / BoardSize }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// IsLight reports whether s is a light square.
func (s Square) IsLight() bool { return (s.File()+s.Rank())%2 == 1 }

// FileLetter returns the file as 'a'..'h'.
func (s Square) FileLetter() byte { return byte('a' + s.File()) }

// RankDigit returns the rank as '1'..'8'.
func (s Square) RankDigit() byte { return byte('1' + s.Rank()) }

// String returns the algebraic name of the square, or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.FileLetter(), s.RankDigit()})
}

// ParseSquare converts algebraic text such as "e4" to a Square.
func ParseSquare(text string) (Square, bool) {
	if len(text) != 2 {
		return NoSquare, false
	}
	f, r := text[0], text[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, false
	}
	return NewSquare(int(f-'a'), int(r-'1')), true
}

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// castlingLetters is the FEN order of the rights.
var castlingLetters = [...]struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool { return c&r == r }

// String returns the FEN castling field.
func (c CastlingRights) String() string {
	if c == NoCastling {
		return "-"
	}
	buf := make([]byte, 0, 4)
	for _, cl := range castlingLetters {
		if c.Has(cl.right) {
			buf = append(buf, cl.letter)
		}
	}
	return string(buf)
}

// CastlingRightFromLetter maps a FEN castling letter to its right.
func CastlingRightFromLetter(letter byte) (CastlingRights, bool) {
	for _, cl := range castlingLetters {
		if cl.letter == letter {
			return cl.right, true
		}
	}
	return NoCastling, false
}

// KingsideRight returns the king-side right of colour.
func KingsideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queen-side right of colour.
func QueensideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// Position is an immutable snapshot of the board and all state needed to
// continue the game from it. It is a plain value: copying a Position copies
// the whole board, and two Positions compare equal with == when they
// describe the same FEN.
type Position struct {
	// Coloured pieces indexed by Square; Empty for vacant squares.
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// Castling options still available to either side.
	Castling CastlingRights

	// The square a pawn passed over on the previous double push,
	// or NoSquare.
	EnPassant Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// The current full move number.
	MoveNumber uint
}

// NewPosition returns an empty board with White to move.
func NewPosition() Position {
	return Position{
		ToMove:     White,
		EnPassant:  NoSquare,
		MoveNumber: 1,
	}
}

// StartingPosition returns the standard chess starting position.
func StartingPosition() Position {
	p := NewPosition()
	backRank := [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		p.Squares[NewSquare(file, 0)] = W(backRank[file])
		p.Squares[NewSquare(file, 1)] = W(Pawn)
		p.Squares[NewSquare(file, 6)] = B(Pawn)
		p.Squares[NewSquare(file, 7)] = B(backRank[file])
	}
	p.Castling = AllCastling
	return p
}

// Get returns the coloured piece on sq, or Empty.
func (p Position) Get(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return p.Squares[sq]
}

// Set places a coloured piece on sq. Set(sq, Empty) clears it.
func (p *Position) Set(sq Square, piece Piece) {
	if sq.Valid() {
		p.Squares[sq] = piece
	}
}

// IsEmpty reports whether sq holds no piece.
func (p Position) IsEmpty(sq Square) bool {
	return p.Get(sq) == Empty
}

// KingSquare returns the square of colour's king, or NoSquare if there is
// none on the board.
func (p Position) KingSquare(colour Colour) Square {
	king := MakeColouredPiece(colour, King)
	for sq := Square(0); sq < NumSquares; sq++ {
		if p.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// PieceCount tallies the pieces of each colour and kind.
func (p Position) PieceCount() (counts [2][NumPieceValues]int) {
	for _, piece := range p.Squares {
		if piece != Empty {
			counts[ExtractColour(piece)][ExtractPiece(piece)]++
		}
	}
	return counts
}
