package hashing

import "github.com/lgbarn/chesscore-go/internal/chess"

// Zobrist key tables, filled deterministically at start-up.
var (
	pieceKeys    [2][chess.NumPieceValues][chess.NumSquares]uint64
	castlingKeys [16]uint64
	epFileKeys   [chess.BoardSize]uint64
	blackToMove  uint64
)

func init() {
	rng := splitMix64(0x9E3779B97F4A7C15)
	for c := range pieceKeys {
		for p := range pieceKeys[c] {
			for sq := range pieceKeys[c][p] {
				pieceKeys[c][p][sq] = rng.next()
			}
		}
	}
	for i := range castlingKeys {
		castlingKeys[i] = rng.next()
	}
	for i := range epFileKeys {
		epFileKeys[i] = rng.next()
	}
	blackToMove = rng.next()
}

// splitMix64 is a small deterministic generator for the key tables.
type splitMix64 uint64

func (s *splitMix64) next() uint64 {
	*s += 0x9E3779B97F4A7C15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Zobrist hashes the piece placement, side to move and castling rights of
// a position. The en passant file is included only when withEnPassant is
// set, so that callers can leave out targets no pawn can capture on.
func Zobrist(pos chess.Position, withEnPassant bool) uint64 {
	var h uint64
	for sq, piece := range pos.Squares {
		if piece == chess.Empty {
			continue
		}
		h ^= pieceKeys[chess.ExtractColour(piece)][chess.ExtractPiece(piece)][sq]
	}
	h ^= castlingKeys[pos.Castling&chess.AllCastling]
	if pos.ToMove == chess.Black {
		h ^= blackToMove
	}
	if withEnPassant && pos.EnPassant.Valid() {
		h ^= epFileKeys[pos.EnPassant.File()]
	}
	return h
}

// WeakHash is a cheap placement-only hash used as a second check when
// Zobrist keys collide.
func WeakHash(pos chess.Position) uint32 {
	var h uint32
	for sq, piece := range pos.Squares {
		if piece != chess.Empty {
			h += uint32(piece) * uint32(sq+1) * 2654435761
		}
	}
	return h
}
