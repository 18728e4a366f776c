// Package engine provides chess move generation, validation and the
// notation codecs built on them.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN field names used in error reports.
const (
	fieldPlacement = "piece placement"
	fieldSide      = "side to move"
	fieldCastling  = "castling rights"
	fieldEnPassant = "en passant square"
	fieldHalfmove  = "halfmove clock"
	fieldFullmove  = "fullmove number"
)

// fenError reports a FEN violation at a 0-based byte offset.
func fenError(field, token string, offset int, reason string) error {
	return &errors.FormatError{
		Err:    errors.ErrInvalidFEN,
		Field:  field,
		Token:  token,
		Column: offset + 1,
		Reason: reason,
	}
}

// CheckKings reports an error unless each side has exactly one king.
// ParseFEN accepts any king count; move generators that locate the king
// by table lookup call this first.
func CheckKings(pos chess.Position) error {
	counts := pos.PieceCount()
	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		if n := counts[colour][chess.King]; n != 1 {
			return &errors.FormatError{
				Err:    errors.ErrInvalidFEN,
				Field:  fieldPlacement,
				Reason: fmt.Sprintf("%s has %d kings, want 1", strings.ToLower(colour.String()), n),
			}
		}
	}
	return nil
}

// ParseFEN decodes a FEN string. Surrounding whitespace is ignored; the
// six fields must be separated by single spaces.
func ParseFEN(text string) (chess.Position, error) {
	lead := len(text) - len(strings.TrimLeft(text, " \t\r\n"))
	body := strings.TrimSpace(text)
	if body == "" {
		return chess.Position{}, fenError("", "", 0, "empty FEN string")
	}

	fields := strings.Split(body, " ")
	offsets := make([]int, len(fields))
	at := lead
	for i, f := range fields {
		offsets[i] = at
		if f == "" {
			return chess.Position{}, fenError("", "", at, "fields must be separated by a single space")
		}
		at += len(f) + 1
	}
	if len(fields) != 6 {
		return chess.Position{}, fenError("", "", lead, "expected 6 fields, found "+strconv.Itoa(len(fields)))
	}

	pos := chess.NewPosition()

	if err := parsePiecePlacement(&pos, fields[0], offsets[0]); err != nil {
		return chess.Position{}, err
	}
	if err := parseSideToMove(&pos, fields[1], offsets[1]); err != nil {
		return chess.Position{}, err
	}
	if err := parseCastlingRights(&pos, fields[2], offsets[2]); err != nil {
		return chess.Position{}, err
	}
	if err := parseEnPassant(&pos, fields[3], offsets[3]); err != nil {
		return chess.Position{}, err
	}

	halfmove, err := parseCounter(fields[4], offsets[4], fieldHalfmove)
	if err != nil {
		return chess.Position{}, err
	}
	fullmove, err := parseCounter(fields[5], offsets[5], fieldFullmove)
	if err != nil {
		return chess.Position{}, err
	}
	pos.HalfmoveClock = halfmove
	pos.MoveNumber = fullmove

	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error. It is intended for
// package-level tables and tests with known-good input.
func MustParseFEN(text string) chess.Position {
	pos, err := ParseFEN(text)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement field of a FEN string.
func parsePiecePlacement(pos *chess.Position, field string, offset int) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fieldPlacement, field, offset,
			"expected 8 ranks, found "+strconv.Itoa(len(ranks)))
	}

	at := offset
	for i, rankText := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		prevDigit := false

		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			charAt := at + j

			if c >= '1' && c <= '8' {
				if prevDigit {
					return fenError(fieldPlacement, rankText, charAt, "consecutive empty-square digits in rank")
				}
				prevDigit = true
				file += int(c - '0')
				if file > chess.BoardSize {
					return fenError(fieldPlacement, rankText, charAt, "rank has more than 8 files")
				}
				continue
			}
			prevDigit = false

			piece := chess.PieceFromLetter(c)
			if piece == chess.Empty {
				return fenError(fieldPlacement, string(c), charAt, "invalid piece character")
			}
			if file >= chess.BoardSize {
				return fenError(fieldPlacement, rankText, charAt, "rank has more than 8 files")
			}
			if piece == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
				return fenError(fieldPlacement, string(c), charAt, "pawn on first or last rank")
			}

			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			pos.Set(chess.NewSquare(file, rank), chess.MakeColouredPiece(colour, piece))
			file++
		}

		if file != chess.BoardSize {
			return fenError(fieldPlacement, rankText, at, "rank does not sum to 8 files")
		}
		at += len(rankText) + 1
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *chess.Position, field string, offset int) error {
	switch field {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return fenError(fieldSide, field, offset, "expected w or b, found")
	}
	return nil
}

// parseCastlingRights parses the castling availability field. Rights must
// appear at most once each and in KQkq order.
func parseCastlingRights(pos *chess.Position, field string, offset int) error {
	pos.Castling = chess.NoCastling
	if field == "-" {
		return nil
	}

	var last chess.CastlingRights
	for i := 0; i < len(field); i++ {
		right, ok := chess.CastlingRightFromLetter(field[i])
		if !ok {
			return fenError(fieldCastling, string(field[i]), offset+i, "invalid castling character")
		}
		if pos.Castling.Has(right) {
			return fenError(fieldCastling, string(field[i]), offset+i, "duplicate castling right")
		}
		if right < last {
			return fenError(fieldCastling, field, offset+i, "castling rights not in KQkq order")
		}
		pos.Castling |= right
		last = right
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(pos *chess.Position, field string, offset int) error {
	pos.EnPassant = chess.NoSquare
	if field == "-" {
		return nil
	}

	sq, ok := chess.ParseSquare(field)
	if !ok {
		return fenError(fieldEnPassant, field, offset, "invalid square")
	}

	wantRank := 5
	if pos.ToMove == chess.Black {
		wantRank = 2
	}
	if sq.Rank() != wantRank {
		return fenError(fieldEnPassant, field, offset, "square inconsistent with side to move")
	}
	pos.EnPassant = sq
	return nil
}

// parseCounter parses a non-negative decimal counter without sign or
// leading zeros.
func parseCounter(field string, offset int, name string) (uint, error) {
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, fenError(name, field, offset, "not a non-negative integer")
		}
	}
	if len(field) > 1 && field[0] == '0' {
		return 0, fenError(name, field, offset, "leading zero in")
	}
	n, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fenError(name, field, offset, "out of range")
	}
	return uint(n), nil
}

// SerializeFEN converts a position to a FEN string.
func SerializeFEN(pos chess.Position) string {
	var sb strings.Builder

	writePiecePlacement(&sb, pos)
	sb.WriteByte(' ')
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(pos.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(pos.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(pos.HalfmoveClock), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(pos.MoveNumber), 10))

	return sb.String()
}

// writePiecePlacement writes the piece placement to the builder.
func writePiecePlacement(sb *strings.Builder, pos chess.Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := pos.Get(chess.NewSquare(file, rank))
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(chess.FENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// PositionForTags returns the start position named by a FEN tag,
// or the standard starting position if there is none.
func PositionForTags(tags *chess.TagMap) (chess.Position, error) {
	fen, ok := tags.Lookup(chess.TagFEN)
	if !ok {
		return chess.StartingPosition(), nil
	}
	return ParseFEN(fen)
}
