package output

import (
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// Diagram draws a position as text, rank 8 at the top, followed by a line
// naming the side to move. With coloured set, squares and pieces are drawn
// with terminal colours; otherwise pieces are FEN letters and empty squares
// are dots.
func Diagram(pos chess.Position, coloured bool) string {
	var sb strings.Builder

	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.NewSquare(file, rank)
			piece := pos.Get(sq)
			if coloured {
				sb.WriteString(colouredCell(sq, piece))
				continue
			}
			sb.WriteByte(' ')
			if piece == chess.Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(chess.FENLetter(piece))
			}
		}
		sb.WriteByte('\n')
	}

	if coloured {
		sb.WriteString("  a  b  c  d  e  f  g  h\n")
	} else {
		sb.WriteString("  a b c d e f g h\n")
	}
	sb.WriteString(pos.ToMove.String())
	sb.WriteString(" to move\n")
	return sb.String()
}

// colouredCell renders one square three characters wide.
func colouredCell(sq chess.Square, piece chess.Piece) string {
	attrs := []color.Attribute{color.BgGreen}
	if sq.IsLight() {
		attrs = []color.Attribute{color.BgYellow}
	}

	text := "   "
	if piece != chess.Empty {
		if chess.ExtractColour(piece) == chess.White {
			attrs = append(attrs, color.FgHiWhite, color.Bold)
		} else {
			attrs = append(attrs, color.FgBlack)
		}
		text = " " + string(chess.ExtractPiece(piece).Letter()) + " "
	}

	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}
