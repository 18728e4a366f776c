// Package worker decodes multi-game PGN documents concurrently.
package worker

import (
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/parser"
)

// Chunk is the source text of one game within a document.
type Chunk struct {
	// Index is the 0-based position of the game in the document.
	Index int

	// Text holds the game's tokens and the whitespace around them, split
	// the same way the parser assigns whitespace to game layouts.
	Text string

	// Line and Column of the first byte of Text, both 1-based.
	Line   int
	Column int
}

// SplitGames cuts a document into per-game chunks. A game ends with its
// termination marker plus the whitespace after it; anything before the
// first game belongs to the first chunk. Concatenating the chunk texts
// gives back the document, except when a lexical error stops the split:
// then the complete chunks read so far are returned with the error.
func SplitGames(r io.Reader) ([]Chunk, error) {
	lx := parser.NewLexer(r)

	var chunks []Chunk
	var sb strings.Builder
	cur := Chunk{Line: 1, Column: 1}
	hasTokens := false
	ended := false

	for {
		tok, err := lx.NextToken()
		if err != nil {
			if ended {
				cur.Text = sb.String()
				chunks = append(chunks, cur)
			}
			return chunks, &errors.GameError{Err: err, GameNum: len(chunks) + 1, Line: lx.LineNumber()}
		}

		switch {
		case tok.Type == parser.EOFToken:
			if hasTokens {
				cur.Text = sb.String()
				chunks = append(chunks, cur)
			}
			return chunks, nil

		case tok.Type == parser.Whitespace:
			sb.WriteString(tok.Text)
			continue

		case ended:
			cur.Text = sb.String()
			chunks = append(chunks, cur)
			sb.Reset()
			cur = Chunk{Index: len(chunks), Line: tok.Line, Column: tok.Column}
			ended = false
		}

		sb.WriteString(tok.Text)
		hasTokens = true
		if tok.Type == parser.TerminatingResult {
			ended = true
		}
	}
}
