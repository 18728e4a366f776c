package engine

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
)

// NewGame returns a game starting from the standard initial position.
func NewGame() *chess.Game {
	return chess.NewGame(chess.StartingPosition())
}

// NewGameFromFEN returns a game starting from a FEN position. The FEN and
// SetUp tags are recorded on the game.
func NewGameFromFEN(fen string) (*chess.Game, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := chess.NewGame(pos)
	g.Tags().Set(chess.TagSetUp, "1")
	g.Tags().Set(chess.TagFEN, SerializeFEN(pos))
	return g, nil
}

// Play applies a move to the game's current position and records it along
// with its SAN text.
func Play(g *chess.Game, m chess.Move) error {
	pos := g.Position()
	legal := LegalMoves(pos)
	lm, ok := findLegal(legal, m)
	if !ok {
		return illegalMove(pos, m)
	}
	san := renderSAN(pos, lm, legal)
	g.Append(lm, san, makeMove(pos, lm))
	return nil
}

// PlayText resolves UCI or SAN text in the game's current position and
// plays it.
func PlayText(g *chess.Game, text string) (chess.Move, error) {
	m, err := ResolveText(g.Position(), text)
	if err != nil {
		return chess.Move{}, err
	}
	return m, Play(g, m)
}
