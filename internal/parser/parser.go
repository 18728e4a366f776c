package parser

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Parser parses PGN input into Game structures. Every move is validated
// against the rules, and the exact source spelling of each game is kept as
// its layout so that an unmodified game serializes back to the same bytes.
type Parser struct {
	lexer *Lexer
	cfg   *config.Config
	log   zerolog.Logger

	// tok is the lookahead token. It is added to a layout only when
	// consumed; whitespace goes to the current layout as it is read.
	tok    Token
	layout *chess.Layout

	started bool
	gameNum int

	// pending holds an error found while reading past the end of the
	// previous game. It belongs to the next game.
	pending error
	err     error
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r),
		cfg:   cfg,
		log:   cfg.Logger(),
	}
}

// SetOrigin makes the parser report positions and game numbers as if its
// input were a part of a larger document starting with game gameNum at
// line and column. It must be called before the first ParseGame.
func (p *Parser) SetOrigin(gameNum, line, column int) {
	p.gameNum = gameNum - 1
	p.lexer.SetOrigin(line, column)
}

// next loads the next significant token, adding whitespace on the way to
// the current layout.
func (p *Parser) next() error {
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return err
		}
		if tok.Type != Whitespace {
			p.tok = tok
			return nil
		}
		p.layout.AddTrail(tok.Text)
	}
}

// consume records the lookahead token in the layout and advances.
func (p *Parser) consume() error {
	p.layout.Append(p.tok.Text)
	return p.next()
}

// unexpected reports the lookahead token as a format error.
func (p *Parser) unexpected(field, reason string) error {
	if p.tok.Type == EOFToken {
		reason += ", found end of input"
	}
	return &errors.FormatError{
		Err:    errors.ErrInvalidPGN,
		Field:  field,
		Token:  p.tok.Text,
		Line:   p.tok.Line,
		Column: p.tok.Column,
		Reason: reason,
	}
}

// wrap adds game context to an error.
func (p *Parser) wrap(err error, ply int) error {
	var ge *errors.GameError
	if errors.As(err, &ge) {
		return err
	}
	return &errors.GameError{Err: err, GameNum: p.gameNum, PlyNum: ply, Line: p.tok.Line}
}

// ParseGame parses a single game from the input.
// Returns nil, nil if no more games are available. After an error the
// parser stays failed and returns the same error.
func (p *Parser) ParseGame() (*chess.Game, error) {
	if p.err != nil {
		return nil, p.err
	}
	game, err := p.parseGame()
	if err != nil {
		p.err = err
		return nil, err
	}
	return game, nil
}

func (p *Parser) parseGame() (*chess.Game, error) {
	layout := &chess.Layout{}
	p.layout = layout

	if p.pending != nil {
		p.gameNum++
		return nil, p.wrap(p.pending, 0)
	}
	if !p.started {
		p.started = true
		if err := p.next(); err != nil {
			p.gameNum++
			return nil, p.wrap(err, 0)
		}
	}
	if p.tok.Type == EOFToken {
		return nil, nil
	}
	p.gameNum++

	tags, err := p.parseTagSection()
	if err != nil {
		return nil, p.wrap(err, 0)
	}

	start, err := engine.PositionForTags(tags)
	if err != nil {
		return nil, p.wrap(err, 0)
	}
	game := chess.NewGame(start)
	for _, name := range tags.Keys() {
		game.Tags().Set(name, tags.Get(name))
	}

	if err := p.parseMovetext(game); err != nil {
		return nil, p.wrap(err, game.PlyCount())
	}

	game.SetLayout(layout)
	p.log.Debug().
		Int("game", p.gameNum).
		Int("plies", game.PlyCount()).
		Str("result", string(game.Result())).
		Msg("decoded game")
	return game, nil
}

// parseTagSection parses zero or more tag pairs.
func (p *Parser) parseTagSection() (*chess.TagMap, error) {
	tags := chess.NewTagMap()

	for p.tok.Type == TagStart {
		if err := p.consume(); err != nil {
			return nil, err
		}

		if p.tok.Type != SymbolToken {
			return nil, p.unexpected("tag pair", "expected tag name")
		}
		name := p.tok
		if err := p.consume(); err != nil {
			return nil, err
		}

		if p.tok.Type != StringToken {
			return nil, p.unexpected("tag pair", "expected quoted tag value")
		}
		value := p.tok.Value
		if err := p.consume(); err != nil {
			return nil, err
		}

		if p.tok.Type != TagEnd {
			return nil, p.unexpected("tag pair", "expected ']'")
		}
		if err := p.consume(); err != nil {
			return nil, err
		}

		if err := tags.Add(name.Value, value); err != nil {
			return nil, &errors.FormatError{
				Err:    errors.ErrInvalidPGN,
				Field:  "tag pair",
				Token:  name.Value,
				Line:   name.Line,
				Column: name.Column,
				Reason: "duplicate tag",
			}
		}
	}
	return tags, nil
}

// parseMovetext parses moves, move numbers, comments and NAGs up to and
// including the game termination marker.
func (p *Parser) parseMovetext(game *chess.Game) error {
	expectMove := false

	for {
		switch p.tok.Type {
		case CommentToken:
			if !p.cfg.Parse.AllowComments {
				return p.unexpected("movetext", "comments are not allowed")
			}
			if err := game.AddComment(game.PlyCount(), p.tok.Value); err != nil {
				return err
			}

		case NAGToken:
			if expectMove {
				return p.unexpected("movetext", "expected a move after the move number")
			}
			if game.PlyCount() == 0 {
				return p.unexpected("movetext", "NAG before the first move")
			}
			if err := game.AddNAG(game.PlyCount(), p.tok.Value); err != nil {
				return err
			}

		case MoveNumber:
			if expectMove {
				return p.unexpected("movetext", "expected a move after the move number")
			}
			if err := p.checkMoveNumber(game.Position()); err != nil {
				return err
			}
			expectMove = true

		case MoveToken:
			if err := p.playMove(game); err != nil {
				return err
			}
			expectMove = false

		case TerminatingResult:
			if expectMove {
				return p.unexpected("movetext", "expected a move after the move number")
			}
			result, _ := chess.ParseResult(p.tok.Value)
			game.SetResult(result)
			p.checkResultTag(game, result)

			// Whitespace after the result belongs to this game. A lexical
			// error beyond it belongs to the next one.
			p.layout.Append(p.tok.Text)
			if err := p.next(); err != nil {
				p.pending = err
			}
			return nil

		case EOFToken:
			return p.unexpected("movetext", "missing game termination marker")

		case TagStart:
			return p.unexpected("movetext", "tag pair inside movetext, missing game termination marker")

		default:
			return p.unexpected("movetext", "unexpected token")
		}

		if err := p.consume(); err != nil {
			return err
		}
	}
}

// checkMoveNumber validates a move number token against the position it
// precedes: "N." before a white move, "N..." before a black move, and N
// equal to the fullmove number.
func (p *Parser) checkMoveNumber(pos chess.Position) error {
	tok := p.tok
	wantDots := 1
	if pos.ToMove == chess.Black {
		wantDots = 3
	}

	switch {
	case tok.Dots == 0:
		return p.unexpected("move number", "move number without a period")
	case tok.Dots != wantDots:
		return p.unexpected("move number",
			fmt.Sprintf("%s to move needs %d period(s) after the move number", pos.ToMove, wantDots))
	case tok.MoveNum != pos.MoveNumber:
		return p.unexpected("move number",
			fmt.Sprintf("expected move number %d", pos.MoveNumber))
	}
	return nil
}

// playMove resolves the lookahead SAN token and appends it to the game.
func (p *Parser) playMove(game *chess.Game) error {
	tok := p.tok
	ply := game.PlyCount() + 1

	m, err := engine.ParseSAN(game.Position(), tok.Value)
	if err == nil {
		err = engine.Play(game, m)
	}
	if err != nil {
		return &errors.GameError{
			Err:      err,
			GameNum:  p.gameNum,
			PlyNum:   ply,
			MoveText: tok.Value,
			Line:     tok.Line,
		}
	}

	if san := game.SAN(ply); san != tok.Value {
		p.log.Debug().
			Int("game", p.gameNum).
			Int("ply", ply).
			Str("text", tok.Value).
			Str("san", san).
			Msg("non-canonical move text")
	}
	return nil
}

// checkResultTag warns when the Result tag disagrees with the termination
// marker.
func (p *Parser) checkResultTag(game *chess.Game, result chess.Result) {
	if !p.cfg.Parse.CheckResultTag {
		return
	}
	tag, ok := game.Tags().Lookup(chess.TagResult)
	if !ok || tag == string(result) {
		return
	}
	p.log.Warn().
		Int("game", p.gameNum).
		Str("tag", tag).
		Str("result", string(result)).
		Msg("Result tag does not match game termination marker")
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*chess.Game, error) {
	games := make([]*chess.Game, 0, 16)

	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}

	return games, nil
}

// GameCount returns the number of games started so far.
func (p *Parser) GameCount() int {
	return p.gameNum
}
