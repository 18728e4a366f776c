package chess

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Game represents a complete chess game: the positions reached from the
// start position, the moves between them, tags, annotations and result.
//
// A Game is not safe for concurrent mutation. Moves are appended by the
// engine package, which validates them first.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	tags *TagMap

	// Any comment prefixing the game, between the tags and the moves.
	prefixComments []string

	// positions[0] is the start position; positions[i] follows moves[i-1].
	positions []Position
	moves     []Move
	sans      []string

	// annotations[i] follows moves[i].
	annotations []Annotation

	result Result

	// Incremented on every change to the movetext.
	rev uint64

	// Source layout captured by the parser.
	layout *Layout
}

// NewGame creates a new game starting from start.
func NewGame(start Position) *Game {
	return &Game{
		tags:      NewTagMap(),
		positions: []Position{start},
	}
}

// Tags returns the game's tag map. Changes made through it are reflected
// in the game.
func (g *Game) Tags() *TagMap {
	return g.tags
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.tags.Get(name)
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag(TagWhite)
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag(TagBlack)
}

// Event returns the event name.
func (g *Game) Event() string {
	return g.GetTag(TagEvent)
}

// Start returns the position before the first move.
func (g *Game) Start() Position {
	return g.positions[0]
}

// Position returns the current position.
func (g *Game) Position() Position {
	return g.positions[len(g.positions)-1]
}

// PositionAt returns the position after ply moves (0 = start).
func (g *Game) PositionAt(ply int) Position {
	return g.positions[ply]
}

// Positions returns all positions from the start to the current one.
func (g *Game) Positions() []Position {
	return slices.Clone(g.positions)
}

// History returns the positions preceding the current one, oldest first.
func (g *Game) History() []Position {
	return slices.Clone(g.positions[:len(g.positions)-1])
}

// Moves returns the moves played, in order.
func (g *Game) Moves() []Move {
	return slices.Clone(g.moves)
}

// SANs returns the SAN text of each move, in order.
func (g *Game) SANs() []string {
	return slices.Clone(g.sans)
}

// SAN returns the SAN text of the move at ply (1 = first move), or "" if
// there is no such move.
func (g *Game) SAN(ply int) string {
	if ply < 1 || ply > len(g.sans) {
		return ""
	}
	return g.sans[ply-1]
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	return len(g.moves)
}

// LastMove returns the last move in the game; ok is false if no moves.
func (g *Game) LastMove() (m Move, ok bool) {
	if len(g.moves) == 0 {
		return Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

// Append records a move that has already been validated, its SAN text and
// the position it produces.
func (g *Game) Append(m Move, san string, next Position) {
	g.moves = append(g.moves, m)
	g.sans = append(g.sans, san)
	g.positions = append(g.positions, next)
	g.annotations = append(g.annotations, Annotation{})
	g.rev++
}

// Annotation returns the NAGs and comments following the move at ply
// (1 = first move).
func (g *Game) Annotation(ply int) Annotation {
	if ply < 1 || ply > len(g.annotations) {
		return Annotation{}
	}
	return g.annotations[ply-1].clone()
}

// PrefixComments returns the comments that precede the first move.
func (g *Game) PrefixComments() []string {
	return slices.Clone(g.prefixComments)
}

// AddComment attaches a comment after the move at ply, or before the
// first move when ply is 0.
func (g *Game) AddComment(ply int, text string) error {
	if strings.ContainsRune(text, '}') {
		return fmt.Errorf("comment may not contain '}': %q", text)
	}
	if ply == 0 {
		g.prefixComments = append(g.prefixComments, text)
		g.rev++
		return nil
	}
	if ply < 0 || ply > len(g.annotations) {
		return fmt.Errorf("no move at ply %d", ply)
	}
	g.annotations[ply-1].Comments = append(g.annotations[ply-1].Comments, text)
	g.rev++
	return nil
}

// AddNAG attaches a numeric annotation glyph such as "$1" after the move
// at ply.
func (g *Game) AddNAG(ply int, nag string) error {
	if !IsNAG(nag) {
		return fmt.Errorf("malformed NAG %q", nag)
	}
	if ply < 1 || ply > len(g.annotations) {
		return fmt.Errorf("no move at ply %d", ply)
	}
	g.annotations[ply-1].NAGs = append(g.annotations[ply-1].NAGs, nag)
	g.rev++
	return nil
}

// IsNAG reports whether text is a "$" followed by one or more digits.
func IsNAG(text string) bool {
	if len(text) < 2 || text[0] != '$' {
		return false
	}
	for i := 1; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// Result returns the game termination marker. If none was set it falls
// back to a valid Result tag, and then to "*".
func (g *Game) Result() Result {
	if g.result != "" {
		return g.result
	}
	if r, ok := ParseResult(g.GetTag(TagResult)); ok {
		return r
	}
	return NoResult
}

// SetResult sets the game termination marker.
func (g *Game) SetResult(r Result) {
	g.result = r
	g.rev++
}

// SetLayout records the source text layout of a parsed game. It stays in
// effect until the game or its tags are modified.
func (g *Game) SetLayout(l *Layout) {
	if l != nil {
		l.revision = g.revision()
	}
	g.layout = l
}

// SourceLayout returns the recorded layout if the game has not been
// modified since it was parsed.
func (g *Game) SourceLayout() (*Layout, bool) {
	if g.layout == nil || g.layout.revision != g.revision() {
		return nil, false
	}
	return g.layout, true
}

func (g *Game) revision() uint64 {
	return g.rev + g.tags.Revision()
}

// Lexeme is one token of PGN source text together with the whitespace
// that follows it.
type Lexeme struct {
	Text  string
	Trail string
}

// Layout is the exact spelling of a game in its source document: leading
// whitespace, then every token in order with its trailing whitespace.
type Layout struct {
	Lead    string
	Lexemes []Lexeme

	revision uint64
}

// Append adds a token to the layout.
func (l *Layout) Append(text string) {
	l.Lexemes = append(l.Lexemes, Lexeme{Text: text})
}

// AddTrail appends whitespace after the last token, or to Lead if there
// is none yet.
func (l *Layout) AddTrail(ws string) {
	if len(l.Lexemes) == 0 {
		l.Lead += ws
		return
	}
	l.Lexemes[len(l.Lexemes)-1].Trail += ws
}

// Trail returns the whitespace after the last token.
func (l *Layout) Trail() string {
	if len(l.Lexemes) == 0 {
		return l.Lead
	}
	return l.Lexemes[len(l.Lexemes)-1].Trail
}

// String reassembles the source text.
func (l *Layout) String() string {
	var sb strings.Builder
	sb.WriteString(l.Lead)
	for _, lx := range l.Lexemes {
		sb.WriteString(lx.Text)
		sb.WriteString(lx.Trail)
	}
	return sb.String()
}
