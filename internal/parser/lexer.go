package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Character classes.
type charClass uint8

const (
	classError charClass = iota
	classSpace
	classTagStart
	classTagEnd
	classQuote
	classCommentStart
	classCommentEnd
	classNAG
	classAnnotate
	classCheck
	classDot
	classRAV
	classRestOfLine
	classStar
	classDash
	classDigit
	classAlpha
)

// Lexer tokenizes PGN input one line at a time. Every byte of the input
// ends up in the Text of exactly one token, whitespace included.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool

	// Between '[' and ']' letters form tag names rather than moves.
	inTag bool

	// Position of the first byte in a larger document.
	originLine int
	originCol  int
}

// Character classification table
var chTab [256]charClass

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = classSpace
	}

	chTab['['] = classTagStart
	chTab[']'] = classTagEnd
	chTab['"'] = classQuote
	chTab['{'] = classCommentStart
	chTab['}'] = classCommentEnd
	chTab['$'] = classNAG
	chTab['!'] = classAnnotate
	chTab['?'] = classAnnotate
	chTab['+'] = classCheck
	chTab['#'] = classCheck
	chTab['.'] = classDot
	chTab['('] = classRAV
	chTab[')'] = classRAV
	chTab[';'] = classRestOfLine
	chTab['%'] = classRestOfLine
	chTab['*'] = classStar
	chTab['-'] = classDash

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = classDigit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = classAlpha
		chTab[c+32] = classAlpha
	}
	chTab['_'] = classAlpha

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}
	for _, c := range []byte("KQRBNxX:-=Oo0+#") {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// SetOrigin numbers lines and columns as if the input started at line and
// column of an enclosing document. It must be called before the first
// token is read.
func (l *Lexer) SetOrigin(line, column int) {
	l.lineNum = line - 1
	l.originLine = line
	l.originCol = column
}

// readLine reads the next line from input, keeping its line terminator.
func (l *Lexer) readLine() (bool, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if line == "" {
		l.eof = true
		return false, nil
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true, nil
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// errorAt reports a lexical error at the start of tok.
func (l *Lexer) errorAt(tok Token, text, reason string) error {
	field := "movetext"
	if l.inTag {
		field = "tag pair"
	}
	return &errors.FormatError{
		Err:    errors.ErrInvalidPGN,
		Field:  field,
		Token:  text,
		Line:   tok.Line,
		Column: tok.Column,
		Reason: reason,
	}
}

// NextToken returns the next token from the input. At the end of input it
// returns an EOFToken and a nil error.
func (l *Lexer) NextToken() (Token, error) {
	for l.pos >= len(l.line) {
		if l.eof {
			return Token{Type: EOFToken, Line: l.lineNum}, nil
		}
		ok, err := l.readLine()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{Type: EOFToken, Line: l.lineNum}, nil
		}
	}

	start := l.pos
	ch := l.line[l.pos]
	l.pos++
	tok := Token{Line: l.lineNum, Column: start + 1}
	if l.lineNum == l.originLine && l.originCol > 1 {
		tok.Column += l.originCol - 1
	}

	switch chTab[ch] {
	case classSpace:
		for chTab[l.currentChar()] == classSpace && l.pos < len(l.line) {
			l.pos++
		}
		tok.Type = Whitespace

	case classTagStart:
		if l.inTag {
			return tok, l.errorAt(tok, "[", "nested tag start")
		}
		l.inTag = true
		tok.Type = TagStart

	case classTagEnd:
		if !l.inTag {
			return tok, l.errorAt(tok, "]", "tag end outside a tag pair")
		}
		l.inTag = false
		tok.Type = TagEnd

	case classQuote:
		return l.gatherString(tok, start)

	case classCommentStart:
		return l.gatherComment(tok, start)

	case classCommentEnd:
		return tok, l.errorAt(tok, "}", "unmatched comment end")

	case classNAG:
		for l.pos < len(l.line) && chTab[l.currentChar()] == classDigit {
			l.pos++
		}
		if l.pos == start+1 {
			return tok, l.errorAt(tok, "$", "NAG without a number")
		}
		tok.Type = NAGToken
		tok.Value = l.line[start:l.pos]

	case classAnnotate:
		for l.pos < len(l.line) && chTab[l.currentChar()] == classAnnotate {
			l.pos++
		}
		nag, ok := annotationToNAG(l.line[start:l.pos])
		if !ok {
			return tok, l.errorAt(tok, l.line[start:l.pos], "unknown move assessment")
		}
		tok.Type = NAGToken
		tok.Value = nag

	case classRAV:
		return tok, l.errorAt(tok, string(ch), "recursive variations are not supported")

	case classRestOfLine:
		return tok, l.errorAt(tok, string(ch), "line comments and escapes are not supported")

	case classStar:
		if err := l.checkResultEnd(tok, "*"); err != nil {
			return tok, err
		}
		tok.Type = TerminatingResult

	case classDash:
		if l.currentChar() != '-' {
			return tok, l.errorAt(tok, "-", "single '-' not allowed")
		}
		l.pos++
		tok.Type = MoveToken

	case classDigit:
		if l.inTag {
			return tok, l.errorAt(tok, string(ch), "tag name must start with a letter")
		}
		return l.gatherNumeric(tok, start)

	case classAlpha:
		if l.inTag {
			for l.pos < len(l.line) && (chTab[l.currentChar()] == classAlpha || chTab[l.currentChar()] == classDigit) {
				l.pos++
			}
			tok.Type = SymbolToken
			break
		}
		if !moveChars[ch] {
			return tok, l.errorAt(tok, string(ch), "unknown character")
		}
		l.gatherMove()
		tok.Type = MoveToken

	default:
		return tok, l.errorAt(tok, string(ch), "unknown character")
	}

	tok.Text = l.line[start:l.pos]
	if tok.Value == "" {
		tok.Value = tok.Text
	}
	return tok, nil
}

// gatherMove consumes the rest of a move token.
func (l *Lexer) gatherMove() {
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.pos++
	}
}

// gatherString gathers a quoted string. Backslash escapes the next
// character.
func (l *Lexer) gatherString(tok Token, start int) (Token, error) {
	var sb strings.Builder

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.pos++

		switch ch {
		case '\\':
			if l.pos >= len(l.line) || l.currentChar() == '\n' {
				return tok, l.errorAt(tok, l.line[start:l.pos], "unterminated string")
			}
			sb.WriteByte(l.currentChar())
			l.pos++
		case '"':
			tok.Type = StringToken
			tok.Text = l.line[start:l.pos]
			tok.Value = sb.String()
			return tok, nil
		case '\n':
			return tok, l.errorAt(tok, strings.TrimRight(l.line[start:l.pos], "\r\n"), "unterminated string")
		default:
			sb.WriteByte(ch)
		}
	}

	return tok, l.errorAt(tok, l.line[start:], "unterminated string")
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment(tok Token, start int) (Token, error) {
	var raw strings.Builder
	raw.WriteString(l.line[start:l.pos])

	for {
		if idx := strings.IndexByte(l.line[l.pos:], '}'); idx >= 0 {
			raw.WriteString(l.line[l.pos : l.pos+idx+1])
			l.pos += idx + 1
			break
		}
		raw.WriteString(l.line[l.pos:])
		l.pos = len(l.line)

		ok, err := l.readLine()
		if err != nil {
			return tok, err
		}
		if !ok {
			return tok, l.errorAt(tok, "{", "unterminated comment")
		}
	}

	text := raw.String()
	tok.Type = CommentToken
	tok.Text = text
	tok.Value = strings.TrimSpace(text[1 : len(text)-1])
	return tok, nil
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(tok Token, start int) (Token, error) {
	rest := l.line[start:]

	for _, result := range []string{"1-0", "0-1", "1/2-1/2"} {
		if strings.HasPrefix(rest, result) {
			l.pos = start + len(result)
			if err := l.checkResultEnd(tok, result); err != nil {
				return tok, err
			}
			tok.Type = TerminatingResult
			tok.Text = result
			tok.Value = result
			return tok, nil
		}
	}

	if strings.HasPrefix(rest, "0-0") {
		l.pos = start
		l.gatherMove()
		tok.Type = MoveToken
		tok.Text = l.line[start:l.pos]
		tok.Value = tok.Text
		return tok, nil
	}

	return l.gatherMoveNumber(tok, start)
}

// checkResultEnd rejects a game result that runs into the next token.
func (l *Lexer) checkResultEnd(tok Token, result string) error {
	if ch := l.currentChar(); ch != 0 && chTab[ch] != classSpace {
		return l.errorAt(tok, result+string(ch), "result must be followed by whitespace")
	}
	return nil
}

// gatherMoveNumber parses a move number token such as "12." or "12...".
func (l *Lexer) gatherMoveNumber(tok Token, start int) (Token, error) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == classDigit {
		l.pos++
	}
	digits := l.line[start:l.pos]
	for l.pos < len(l.line) && l.currentChar() == '.' {
		l.pos++
		tok.Dots++
	}

	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return tok, l.errorAt(tok, digits, "move number out of range")
	}

	tok.Type = MoveNumber
	tok.Text = l.line[start:l.pos]
	tok.Value = digits
	tok.MoveNum = uint(n)
	return tok, nil
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}
