// Package parser provides PGN lexing and parsing functionality.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOFToken TokenType = iota
	Whitespace
	TagStart
	TagEnd
	SymbolToken
	StringToken
	CommentToken
	NAGToken
	MoveNumber
	MoveToken
	TerminatingResult
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	Whitespace:        "WHITESPACE",
	TagStart:          "TAG_START",
	TagEnd:            "TAG_END",
	SymbolToken:       "SYMBOL",
	StringToken:       "STRING",
	CommentToken:      "COMMENT",
	NAGToken:          "NAG",
	MoveNumber:        "MOVE_NUMBER",
	MoveToken:         "MOVE",
	TerminatingResult: "TERMINATING_RESULT",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token is one lexical unit of PGN text.
type Token struct {
	Type TokenType

	// Text is the exact source spelling, so that concatenating the Text of
	// every token reproduces the input.
	Text string

	// Value is the decoded content: tag name, unescaped string, comment
	// body, "$n" NAG, result or move text.
	Value string

	// MoveNum and Dots describe a move number token such as "12...".
	MoveNum uint
	Dots    int

	// Line and column of the first byte, both 1-based.
	Line   int
	Column int
}

// annotationToNAG converts a move assessment suffix to its NAG.
func annotationToNAG(text string) (string, bool) {
	switch text {
	case "!":
		return "$1", true
	case "?":
		return "$2", true
	case "!!":
		return "$3", true
	case "??":
		return "$4", true
	case "!?":
		return "$5", true
	case "?!":
		return "$6", true
	}
	return "", false
}
