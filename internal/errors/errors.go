// Package errors provides sentinel errors and error types for the chess core.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPGN indicates malformed PGN text.
	ErrInvalidPGN = errors.New("invalid PGN")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousMove indicates SAN text matching more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrUnknownMove indicates SAN text matching no legal move.
	ErrUnknownMove = errors.New("unknown move")

	// ErrDuplicateTag indicates a tag key that is already present.
	ErrDuplicateTag = errors.New("duplicate tag")

	// ErrUnknownBackend indicates a board backend name that is not registered.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// FormatError reports malformed FEN or PGN input. It names the offending
// field and token and where in the source text it was found.
type FormatError struct {
	Err    error  // ErrInvalidFEN or ErrInvalidPGN
	Field  string // e.g. "castling rights", "tag pair", "movetext"
	Token  string // The offending token, if any
	Line   int    // Line number, 1-based (0 if not applicable)
	Column int    // Column or byte offset, 1-based (0 if not applicable)
	Reason string // Human-readable description
}

// Error returns a formatted error message with location and context.
func (e *FormatError) Error() string {
	var parts []string

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d, column %d", e.Line, e.Column))
	} else if e.Column > 0 {
		parts = append(parts, fmt.Sprintf("offset %d", e.Column))
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	detail := e.Reason
	if e.Token != "" {
		if detail != "" {
			detail = fmt.Sprintf("%s %q", detail, e.Token)
		} else {
			detail = fmt.Sprintf("unexpected %q", e.Token)
		}
	}
	if detail != "" {
		parts = append(parts, detail)
	}

	msg := "format error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if len(parts) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(parts, ": "))
}

// Unwrap returns the underlying sentinel error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IllegalReason categorises why a move was rejected.
type IllegalReason int

const (
	ReasonUnreachable IllegalReason = iota
	ReasonNoPiece
	ReasonWrongSide
	ReasonBlockedPath
	ReasonKingInCheck
	ReasonMalformedPromotion
	ReasonCastlingNotAllowed
)

var illegalReasonNames = [...]string{
	ReasonUnreachable:        "piece cannot move that way",
	ReasonNoPiece:            "no piece on origin square",
	ReasonWrongSide:          "wrong side to move",
	ReasonBlockedPath:        "path is blocked",
	ReasonKingInCheck:        "king would be left in check",
	ReasonMalformedPromotion: "malformed promotion",
	ReasonCastlingNotAllowed: "castling not allowed",
}

// String returns a description of the reason.
func (r IllegalReason) String() string {
	if int(r) < len(illegalReasonNames) {
		return illegalReasonNames[r]
	}
	return "unknown reason"
}

// IllegalMoveError reports an attempted move that is not in the legal move
// set of the position it was applied to.
type IllegalMoveError struct {
	From      string // Origin square, e.g. "e2"
	To        string // Destination square
	Promotion string // Promotion letter, empty if none
	Reason    IllegalReason
}

// Error returns a formatted error message.
func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("%v %s%s%s: %s", ErrIllegalMove, e.From, e.To, e.Promotion, e.Reason)
}

// Unwrap returns ErrIllegalMove.
func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// AmbiguousMoveError reports SAN text that matches several legal moves.
type AmbiguousMoveError struct {
	Text       string
	Candidates []string // UCI text of each matching move
}

// Error returns a formatted error message.
func (e *AmbiguousMoveError) Error() string {
	return fmt.Sprintf("%v %q: matches %s", ErrAmbiguousMove, e.Text, strings.Join(e.Candidates, ", "))
}

// Unwrap returns ErrAmbiguousMove.
func (e *AmbiguousMoveError) Unwrap() error {
	return ErrAmbiguousMove
}

// UnknownMoveError reports SAN text that matches no legal move.
type UnknownMoveError struct {
	Text   string
	Reason string // Optional detail, e.g. "malformed SAN"
}

// Error returns a formatted error message.
func (e *UnknownMoveError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v %q: %s", ErrUnknownMove, e.Text, e.Reason)
	}
	return fmt.Sprintf("%v %q", ErrUnknownMove, e.Text)
}

// Unwrap returns ErrUnknownMove.
func (e *UnknownMoveError) Unwrap() error {
	return ErrUnknownMove
}

// GameError wraps errors with game context, including game number,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the document
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	Line     int    // Line number in source text (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	parts = append(parts, fmt.Sprintf("game %d", e.GameNum))

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
