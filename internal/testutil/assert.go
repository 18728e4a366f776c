// Package testutil provides shared assertions and fixtures for the chesscore
// tests.
package testutil

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%smismatch (-want +got):\n%s", prefix(msgAndArgs...), diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		t.Errorf("%sunexpected error: %v", prefix(msgAndArgs...), err)
	}
}

// AssertErrorIs fails unless target is in err's chain.
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%serror = %v, want %v", prefix(msgAndArgs...), err, target)
	}
}

// AssertFEN fails if pos does not serialize to want.
func AssertFEN(t testing.TB, pos chess.Position, want string, msgAndArgs ...interface{}) {
	t.Helper()
	if got := engine.SerializeFEN(pos); got != want {
		t.Errorf("%sFEN = %q, want %q", prefix(msgAndArgs...), got, want)
	}
}

// AssertMoves compares a move list with UCI text, ignoring order.
func AssertMoves(t testing.TB, got []chess.Move, want []string, msgAndArgs ...interface{}) {
	t.Helper()
	AssertEqual(t, UCIs(got), sorted(want), msgAndArgs...)
}

// UCIs returns the sorted UCI text of moves.
func UCIs(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	return sorted(out)
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

// prefix formats optional message arguments as "msg: ".
func prefix(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...) + ": "
	}
	return fmt.Sprint(msgAndArgs[0]) + ": "
}
