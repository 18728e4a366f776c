package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	chesserrors "github.com/lgbarn/chesscore-go/internal/errors"
)

func TestTagMap(t *testing.T) {
	tags := NewTagMap()

	if err := tags.Add("Event", "Test"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := tags.Add("White", "Alice"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	t.Run("duplicate rejected", func(t *testing.T) {
		err := tags.Add("Event", "Other")
		if !errors.Is(err, chesserrors.ErrDuplicateTag) {
			t.Errorf("Add duplicate = %v; want ErrDuplicateTag", err)
		}
		if tags.Get("Event") != "Test" {
			t.Errorf("duplicate Add changed the value to %q", tags.Get("Event"))
		}
	})

	t.Run("keys are case-sensitive", func(t *testing.T) {
		if tags.Has("event") {
			t.Error("Has(\"event\") = true")
		}
	})

	t.Run("set keeps position", func(t *testing.T) {
		tags.Set("Event", "Renamed")
		tags.Set("Black", "Bob")
		want := []string{"Event", "White", "Black"}
		if diff := cmp.Diff(want, tags.Keys()); diff != "" {
			t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("delete", func(t *testing.T) {
		tags.Delete("White")
		tags.Delete("Missing")
		want := []string{"Event", "Black"}
		if diff := cmp.Diff(want, tags.Keys()); diff != "" {
			t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
		}
		if tags.Len() != 2 {
			t.Errorf("Len() = %d; want 2", tags.Len())
		}
	})
}

func TestTagMap_ZeroValue(t *testing.T) {
	var tags TagMap
	if tags.Len() != 0 || tags.Get("Event") != "" {
		t.Error("zero TagMap should be empty")
	}
	tags.Set("Event", "x")
	if tags.Get("Event") != "x" {
		t.Error("Set on zero TagMap failed")
	}
}

func TestGame_Append(t *testing.T) {
	start := StartingPosition()
	g := NewGame(start)

	next := start
	next.Set(E2, Empty)
	next.Set(E4, W(Pawn))
	next.ToMove = Black
	next.EnPassant = E3

	m := Move{From: E2, To: E4, Flags: FlagDoublePush}
	g.Append(m, "e4", next)

	if g.PlyCount() != 1 {
		t.Fatalf("PlyCount() = %d; want 1", g.PlyCount())
	}
	if g.Position() != next {
		t.Error("Position() is not the appended position")
	}
	if g.Start() != start {
		t.Error("Start() changed")
	}
	if diff := cmp.Diff([]string{"e4"}, g.SANs()); diff != "" {
		t.Errorf("SANs() mismatch (-want +got):\n%s", diff)
	}
	if h := g.History(); len(h) != 1 || h[0] != start {
		t.Errorf("History() = %d positions", len(h))
	}
	if last, ok := g.LastMove(); !ok || last != m {
		t.Errorf("LastMove() = %v, %v", last, ok)
	}
}

func TestGame_Annotations(t *testing.T) {
	g := NewGame(StartingPosition())
	g.Append(NewMove(E2, E4, Empty), "e4", StartingPosition())

	if err := g.AddComment(0, "opening"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddComment(1, "best by test"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNAG(1, "$1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		err  error
	}{
		{"brace in comment", g.AddComment(1, "a } b")},
		{"ply out of range", g.AddComment(2, "x")},
		{"malformed NAG", g.AddNAG(1, "!")},
		{"NAG before first move", g.AddNAG(0, "$2")},
	}
	for _, tt := range tests {
		if tt.err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	want := Annotation{NAGs: []string{"$1"}, Comments: []string{"best by test"}}
	if diff := cmp.Diff(want, g.Annotation(1)); diff != "" {
		t.Errorf("Annotation(1) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"opening"}, g.PrefixComments()); diff != "" {
		t.Errorf("PrefixComments() mismatch (-want +got):\n%s", diff)
	}
}

func TestGame_Result(t *testing.T) {
	g := NewGame(StartingPosition())
	if g.Result() != NoResult {
		t.Errorf("Result() = %q; want *", g.Result())
	}
	g.Tags().Set(TagResult, "1-0")
	if g.Result() != WhiteWins {
		t.Errorf("Result() = %q; want tag fallback 1-0", g.Result())
	}
	g.SetResult(Draw)
	if g.Result() != Draw {
		t.Errorf("Result() = %q; want 1/2-1/2", g.Result())
	}
}

func TestGame_LayoutInvalidation(t *testing.T) {
	g := NewGame(StartingPosition())
	layout := &Layout{Lead: "\n"}
	layout.Append("1-0")
	layout.AddTrail("\n")
	g.SetLayout(layout)

	if l, ok := g.SourceLayout(); !ok || l.String() != "\n1-0\n" {
		t.Fatalf("SourceLayout() = %v, %v", l, ok)
	}

	g.Tags().Set(TagEvent, "Changed")
	if _, ok := g.SourceLayout(); ok {
		t.Error("layout still valid after a tag change")
	}

	g.SetLayout(layout)
	g.SetResult(BlackWins)
	if _, ok := g.SourceLayout(); ok {
		t.Error("layout still valid after a result change")
	}
}
