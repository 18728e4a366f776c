package output

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
)

func TestDiagram_Plain(t *testing.T) {
	t.Parallel()
	want := `8 r n b q k b n r
7 p p p p p p p p
6 . . . . . . . .
5 . . . . . . . .
4 . . . . . . . .
3 . . . . . . . .
2 P P P P P P P P
1 R N B Q K B N R
  a b c d e f g h
White to move
`
	if diff := cmp.Diff(want, Diagram(chess.StartingPosition(), false)); diff != "" {
		t.Errorf("Diagram mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagram_AfterMove(t *testing.T) {
	t.Parallel()
	pos, err := engine.ApplyText(chess.StartingPosition(), "e4")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(Diagram(pos, false), "\n")
	if lines[4] != "4 . . . . P . . ." {
		t.Errorf("rank 4 = %q", lines[4])
	}
	if lines[9] != "Black to move" {
		t.Errorf("last line = %q", lines[9])
	}
}

func TestDiagram_Coloured(t *testing.T) {
	t.Parallel()
	out := Diagram(chess.StartingPosition(), true)
	if !strings.Contains(out, "\x1b[") {
		t.Error("coloured diagram has no escape sequences")
	}
	if !strings.Contains(out, " K ") {
		t.Error("coloured diagram has no king")
	}
	if got := strings.Count(out, "\n"); got != 10 {
		t.Errorf("got %d lines, want 10", got)
	}
}
