package hashing

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// movePiece returns pos with the piece on from moved to to and the side to
// move flipped. It does no legality checking.
func movePiece(pos chess.Position, from, to chess.Square) chess.Position {
	next := pos
	next.Set(to, next.Get(from))
	next.Set(from, chess.Empty)
	next.EnPassant = chess.NoSquare
	next.ToMove = pos.ToMove.Opposite()
	return next
}

type step struct {
	from, to chess.Square
	san      string
}

// gameWith builds a game from (from, to, san) triples starting at the
// initial position.
func gameWith(steps ...step) *chess.Game {
	g := chess.NewGame(chess.StartingPosition())
	for _, s := range steps {
		next := movePiece(g.Position(), s.from, s.to)
		g.Append(chess.NewMove(s.from, s.to, chess.Empty), s.san, next)
	}
	return g
}

func TestZobrist_Consistency(t *testing.T) {
	t.Parallel()

	a := chess.StartingPosition()
	b := chess.StartingPosition()
	if Zobrist(a, false) != Zobrist(b, false) {
		t.Error("identical positions produced different hashes")
	}
	if WeakHash(a) != WeakHash(b) {
		t.Error("identical positions produced different weak hashes")
	}
}

func TestZobrist_Differences(t *testing.T) {
	t.Parallel()

	start := chess.StartingPosition()
	base := Zobrist(start, false)

	moved := movePiece(start, chess.E2, chess.E4)
	moved.ToMove = chess.White
	if Zobrist(moved, false) == base {
		t.Error("different placement produced the same hash")
	}

	side := start
	side.ToMove = chess.Black
	if Zobrist(side, false) == base {
		t.Error("side to move is not part of the hash")
	}

	rights := start
	rights.Castling = chess.WhiteKingside
	if Zobrist(rights, false) == base {
		t.Error("castling rights are not part of the hash")
	}

	counters := start
	counters.HalfmoveClock = 9
	counters.MoveNumber = 30
	if Zobrist(counters, false) != base {
		t.Error("move counters changed the hash")
	}
}

func TestZobrist_EnPassant(t *testing.T) {
	t.Parallel()

	pos := movePiece(chess.StartingPosition(), chess.E2, chess.E4)
	pos.EnPassant = chess.E3
	plain := pos
	plain.EnPassant = chess.NoSquare

	if Zobrist(pos, false) != Zobrist(plain, false) {
		t.Error("en passant square counted although excluded")
	}
	if Zobrist(pos, true) == Zobrist(plain, true) {
		t.Error("en passant square ignored although included")
	}
}

func TestDuplicateDetector(t *testing.T) {
	t.Parallel()

	d := NewDuplicateDetector(false, 0)
	g1 := gameWith(step{chess.E2, chess.E4, "e4"})
	g2 := gameWith(step{chess.E2, chess.E4, "e4"})
	g3 := gameWith(step{chess.D2, chess.D4, "d4"})

	if d.CheckAndAdd(g1) {
		t.Error("first game reported as duplicate")
	}
	if !d.CheckAndAdd(g2) {
		t.Error("identical game not reported as duplicate")
	}
	if d.CheckAndAdd(g3) {
		t.Error("different game reported as duplicate")
	}
	if d.CheckAndAdd(nil) {
		t.Error("nil game reported as duplicate")
	}
	if d.DuplicateCount() != 1 || d.UniqueCount() != 2 {
		t.Errorf("counts = %d duplicates %d unique, want 1 and 2", d.DuplicateCount(), d.UniqueCount())
	}

	d.Reset()
	if d.DuplicateCount() != 0 || d.UniqueCount() != 0 {
		t.Error("Reset() did not clear counts")
	}
	if d.CheckAndAdd(g1) {
		t.Error("game reported as duplicate after Reset()")
	}
}

func TestDuplicateDetector_ExactMatch(t *testing.T) {
	t.Parallel()

	// Same final position reached by transposition.
	a := gameWith(
		step{chess.G1, chess.F3, "Nf3"}, step{chess.G8, chess.F6, "Nf6"},
		step{chess.B1, chess.C3, "Nc3"}, step{chess.B8, chess.C6, "Nc6"},
	)
	b := gameWith(
		step{chess.B1, chess.C3, "Nc3"}, step{chess.B8, chess.C6, "Nc6"},
		step{chess.G1, chess.F3, "Nf3"}, step{chess.G8, chess.F6, "Nf6"},
	)

	loose := NewDuplicateDetector(false, 0)
	loose.CheckAndAdd(a)
	if !loose.CheckAndAdd(b) {
		t.Error("transposition should match on final position")
	}

	exact := NewDuplicateDetector(true, 0)
	exact.CheckAndAdd(a)
	if exact.CheckAndAdd(b) {
		t.Error("transposition should not match when move order is compared")
	}
}

func TestDuplicateDetector_Capacity(t *testing.T) {
	t.Parallel()

	d := NewDuplicateDetector(false, 1)
	d.CheckAndAdd(gameWith(step{chess.E2, chess.E4, "e4"}))
	if !d.IsFull() {
		t.Fatal("detector with capacity 1 should be full")
	}
	d.CheckAndAdd(gameWith(step{chess.D2, chess.D4, "d4"}))
	if d.UniqueCount() != 1 {
		t.Errorf("UniqueCount() = %d, want 1", d.UniqueCount())
	}
	if d.CheckAndAdd(gameWith(step{chess.D2, chess.D4, "d4"})) {
		t.Error("game not stored because of capacity should not be a duplicate")
	}
}

func TestGameHasher(t *testing.T) {
	t.Parallel()

	g := gameWith(step{chess.E2, chess.E4, "e4"}, step{chess.E7, chess.E5, "e5"})
	same := gameWith(step{chess.E2, chess.E4, "e4"}, step{chess.E7, chess.E5, "e5"})

	for _, ht := range []HashType{HashFinalPosition, HashAllPositions, HashMoveSequence} {
		h := NewGameHasher(ht)
		if h.HashGame(g) != h.HashGame(same) {
			t.Errorf("hash type %d differs for identical games", ht)
		}
	}

	if got, want := NewGameHasher(HashFinalPosition).HashGame(g), Zobrist(g.Position(), false); got != want {
		t.Errorf("final position hash = %x, want %x", got, want)
	}
}

func TestThreadSafeDuplicateDetector_Concurrent(t *testing.T) {
	t.Parallel()

	d := NewThreadSafeDuplicateDetector(false, 0)
	const workers = 8
	const perWorker = 25

	var duplicates atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if d.CheckAndAdd(gameWith(step{chess.E2, chess.E4, "e4"})) {
					duplicates.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if d.UniqueCount() != 1 {
		t.Errorf("UniqueCount() = %d, want 1", d.UniqueCount())
	}
	if got := duplicates.Load(); got != workers*perWorker-1 {
		t.Errorf("duplicates = %d, want %d", got, workers*perWorker-1)
	}
	if d.DuplicateCount() != workers*perWorker-1 {
		t.Errorf("DuplicateCount() = %d, want %d", d.DuplicateCount(), workers*perWorker-1)
	}
}

func TestThreadSafeDuplicateDetector_Filter(t *testing.T) {
	t.Parallel()

	e4 := step{chess.E2, chess.E4, "e4"}
	d4 := step{chess.D2, chess.D4, "d4"}
	games := []*chess.Game{gameWith(e4), gameWith(d4), gameWith(e4), gameWith(e4)}
	first, second := games[0], games[1]

	d := NewThreadSafeDuplicateDetector(false, 0)
	kept, dropped := d.Filter(games)
	if len(kept) != 2 || kept[0] != first || kept[1] != second {
		t.Errorf("kept %d games, want the first e4 and d4 games", len(kept))
	}
	if diff := cmp.Diff([]int{2, 3}, dropped); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}

	kept, dropped = d.Filter([]*chess.Game{gameWith(d4)})
	if len(kept) != 0 || len(dropped) != 1 {
		t.Errorf("second Filter kept %d, dropped %v", len(kept), dropped)
	}
	if d.DuplicateCount() != 3 || d.UniqueCount() != 2 {
		t.Errorf("counts = %d duplicates %d unique, want 3 and 2", d.DuplicateCount(), d.UniqueCount())
	}
}

func BenchmarkZobrist(b *testing.B) {
	pos := chess.StartingPosition()
	for i := 0; i < b.N; i++ {
		Zobrist(pos, true)
	}
}

func BenchmarkCheckAndAdd(b *testing.B) {
	d := NewDuplicateDetector(true, 0)
	g := gameWith(step{chess.E2, chess.E4, "e4"}, step{chess.E7, chess.E5, "e5"})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.CheckAndAdd(g)
	}
}
