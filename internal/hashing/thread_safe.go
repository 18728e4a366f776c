package hashing

import (
	"sync"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// ThreadSafeDuplicateDetector is a DuplicateDetector shared between
// decoders.
type ThreadSafeDuplicateDetector struct {
	mu       sync.Mutex
	detector *DuplicateDetector
}

// NewThreadSafeDuplicateDetector creates a shared detector. maxCapacity of
// 0 means unlimited capacity.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{detector: NewDuplicateDetector(exactMatch, maxCapacity)}
}

// CheckAndAdd reports whether game was seen before and records it.
func (d *ThreadSafeDuplicateDetector) CheckAndAdd(game *chess.Game) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAdd(game)
}

// Filter drops the games already seen, keeping the first copy of each in
// order. It returns the kept games, reusing the backing array of games,
// and the indexes of the dropped ones.
func (d *ThreadSafeDuplicateDetector) Filter(games []*chess.Game) (kept []*chess.Game, dropped []int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept = games[:0]
	for i, g := range games {
		if d.detector.CheckAndAdd(g) {
			dropped = append(dropped, i)
			continue
		}
		kept = append(kept, g)
	}
	return kept, dropped
}

// DuplicateCount returns the number of duplicates detected.
func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of games stored.
func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.UniqueCount()
}
