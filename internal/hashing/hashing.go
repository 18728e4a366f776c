// Package hashing provides position keys and duplicate detection for
// chess games.
package hashing

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
)

// DuplicateDetector tracks seen games for duplicate game detection.
type DuplicateDetector struct {
	// hashTable stores seen signatures keyed by final position hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the move sequences to hash equal
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity bounds the number of stored signatures (0 = unlimited)
	maxCapacity int
	size        int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
	// WeakHash is a fast hash for quick comparison
	WeakHash uint32
	// Moves hashes the SAN move sequence
	Moves uint64
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// Signature computes the signature of a game.
func Signature(game *chess.Game) GameSignature {
	final := game.Position()
	return GameSignature{
		Hash:      Zobrist(final, false),
		MoveCount: game.PlyCount(),
		WeakHash:  WeakHash(final),
		Moves:     NewGameHasher(HashMoveSequence).HashGame(game),
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Once the detector is full, new
// signatures are checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(game *chess.Game) bool {
	if game == nil {
		return false
	}
	sig := Signature(game)

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if !d.IsFull() {
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
		d.size++
	}
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && (a.MoveCount != b.MoveCount || a.Moves != b.Moves) {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
	d.size = 0
}

// HashType specifies what to hash for duplicate detection.
type HashType int

const (
	// HashFinalPosition hashes only the final position
	HashFinalPosition HashType = iota
	// HashAllPositions hashes all positions throughout the game
	HashAllPositions
	// HashMoveSequence hashes the actual move sequence
	HashMoveSequence
)

// GameHasher provides different hashing strategies for games.
type GameHasher struct {
	hashType HashType
}

// NewGameHasher creates a new game hasher with the specified strategy.
func NewGameHasher(ht HashType) *GameHasher {
	return &GameHasher{hashType: ht}
}

// HashGame generates a hash for the game based on the hash type.
func (gh *GameHasher) HashGame(game *chess.Game) uint64 {
	switch gh.hashType {
	case HashAllPositions:
		var hash uint64
		for _, pos := range game.Positions() {
			hash = hash*31 + Zobrist(pos, false)
		}
		return hash
	case HashMoveSequence:
		return hashMoveSequence(game)
	default:
		return Zobrist(game.Position(), false)
	}
}

// hashMoveSequence creates a hash from the SAN texts.
func hashMoveSequence(game *chess.Game) uint64 {
	var hash uint64
	multiplier := uint64(31)

	for _, san := range game.SANs() {
		for i := 0; i < len(san); i++ {
			hash = hash*multiplier + uint64(san[i])
		}
		hash = hash*multiplier + ' '
	}

	return hash
}
