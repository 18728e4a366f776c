package chess

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Well-known PGN tag names.
const (
	TagEvent       = "Event"
	TagSite        = "Site"
	TagDate        = "Date"
	TagRound       = "Round"
	TagWhite       = "White"
	TagBlack       = "Black"
	TagResult      = "Result"
	TagFEN         = "FEN"
	TagSetUp       = "SetUp"
	TagECO         = "ECO"
	TagTermination = "Termination"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	TagEvent,
	TagSite,
	TagDate,
	TagRound,
	TagWhite,
	TagBlack,
	TagResult,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	return slices.Contains(SevenTagRoster, tag)
}

// TagMap is an insertion-ordered map of PGN tags. Keys are case-sensitive
// and unique. The zero value is an empty map ready to use.
type TagMap struct {
	keys   []string
	values map[string]string

	// Incremented on every change, so a serialized copy of the map can
	// tell whether it is stale.
	rev uint64
}

// NewTagMap creates an empty tag map.
func NewTagMap() *TagMap {
	return &TagMap{values: make(map[string]string)}
}

// Len returns the number of tags.
func (t *TagMap) Len() int {
	return len(t.keys)
}

// Keys returns the tag names in insertion order.
func (t *TagMap) Keys() []string {
	return slices.Clone(t.keys)
}

// Get returns a tag value, or empty string if not present.
func (t *TagMap) Get(name string) string {
	return t.values[name]
}

// Lookup returns a tag value and whether it is present.
func (t *TagMap) Lookup(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Has returns true if the tag is present.
func (t *TagMap) Has(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Add inserts a new tag at the end. It fails with ErrDuplicateTag if the
// name is already present.
func (t *TagMap) Add(name, value string) error {
	if t.Has(name) {
		return fmt.Errorf("%w: %s", errors.ErrDuplicateTag, name)
	}
	t.Set(name, value)
	return nil
}

// Set replaces the value of an existing tag in place, or appends a new one.
func (t *TagMap) Set(name, value string) {
	if t.values == nil {
		t.values = make(map[string]string)
	}
	if _, ok := t.values[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.values[name] = value
	t.rev++
}

// Delete removes a tag if present.
func (t *TagMap) Delete(name string) {
	i := slices.Index(t.keys, name)
	if i < 0 {
		return
	}
	t.keys = slices.Delete(t.keys, i, i+1)
	delete(t.values, name)
	t.rev++
}

// Revision returns a counter that changes whenever the map is modified.
func (t *TagMap) Revision() uint64 {
	return t.rev
}

// Clone returns an independent copy of the map.
func (t *TagMap) Clone() *TagMap {
	c := NewTagMap()
	for _, k := range t.keys {
		c.keys = append(c.keys, k)
		c.values[k] = t.values[k]
	}
	return c
}
