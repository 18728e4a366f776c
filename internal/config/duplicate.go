package config

// DuplicateConfig holds settings for duplicate game detection in the
// batch decoder.
type DuplicateConfig struct {
	// Suppress drops games whose final position was already seen
	Suppress bool

	// ExactMatch also requires the same move sequence
	ExactMatch bool

	// MaxCapacity bounds the number of remembered games (0 = unlimited)
	MaxCapacity int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}
