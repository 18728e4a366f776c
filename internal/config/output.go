package config

// MinLineLength is the narrowest movetext wrap width accepted.
const MinLineLength = 20

// OutputConfig holds settings related to canonical PGN export.
type OutputConfig struct {
	// MaxLineLength is the maximum movetext line length
	MaxLineLength uint

	// KeepComments controls whether comments are written
	KeepComments bool

	// KeepNAGs controls whether Numeric Annotation Glyphs are written
	KeepNAGs bool

	// KeepMoveNumbers controls whether move numbers are written
	KeepMoveNumbers bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:   80,
		KeepComments:    true,
		KeepNAGs:        true,
		KeepMoveNumbers: true,
	}
}
