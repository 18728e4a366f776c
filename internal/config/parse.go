package config

// ParseConfig holds settings for reading PGN text.
type ParseConfig struct {
	// AllowComments accepts brace comments; when false they are a format
	// error.
	AllowComments bool

	// CheckResultTag logs a warning when the Result tag disagrees with the
	// game termination marker.
	CheckResultTag bool
}

// NewParseConfig creates a ParseConfig with default values.
func NewParseConfig() *ParseConfig {
	return &ParseConfig{
		AllowComments:  true,
		CheckResultTag: true,
	}
}
