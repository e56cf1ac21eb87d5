package driven

// ConfigStore persists application configuration as dot-notation keys
// ("embedding.provider", "chat.top_k"). The typed getters absorb the
// loose typing of the storage format: a missing key or a type mismatch
// yields the zero value, never an error.
type ConfigStore interface {
	// Get retrieves a raw configuration value and reports whether the key
	// exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when absent or mistyped.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false when absent or mistyped.
	GetBool(key string) bool

	// GetFloat retrieves a float value, or 0 when absent or mistyped.
	// Whole numbers stored as integers convert.
	GetFloat(key string) float64

	// GetStringSlice retrieves a string slice value, or nil when absent or
	// mistyped.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns where the configuration lives, for display.
	Path() string
}
