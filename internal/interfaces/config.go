package interfaces

// Config represents the application configuration
type Config struct {
	StrategiesDir       string `toml:"strategies_dir"`
	PreviousStrategy    string `toml:"previous_strategy"`
	LogLevel            string `toml:"log_level"`
	LogFormat           string `toml:"log_format"`
	CopyNameToClipboard bool   `toml:"copy_name_to_clipboard"`
	ReplicatePrompt     string `toml:"replicate"`
	NotePrompt          string `toml:"note"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}

// DefaultStore records the strategy file offered on the next run
type DefaultStore interface {
	SavePreviousStrategy(name string) error
}
