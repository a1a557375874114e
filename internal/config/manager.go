package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"stratclone-cli/internal/interfaces"
	"stratclone-cli/internal/observability"
	"stratclone-cli/internal/template"
)

// previousStrategyEnv overrides the saved previous strategy on every run
const previousStrategyEnv = "STRATCLONE_PREVIOUS_STRATEGY"

// Manager implements the ConfigManager and DefaultStore interfaces
type Manager struct {
	v     *viper.Viper
	fs    afero.Fs
	path  string
	flags map[string]interface{} // Store flag values for precedence
}

// NewManagerWithFs creates a configuration manager reading and writing through fs
func NewManagerWithFs(fs afero.Fs) *Manager {
	v := newViper(fs)
	v.SetEnvPrefix("STRATCLONE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		fs:    fs,
		flags: make(map[string]interface{}),
	}
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("toml")
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("strategies_dir", "~/.config/stratclone/strategies")
	v.SetDefault("previous_strategy", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("copy_name_to_clipboard", false)
	v.SetDefault("prompts.replicate", template.DefaultReplicatePrompt)
	v.SetDefault("prompts.note", template.DefaultNotePrompt)
}

// DefaultConfigPath returns ~/.config/stratclone/config.toml
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "stratclone", "config.toml"), nil
}

// Path returns the config file the manager reads and writes
func (m *Manager) Path() string {
	return m.path
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)
	m.path = path

	// Check if config file exists
	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file %s: %w", path, err)
	}
	if !exists {
		// Config file doesn't exist, use defaults
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if str, ok := m.stringFlag("strategies_dir"); ok {
		config.StrategiesDir = expandPath(str)
	}

	if str, ok := m.stringFlag("previous_strategy"); ok {
		config.PreviousStrategy = str
	}

	if str, ok := m.stringFlag("log_level"); ok {
		config.LogLevel = str
	}

	if val, exists := m.flags["copy_name_to_clipboard"]; exists {
		if b, ok := val.(bool); ok && b {
			config.CopyNameToClipboard = true
		}
	}
}

func (m *Manager) stringFlag(key string) (string, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return "", false
	}
	str, ok := val.(string)
	return str, ok && str != ""
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(config.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be 'debug', 'info', 'warn' or 'error')", config.LogLevel)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[strings.ToLower(config.LogFormat)] {
		return fmt.Errorf("invalid log_format: %s (must be 'text' or 'json')", config.LogFormat)
	}

	if err := template.Check("replicate", config.ReplicatePrompt); err != nil {
		return fmt.Errorf("invalid prompts.replicate: %w", err)
	}
	if err := template.Check("note", config.NotePrompt); err != nil {
		return fmt.Errorf("invalid prompts.note: %w", err)
	}

	if config.StrategiesDir == "" {
		return fmt.Errorf("strategies_dir cannot be empty")
	}

	// Validate strategies directory exists or can be created
	if exists, _ := afero.DirExists(m.fs, config.StrategiesDir); !exists {
		if err := m.fs.MkdirAll(config.StrategiesDir, 0755); err != nil {
			return fmt.Errorf("strategies_dir directory does not exist and cannot be created: %s", config.StrategiesDir)
		}
	}

	return nil
}

// SavePreviousStrategy records name as the strategy offered on the next run.
// Only the config file's own settings are rewritten; env and flag values are
// never persisted.
func (m *Manager) SavePreviousStrategy(name string) error {
	path := m.path
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
		m.path = path
	}

	w := newViper(m.fs)

	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check config file %s: %w", path, err)
	}
	if exists {
		w.SetConfigFile(path)
		if err := w.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	w.Set("previous_strategy", name)

	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := w.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	m.v.Set("previous_strategy", name)

	if env, ok := os.LookupEnv(previousStrategyEnv); ok && env != name {
		observability.Logger().Warn("saved previous strategy is overridden by the environment",
			"saved", name, "env", previousStrategyEnv, "value", env)
	}
	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		StrategiesDir:       expandPath(m.v.GetString("strategies_dir")),
		PreviousStrategy:    m.v.GetString("previous_strategy"),
		LogLevel:            m.v.GetString("log_level"),
		LogFormat:           m.v.GetString("log_format"),
		CopyNameToClipboard: m.v.GetBool("copy_name_to_clipboard"),
		ReplicatePrompt:     m.v.GetString("prompts.replicate"),
		NotePrompt:          m.v.GetString("prompts.note"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
