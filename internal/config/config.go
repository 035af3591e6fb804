package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete reactor configuration
type Config struct {
	Runtime RuntimeConfig `mapstructure:"runtime" yaml:"runtime"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Demo    DemoConfig    `mapstructure:"demo" yaml:"demo"`
}

// RuntimeConfig controls the event loop
type RuntimeConfig struct {
	// FrameIntervalMs aligns render frames to this interval in milliseconds.
	// 0 renders as soon as the task queue is idle.
	FrameIntervalMs int `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`
}

// TUIConfig controls the terminal host
type TUIConfig struct {
	// AltScreen runs the program in the terminal's alternate screen buffer
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"`
	// ThemeFile is an optional YAML palette overriding the built-in theme
	ThemeFile string `mapstructure:"theme_file" yaml:"theme_file"`
}

// StorageConfig selects the persisted-state backend
type StorageConfig struct {
	// Backend is one of "bolt", "file" or "memory"
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path is the bolt database file or the file store directory.
	// Empty means a location under the config directory.
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled turns on file logging
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum level: "debug", "info", "warn" or "error"
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where reactor.log is written. Empty means the config directory.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DemoConfig configures the bundled news reader
type DemoConfig struct {
	// StoriesFile is a JSON file of stories, reloaded when it changes.
	// Empty uses the built-in stories.
	StoriesFile string `mapstructure:"stories_file" yaml:"stories_file"`
	// ClockIntervalMs is how often the clock subscription ticks
	ClockIntervalMs int `mapstructure:"clock_interval_ms" yaml:"clock_interval_ms"`
	// FeedCommand is an optional shell command whose output lines are
	// added as live stories
	FeedCommand string `mapstructure:"feed_command" yaml:"feed_command"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			FrameIntervalMs: 16,
		},
		TUI: TUIConfig{
			AltScreen: true,
		},
		Storage: StorageConfig{
			Backend: "bolt",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
		Demo: DemoConfig{
			ClockIntervalMs: 1000,
		},
	}
}

// FrameInterval returns the frame interval as a time.Duration
func (c *RuntimeConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// ClockInterval returns the clock tick as a time.Duration
func (c *DemoConfig) ClockInterval() time.Duration {
	return time.Duration(c.ClockIntervalMs) * time.Millisecond
}

// ResolvePath returns the storage path, defaulting to a file or directory
// under the config directory for the backend.
func (c *StorageConfig) ResolvePath() string {
	if c.Path != "" {
		return c.Path
	}
	if c.Backend == "file" {
		return filepath.Join(ConfigDir(), "state")
	}
	return filepath.Join(ConfigDir(), "state.db")
}

// ResolveDir returns the log directory, defaulting to the config directory
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return ConfigDir()
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("runtime.frame_interval_ms", defaults.Runtime.FrameIntervalMs)

	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)

	viper.SetDefault("storage.backend", defaults.Storage.Backend)
	viper.SetDefault("storage.path", defaults.Storage.Path)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("demo.stories_file", defaults.Demo.StoriesFile)
	viper.SetDefault("demo.clock_interval_ms", defaults.Demo.ClockIntervalMs)
	viper.SetDefault("demo.feed_command", defaults.Demo.FeedCommand)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reactor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reactor"
	}
	return filepath.Join(home, ".config", "reactor")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidBackends returns the list of valid storage backends
func ValidBackends() []string {
	return []string{"bolt", "file", "memory"}
}
