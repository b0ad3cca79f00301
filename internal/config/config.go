package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/planner/internal/logging"
)

// AppName names the config and data directories.
const AppName = "planner"

// EnvPrefix prefixes environment overrides: storage.key is PLANNER_STORAGE_KEY.
const EnvPrefix = "PLANNER"

// Config represents the complete planner configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig controls where the task list is kept
type StorageConfig struct {
	// Dir is the directory holding slot files. Empty means DataDir().
	// A leading ~ expands to the home directory.
	Dir string `mapstructure:"dir"`
	// Key names the slot holding the task list (default: "tasks")
	Key string `mapstructure:"key"`
	// Watch reloads the list in the TUI when another process changes the slot
	Watch bool `mapstructure:"watch"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// MaxTextWidth truncates task text in the list (default: 60, min: 10, max: 200)
	MaxTextWidth int `mapstructure:"max_text_width"`
	// ShowHelp shows the key help bar at the bottom of the screen
	ShowHelp bool `mapstructure:"show_help"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	// Format is the default format for `planner list`
	// Options: "text", "json", "yaml"
	Format string `mapstructure:"format"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level sets the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated backup files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated backups
	Compress bool `mapstructure:"compress"`
}

// Rotation converts the logging settings for logging.NewLogger.
func (l LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		Compress:   l.Compress,
	}
}

// ResolveDir returns the storage directory with defaults and ~ applied.
func (s *StorageConfig) ResolveDir() string {
	if s.Dir == "" {
		return DataDir()
	}
	return expandHome(s.Dir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:   "",
			Key:   "tasks",
			Watch: true,
		},
		TUI: TUIConfig{
			MaxTextWidth: 60,
			ShowHelp:     true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
			Compress:   false,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Storage defaults
	viper.SetDefault("storage.dir", defaults.Storage.Dir)
	viper.SetDefault("storage.key", defaults.Storage.Key)
	viper.SetDefault("storage.watch", defaults.Storage.Watch)

	// TUI defaults
	viper.SetDefault("tui.max_text_width", defaults.TUI.MaxTextWidth)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// BindEnv enables PLANNER_* environment overrides on the global viper.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
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
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the default directory for slot files and the log
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}
