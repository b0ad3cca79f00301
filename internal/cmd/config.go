package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/planner/internal/config"
	"github.com/Iron-Ham/planner/internal/errors"
	"github.com/Iron-Ham/planner/internal/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify planner configuration",
	Long: `View or modify planner configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  planner config set storage.key work
  planner config set tui.max_text_width 80
  planner config set output.format json

Valid keys:
  storage.dir          - Directory holding task lists (empty for the default)
  storage.key          - Task list used when --slot is not given
  storage.watch        - Reload the screen when the list changes (true/false)
  tui.max_text_width   - Truncate task text to this many columns (10-200)
  tui.show_help        - Show the key help bar (true/false)
  output.format        - Default list format: text, json, yaml
  logging.enabled      - Write a log file in the data directory (true/false)
  logging.level        - Options: debug, info, warn, error
  logging.max_size_mb  - Rotate the log after this many megabytes
  logging.max_backups  - Rotated logs to keep
  logging.compress     - Gzip rotated logs (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/planner/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path, data directory and task lists",
	RunE:  runConfigPath,
}

// configKeyTypes gives the value type of every settable key.
var configKeyTypes = map[string]string{
	"storage.dir":         "string",
	"storage.key":         "string",
	"storage.watch":       "bool",
	"tui.max_text_width":  "int",
	"tui.show_help":       "bool",
	"output.format":       "string",
	"logging.enabled":     "bool",
	"logging.level":       "string",
	"logging.max_size_mb": "int",
	"logging.max_backups": "int",
	"logging.compress":    "bool",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	settings := viper.AllSettings()
	delete(settings, "config")

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to print configuration: %w", err)
	}
	return enc.Close()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeyTypes[key]
	if !ok || !config.IsSettableKey(key) {
		return errors.NewValidationError(fmt.Sprintf("unknown configuration key %q (run 'planner config set --help' to see valid keys)", key))
	}

	// Validate the value based on type
	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewValidationError("expected true or false").WithField(key).WithValue(value)
		}
		typedValue = b
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewValidationError("expected integer").WithField(key).WithValue(value)
		}
		typedValue = n
	}

	// Check the value against the rest of the configuration before saving
	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		viper.Set(key, previous)
		return errors.NewValidationError(err.Error()).WithField(key)
	}

	configFile := activeConfigFile()
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Only the file's own settings are written back, not defaults or
	// environment overrides.
	file := viper.New()
	file.SetConfigFile(configFile)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	file.Set(key, typedValue)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := activeConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return errors.NewValidationError(fmt.Sprintf("config file already exists at %s (use 'planner config set' to modify values)", configFile))
	}

	// Create config directory
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize planner's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_STORAGE_KEY)\n", config.EnvPrefix, config.EnvPrefix)

	cfg, err := config.Load()
	if err != nil {
		return configError(err)
	}
	dir := cfg.Storage.ResolveDir()
	if flagDir, _ := cmd.Flags().GetString("data-dir"); flagDir != "" {
		dir = flagDir
	}
	fmt.Fprintf(out, "\nData directory: %s\n", dir)

	keys, err := storage.NewOSBackend(dir).Keys()
	if err != nil {
		return err
	}
	slices.Sort(keys)
	if len(keys) == 0 {
		fmt.Fprintln(out, "Task lists: (none yet)")
	} else {
		fmt.Fprintf(out, "Task lists: %s\n", strings.Join(keys, ", "))
	}

	return nil
}

// activeConfigFile is the file in use, or the default location when none
// was found.
func activeConfigFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.ConfigFile()
}

// defaultConfigContent is written by `planner config init`.
var defaultConfigContent = strings.TrimLeft(`
# Planner Configuration

# Where task lists are kept
storage:
  # Directory for task list files (empty: $XDG_DATA_HOME/planner or ~/.local/share/planner)
  dir: ""
  # Task list used when --slot is not given
  key: tasks
  # Reload the interactive screen when the list is changed from another shell
  watch: true

# TUI (terminal user interface) settings
tui:
  # Truncate task text to this many columns (10-200)
  max_text_width: 60
  # Show the key help bar
  show_help: true

# Command output
output:
  # Default format for 'planner list': text, json, yaml
  format: text

# Log file (planner.log in the storage directory)
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  max_size_mb: 5
  max_backups: 2
  compress: false
`, "\n")
