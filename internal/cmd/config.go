package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/reactor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify reactor configuration",
	Long: `View or modify reactor configuration.

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
  reactor config set storage.backend file
  reactor config set runtime.frame_interval_ms 33
  reactor config set tui.alt_screen false

Valid keys:
  runtime.frame_interval_ms - Minimum milliseconds between frames
  tui.alt_screen            - Use the alternate screen buffer (true/false)
  tui.theme_file            - YAML theme file
  storage.backend           - Where read markers are kept
                              Options: bolt, file, memory
  storage.path              - Bolt database file or file store directory
  logging.enabled           - Write reactor.log (true/false)
  logging.level             - Options: debug, info, warn, error
  logging.dir               - Log directory
  demo.stories_file         - Stories JSON file
  demo.clock_interval_ms    - Clock tick in milliseconds
  demo.feed_command         - Command whose output lines become stories`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/reactor/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}

// settableKeys maps each key config set accepts to its value kind.
var settableKeys = map[string]string{
	"runtime.frame_interval_ms": "int",
	"tui.alt_screen":            "bool",
	"tui.theme_file":            "string",
	"storage.backend":           "string",
	"storage.path":              "string",
	"logging.enabled":           "bool",
	"logging.level":             "string",
	"logging.dir":               "string",
	"demo.stories_file":         "string",
	"demo.clock_interval_ms":    "int",
	"demo.feed_command":         "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	kind, ok := settableKeys[key]
	if !ok {
		keys := make([]string, 0, len(settableKeys))
		for k := range settableKeys {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(keys, ", "))
	}

	var (
		typed any
		err   error
	)
	switch kind {
	case "int":
		typed, err = cast.ToIntE(value)
	case "bool":
		typed, err = cast.ToBoolE(value)
	default:
		typed = value
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: expected %s", key, kind)
	}

	// Validate against a copy so a bad value never reaches the global config
	candidate := viper.New()
	if err := candidate.MergeConfigMap(viper.AllSettings()); err != nil {
		return fmt.Errorf("failed to copy configuration: %w", err)
	}
	candidate.Set(key, typed)
	var cfg config.Config
	if err := candidate.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return config.ValidationErrors(errs)
	}
	viper.Set(key, typed)

	// Ensure config directory exists
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typed)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

const configHeader = `# Reactor configuration
#
# Every key can also be set through the environment, e.g. storage.backend
# as REACTOR_STORAGE_BACKEND.

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !configForce {
		return fmt.Errorf("config file already exists at %s\nUse 'reactor config set' to modify values or --force to overwrite", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(configFile, append([]byte(configHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
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
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: REACTOR_* (e.g., REACTOR_STORAGE_BACKEND)")
	return nil
}
