package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/config"
	jberrors "github.com/tsijukebox/jukebox/internal/errors"
	"github.com/tsijukebox/jukebox/internal/wizard"
)

const configHeader = "# jukebox configuration\n\n"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing the jukebox configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including environment overrides. Secrets are masked.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  spotify.client_id      Spotify client ID
  spotify.exchange_url   Exchange backend URL
  spotify.origin         Origin the redirect URI is built from
  spotify.callback_port  Port of the local redirect receiver
  store.driver           Session store (file/sqlite)
  store.path             Session file or database path
  store.terminal_id      Terminal ID for the sqlite store
  defaults.device        Default playback device name or ID
  defaults.volume        Default volume (0-100)
  defaults.shuffle       Default shuffle state (true/false)
  defaults.repeat        Default repeat mode (off/track/context)
  defaults.market        Market for market-specific lookups
  tail.interval          Poll interval in milliseconds
  log.level              Log level (debug/info/warn/error)
  log.file               Log file (empty logs to stderr)

Examples:
  jukebox config set defaults.device "Kiosk"
  jukebox config set store.driver sqlite`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetDeviceCmd = &cobra.Command{
	Use:   "set-device",
	Short: "Interactively select default device",
	Long:  `Shows a picker to select the default playback device.`,
	RunE:  runConfigSetDevice,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetDeviceCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	shown.Spotify.ClientSecret = mask(shown.Spotify.ClientSecret)
	shown.Spotify.APIKey = mask(shown.Spotify.APIKey)

	if JSONOutput() {
		return printJSON(shown)
	}

	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(shown)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := configPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return jberrors.WithSuggestion(
			fmt.Errorf("%w at %s", jberrors.ErrConfigNotFound, path),
			"Run 'jukebox config init' first")
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeConfigFile(path, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{"status": "created", "path": path})
	}
	fmt.Printf("Created config file: %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'jukebox auth setup' to store the Spotify app credentials")
	fmt.Println("  2. Run 'jukebox auth login' to authenticate with Spotify")
	return nil
}

// configPath returns the file config commands read and write.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// configKeyKinds lists the settable keys and their TOML value kinds.
var configKeyKinds = map[string]string{
	"spotify.client_id":     "string",
	"spotify.client_secret": "string",
	"spotify.exchange_url":  "string",
	"spotify.api_key":       "string",
	"spotify.origin":        "string",
	"spotify.callback_port": "int",
	"store.driver":          "string",
	"store.path":            "string",
	"store.terminal_id":     "string",
	"defaults.device":       "string",
	"defaults.volume":       "int",
	"defaults.shuffle":      "bool",
	"defaults.repeat":       "string",
	"defaults.market":       "string",
	"tail.interval":         "int",
	"log.level":             "string",
	"log.file":              "string",
}

// parseConfigValue converts a command-line value to the key's TOML type.
func parseConfigValue(key, value string) (interface{}, error) {
	kind, ok := configKeyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	switch kind {
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return i, nil
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	default:
		return value, nil
	}
}

// updateConfigFile sets dotted keys in the TOML file at path, keeping every
// other value. The file is created if missing.
func updateConfigFile(path string, values map[string]interface{}) error {
	raw := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	for key, value := range values {
		section, field, ok := strings.Cut(key, ".")
		if !ok || section == "" || field == "" {
			return fmt.Errorf("invalid key format %q. Use 'section.key' (e.g., defaults.device)", key)
		}
		sectionMap, ok := raw[section].(map[string]interface{})
		if !ok {
			sectionMap = make(map[string]interface{})
			raw[section] = sectionMap
		}
		sectionMap[field] = value
	}

	return writeConfigFile(path, raw)
}

// writeConfigFile encodes v as TOML at path. The file may hold secrets, so
// it is readable by the owner only.
func writeConfigFile(path string, v interface{}) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write config: %w", cerr)
		}
	}()

	if _, err := f.WriteString(configHeader); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	path := configPath()
	if err := updateConfigFile(path, map[string]interface{}{key: typed}); err != nil {
		return err
	}

	// Reload so a bad value is reported now rather than on the next run.
	if updated, err := config.LoadFrom(path); err == nil {
		if err := updated.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, warningStyle.Render("Warning: "+err.Error()))
		}
	}

	return printStatus("updated", fmt.Sprintf("Set %s = %s", key, value),
		map[string]interface{}{"key": key, "value": typed})
}

func runConfigSetDevice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	devices, err := a.client.GetDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}
	if len(devices) == 0 {
		return jberrors.WithSuggestion(jberrors.ErrNoActiveDevice,
			"Open Spotify on the kiosk so it shows up as a device")
	}

	d, err := wizard.PickDevice("Select default device", devices)
	if err != nil {
		return err
	}

	return runConfigSet(cmd, []string{"defaults.device", d.Name})
}
