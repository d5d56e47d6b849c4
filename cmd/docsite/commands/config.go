package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/config"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

// configKeys lists the settable keys in display order.
var configKeys = []string{
	"version",
	"site_file",
	"format",
	"link_check.enabled",
	"link_check.anchors",
	"link_check.ignore",
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage docsite configuration",
	Long: `Manage the docsite tool configuration stored in config.yaml, found in
the current directory or the docsite config directory.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  docsite config

  # Get a specific value
  docsite config get site_file

  # Never check links to the changelog
  docsite config set link_check.ignore "/changelog*"

See Also: docsite doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  docsite config get format
  docsite config get link_check.ignore

See Also: docsite config set, docsite config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the configuration file.

For link_check.ignore, use comma-separated patterns. The resulting
configuration is validated before it is written.`,
	Example: `  docsite config set format json
  docsite config set link_check.anchors false
  docsite config set link_check.ignore "/api/*,/changelog"

See Also: docsite config get, docsite config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all configuration",
	Long:    `List all configuration values in YAML format.`,
	Example: `  docsite config list`,
	RunE:    runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. If no configuration file
exists, create one with 'docsite config set' first.`,
	Example: `  docsite config edit
  EDITOR=nano docsite config edit`,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(out, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	default:
		fmt.Fprintln(out, viper.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !slices.Contains(configKeys, key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key),
			"Valid keys: "+strings.Join(configKeys, ", "))
	}

	if key == "link_check.ignore" {
		viper.Set(key, parseList(value))
	} else {
		viper.Set(key, value)
	}

	var next config.Config
	if err := viper.Unmarshal(&next); err != nil {
		return errors.NewUserError(errors.Wrapf(err, "invalid value for %s", key), "")
	}
	if errs := config.Validate(&next); len(errs) > 0 {
		return errors.NewUserError(errors.Wrapf(errs[0], "invalid value for %s", key), "")
	}

	path := configFilePath()
	if err := writeConfig(path, &next); err != nil {
		return errors.NewSystemError(err, "")
	}
	cfg = &next

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, viper.Get(key))
	}
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(errors.Newf("config file not found at %s", path),
			"Run: docsite config set <key> <value>")
	}
	if err := openEditor(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your editor command")
	}
	return nil
}

// parseList splits a comma-separated value, dropping blank elements.
func parseList(s string) []string {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// configFilePath returns the file config writes go to: the --config file,
// then the file that was loaded, then config.yaml in the config directory.
func configFilePath() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

// writeConfig writes c to path, creating the directory as needed.
func writeConfig(path string, c *config.Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, c); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
