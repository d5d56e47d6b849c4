// Package commands implements the CLI commands for docsite.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/cmd"
	"github.com/thoreinstein/docsite/internal/config"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// colorFlag holds the value of the --color flag; colorMode is its parsed form.
var (
	colorFlag string
	colorMode = logging.ColorAuto
)

// cfg is the loaded tool configuration. It falls back to the defaults when
// loading fails; configLoadErr then reports the failure.
var cfg = config.Default()

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		"color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then the docsite config directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("docsite version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loaded, err := config.Load(configFile)
	if err != nil {
		cfg, configLoadErr = config.Default(), err
		return
	}
	cfg, configLoadErr = loaded, nil
}

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Validate and normalize documentation site configuration",
	Long: `docsite owns the declarative configuration of a documentation site:
site metadata, locales, head tags, the navigation bar, the sidebar and the
utility-CSS theme.

It builds the navigation trees, checks every link against the Markdown
content, and emits a normalized configuration document for the static
site generator.`,
	Example: `  # Check the site file and every navigation link
  docsite validate

  # Write the normalized configuration
  docsite build -o docs/.vitepress/site.json

  # Show the navigation structure
  docsite tree

  See Also: docsite init, docsite doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"cannot use --quiet and --verbose together")
	}

	mode, err := logging.ParseColorMode(colorFlag)
	if err != nil {
		return errors.NewUserError(err, "Use --color auto, --color always or --color never")
	}
	colorMode = mode
	color.NoColor = !mode.Enabled(cmd.OutOrStdout())

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("DOCSITE_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	var handler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	default:
		handler = logging.NewHandler(cmd.ErrOrStderr(), &logging.HandlerOptions{Level: level, Color: mode})
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handler = logging.Tee(handler, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a config file that failed to load. help, version,
// doctor and config run regardless so the file can be diagnosed and fixed.
func checkConfig(cmd *cobra.Command) error {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "doctor", "config":
			return nil
		}
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
