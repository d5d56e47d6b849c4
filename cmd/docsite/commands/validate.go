package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/validator"
)

var (
	validateFormat    string
	validateSkipLinks bool
)

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "",
		"output format: text, json (default from config)")
	validateCmd.Flags().BoolVar(&validateSkipLinks, "skip-links", false,
		"skip link checking against the content directory")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [site-file]",
	Short: "Validate the site file and check every navigation link",
	Long: `Validate the site file, build the navigation bar and sidebar of every
locale, and check each link against the Markdown content.

Every problem is reported, not just the first. Errors fail the command;
warnings (draft targets, missing anchors, duplicate entries) do not.`,
	Example: `  # Validate the configured site file
  docsite validate

  # Validate a specific file and print JSON
  docsite validate site.toml --format json

  See Also: docsite build, docsite doctor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := reportFormat(validateFormat)
	if err != nil {
		return err
	}

	a, err := analyze(cmd.Context(), siteFileArg(args), validateSkipLinks)
	if err != nil {
		return err
	}

	result := a.result()
	if !quiet || result.HasErrors() {
		if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
			return errors.NewSystemError(err, "")
		}
	}
	return a.err()
}

// reportFormat resolves a --format flag against the configured default.
func reportFormat(flag string) (validator.Format, error) {
	f := flag
	if f == "" {
		f = cfg.Format
	}
	switch validator.Format(f) {
	case validator.FormatText, "":
		return validator.FormatText, nil
	case validator.FormatJSON:
		return validator.FormatJSON, nil
	default:
		return "", errors.NewUserError(errors.Newf("invalid format %q", f), "Use --format text or --format json")
	}
}
