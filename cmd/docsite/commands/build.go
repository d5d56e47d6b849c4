package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/internal/site"
	"github.com/thoreinstein/docsite/internal/validator"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

var (
	buildOutput    string
	buildSkipLinks bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "-",
		`output file ("-" for stdout)`)
	buildCmd.Flags().BoolVar(&buildSkipLinks, "skip-links", false,
		"skip link checking against the content directory")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [site-file]",
	Short: "Emit the normalized site configuration as JSON",
	Long: `Validate the site file and write the normalized configuration the static
site generator consumes: defaults filled in, footer HTML sanitized, and the
built navigation trees in place of the authored ones.

Nothing is written when validation or link checking finds an error. The
output file is replaced atomically, and identical input always produces
byte-identical output.`,
	Example: `  # Print to stdout
  docsite build

  # Write next to the site file
  docsite build -o docs/.vitepress/site.json

  See Also: docsite validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	a, err := analyze(cmd.Context(), siteFileArg(args), buildSkipLinks)
	if err != nil {
		return err
	}

	result := a.result()
	if result.HasErrors() || (result.HasWarnings() && !quiet) {
		if err := validator.NewReporter(cmd.ErrOrStderr(), validator.FormatText).Report(result); err != nil {
			return errors.NewSystemError(err, "")
		}
	}
	if err := a.err(); err != nil {
		return err
	}

	data, err := site.Marshal(a.built)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if buildOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := paths.EnsureDir(filepath.Dir(buildOutput), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
	}
	if err := fileutil.AtomicWriteFile(buildOutput, data, 0o644); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", buildOutput), "Check that the output directory is writable")
	}
	logger.Info("wrote site configuration", "path", buildOutput, "bytes", len(data))
	return nil
}
