package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/internal/doctor"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/logging"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable problems such as world-writable files")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [site-file]",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks on the docsite config file, the site file, the
content directory, navigation links, the theme and file permissions.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorAll, quiet} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --all are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	ws := &doctor.Workspace{
		SiteFile:   siteFileArg(args),
		ConfigFile: configFile,
		LinkCheck:  linkOptions(logger),
		Logger:     logger,
	}

	runner := doctor.NewRunner(logger)
	for _, c := range doctor.DefaultChecks(ws) {
		runner.AddCheck(c)
	}

	report := runner.Run(cmd.Context())
	out := cmd.OutOrStdout()

	if doctorFix {
		if fixed := applyFixes(out, runner.Checks()); fixed > 0 {
			// Report the state after repair
			report = runner.Run(cmd.Context())
		}
	}

	if err := outputDoctorReport(out, report); err != nil {
		return err
	}

	switch report.Worst() {
	case doctor.SeverityError:
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case doctor.SeverityWarning:
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// applyFixes runs every Fixer with work to do and returns how many fixes
// succeeded.
func applyFixes(w io.Writer, checks []doctor.Check) int {
	fixed := 0
	for _, c := range checks {
		f, ok := c.(doctor.Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		for _, r := range f.Fix() {
			if r.Fixed {
				fixed++
			}
			if quiet || doctorJSON {
				continue
			}
			if r.Fixed {
				fmt.Fprintf(w, "%s fixed %s: %s\n", statusIcon(doctor.SeverityPass), r.Path, r.Description)
			} else {
				fmt.Fprintf(w, "%s could not fix %s: %s\n", statusIcon(doctor.SeverityError), r.Path, r.Description)
			}
		}
	}
	return fixed
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if quiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	// By default, show only errors and warnings
	showAll := doctorAll

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if issues, ok := result.Details["issues"].([]string); ok && problem {
			for _, line := range issues {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings is the failure for exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is the failure for exit code 2.
var errDoctorErrors = errors.New("doctor found errors")
