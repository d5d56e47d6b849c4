package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/cmd"
	"github.com/thoreinstein/docsite/internal/backup"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/paths"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false,
		"output backups as JSON")
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage snapshots of the site file and content",
	Long: `Create, list and restore snapshots of a site's site file and Markdown
documents. Snapshots live in the docsite cache directory, grouped by project.

docsite init --force takes a snapshot before overwriting anything.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [site-file]",
	Short: "Snapshot the site file and every document",
	Example: `  docsite backup create
  docsite backup create docs/.vitepress/site.toml

  See Also: docsite backup list, docsite backup restore`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list [site-file]",
	Short: "List the snapshots of a project",
	Long:  `List the snapshots of the project the site file belongs to, newest first.`,
	Example: `  docsite backup list
  docsite backup list --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id] [site-file]",
	Short: "Restore a snapshot",
	Long: `Copy the files of a snapshot back to where they were taken from. Without
an ID the newest snapshot is restored. Files added since the snapshot are
left in place.`,
	Example: `  docsite backup restore
  docsite backup restore 20260314T092653`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBackupRestore,
}

func newBackupManager() *backup.Manager {
	return backup.NewManager(backup.WithToolVersion(cmd.Version))
}

// projectKey returns the backup project of a site file.
func projectKey(siteFile string) string {
	return backup.ProjectKey(paths.ProjectRoot(siteFile))
}

func runBackupCreate(c *cobra.Command, args []string) error {
	siteFile := siteFileArg(args)
	s, err := loadSite(siteFile)
	if err != nil {
		return err
	}
	set, err := scanContent(c.Context(), siteFile, s)
	if err != nil {
		return err
	}

	dir := contentDir(siteFile, s)
	files := []string{siteFile}
	for _, d := range set.Documents() {
		files = append(files, filepath.Join(dir, filepath.FromSlash(d.Path)))
	}

	manifest, err := newBackupManager().Backup(projectKey(siteFile), "backup create", files)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating backup"), "Check that the cache directory is writable")
	}

	if !quiet {
		fmt.Fprintf(c.OutOrStdout(), "%s Created backup %s (%d files)\n",
			color.GreenString("✓"), manifest.ID, len(manifest.Files))
	}
	return nil
}

// backupInfo is one backup in JSON output.
type backupInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Reason    string    `json:"reason,omitempty"`
	FileCount int       `json:"file_count"`
	Version   string    `json:"docsite_version"`
}

func runBackupList(c *cobra.Command, args []string) error {
	project := projectKey(siteFileArg(args))
	manifests, err := newBackupManager().List(project)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.NewSystemError(errors.Wrap(err, "listing backups"), "")
	}

	out := c.OutOrStdout()
	if backupListJSON {
		infos := make([]backupInfo, len(manifests))
		for i, m := range manifests {
			infos[i] = backupInfo{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				Reason:    m.Reason,
				FileCount: len(m.Files),
				Version:   m.ToolVersion,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"project": project, "backups": infos}); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding JSON"), "")
		}
		return nil
	}

	if len(manifests) == 0 {
		fmt.Fprintln(out, "No backups available")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Create one with: docsite backup create")
		return nil
	}
	return printBackups(out, manifests)
}

func printBackups(w io.Writer, manifests []backup.Manifest) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFILES\tREASON\tVERSION")
	for _, m := range manifests {
		reason := m.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			m.ID,
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			len(m.Files),
			reason,
			m.ToolVersion)
	}
	return tw.Flush()
}

func runBackupRestore(c *cobra.Command, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	}
	project := projectKey(siteFileArg(args[min(1, len(args)):]))
	mgr := newBackupManager()

	if id == "" {
		latest, err := mgr.Latest(project)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Run: docsite backup create")
			}
			return errors.NewSystemError(err, "")
		}
		id = latest.ID
	}

	manifest, err := mgr.Restore(project, id)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrNoBackupsFound):
			return errors.NewUserError(err, "Run: docsite backup list")
		case errors.Is(err, backup.ErrBackupCorrupted):
			return errors.NewSystemError(err, "Restore an older backup")
		}
		return errors.NewSystemError(errors.Wrap(err, "restoring backup"), "")
	}

	if !quiet {
		out := c.OutOrStdout()
		for _, f := range manifest.Files {
			fmt.Fprintf(out, "Restored %s\n", f.OriginalPath)
		}
		fmt.Fprintf(out, "%s Restored backup %s (%d files)\n",
			color.GreenString("✓"), manifest.ID, len(manifest.Files))
	}
	return nil
}
