package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/nav"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/internal/site"
	"github.com/thoreinstein/docsite/internal/translate"
	"github.com/thoreinstein/docsite/pkg/fileutil"
	"github.com/thoreinstein/docsite/pkg/frontmatter"
)

var (
	initTitle  string
	initFormat string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVar(&initTitle, "title", "My Notes",
		"site title")
	initCmd.Flags().StringVar(&initFormat, "format", "yaml",
		"site file format: yaml, toml")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a site file and a home page",
	Long: `Create docs/.vitepress/site.yaml (or site.toml) and docs/index.md under
dir, which defaults to the current directory. The scaffold validates and
builds as is.

Existing files are left alone unless --force is given, in which case they
are backed up first. Restore them with 'docsite backup restore'.`,
	Example: `  docsite init
  docsite init notes --title "Field Notes" --format toml

  See Also: docsite validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// scaffoldSite returns the site the scaffold starts from.
func scaffoldSite(title string) *site.Site {
	return &site.Site{
		Title:       title,
		Description: "Notes and guides",
		Lang:        site.DefaultLang,
		SrcDir:      "docs",
		CleanURLs:   true,
		ThemeConfig: site.ThemeConfig{
			Nav: []nav.RawItem{nav.NewLeaf("Home", "/")},
			Sidebar: nav.RawSidebar{Sections: []nav.RawSection{{
				Text:  "Introduction",
				Items: []nav.RawItem{nav.NewLeaf("Getting Started", "/")},
			}}},
			Footer: &site.Footer{Message: "Released under the MIT License."},
		},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	format := translate.Format(strings.ToLower(initFormat))
	if format != translate.FormatYAML && format != translate.FormatTOML {
		return errors.NewUserError(errors.Newf("invalid format %q", initFormat), "Use --format yaml or --format toml")
	}

	siteFile := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(paths.DefaultSiteFile, ".yaml")+"."+string(format)))
	indexFile := filepath.Join(root, "docs", "index.md")

	var existing []string
	for _, p := range []string{siteFile, indexFile} {
		if _, err := os.Stat(p); err == nil {
			if !initForce {
				return errors.NewUserError(errors.Newf("%s already exists", p), "Use --force to overwrite")
			}
			existing = append(existing, p)
		}
	}

	var backupID string
	if len(existing) > 0 {
		manifest, err := newBackupManager().Backup(projectKey(siteFile), "init --force", existing)
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "backing up existing files"), "Check that the cache directory is writable")
		}
		backupID = manifest.ID
	}

	if err := paths.EnsureDir(filepath.Dir(siteFile), 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating site directory"), "")
	}

	s := scaffoldSite(initTitle)
	if err := writeSiteFile(siteFile, format, s); err != nil {
		return errors.NewSystemError(err, "")
	}

	page, err := frontmatter.Format(map[string]any{
		"title":  s.Title,
		"layout": "home",
	}, "# "+s.Title+"\n\nStart writing here.\n")
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "rendering index page"), "")
	}
	if err := fileutil.AtomicWriteFile(indexFile, page, 0o644); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", indexFile), "")
	}

	if !quiet {
		out := cmd.OutOrStdout()
		if backupID != "" {
			fmt.Fprintf(out, "Backed up existing files: %s\n", backupID)
		}
		fmt.Fprintf(out, "Created %s\n", siteFile)
		fmt.Fprintf(out, "Created %s\n", indexFile)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Next: docsite validate %s\n", siteFile)
	}
	return nil
}

func writeSiteFile(path string, format translate.Format, s *site.Site) error {
	if format == translate.FormatYAML {
		return fileutil.AtomicWriteYAML(path, s)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshaling site")
	}
	data, err = translate.YAMLToTOML(data)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, 0o644)
}
