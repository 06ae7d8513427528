package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"exelaunch/internal/catalog"

	"github.com/spf13/cobra"
)

// formatFor picks a document format from an explicit flag or the file
// extension.
func formatFor(flag, file string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json", "yaml", "legacy":
		return format, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (json|yaml|legacy)", catalog.ErrInvalidInput, flag)
}

func NewExportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the catalog as JSON or YAML",
		Long: `Write the catalog to a file, or to stdout when no file is given.
The format follows the file extension unless --format is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			f, err := formatFor(format, file)
			if err != nil {
				return err
			}
			if f == "legacy" {
				return fmt.Errorf("%w: legacy is an import-only format", catalog.ErrInvalidInput)
			}

			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			snap, err := mgr.Snapshot()
			if err != nil {
				return err
			}

			var data []byte
			if f == "yaml" {
				data, err = catalog.SaveYAML(snap)
			} else {
				data, err = catalog.Save(snap)
			}
			if err != nil {
				return err
			}

			if file == "" || file == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(file, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (json|yaml)")

	return cmd
}

func NewImportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with a JSON, YAML or legacy document",
		Long: `Replace the whole catalog with the contents of <file> ("-" reads stdin).

Formats:
  json    the catalog document written by exelaunch
  yaml    the YAML form written by "exelaunch export catalog.yaml"
  legacy  the old flat {"executables": [...], "groups": [...]} layout

The format follows the file extension unless --format is set. Legacy
documents must be imported with --format legacy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(format, args[0])
			if err != nil {
				return err
			}

			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var c *catalog.Catalog
			switch f {
			case "yaml":
				c, err = catalog.LoadYAML(data)
			case "legacy":
				c, err = catalog.ImportLegacy(data)
			default:
				c, err = catalog.Load(data)
			}
			if err != nil {
				return err
			}

			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			if err := mgr.Replace(c, "import "+filepath.Base(args[0])); err != nil {
				return err
			}
			folders, entries := c.Count()
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d folders and %d entries\n", folders, entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format (json|yaml|legacy)")

	return cmd
}
