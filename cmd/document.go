package cmd

import (
	"bytes"
	"fmt"
	"os"

	"exelaunch/internal/catalog"
	"exelaunch/internal/editor"

	"github.com/spf13/cobra"
)

func NewEditDocCmd(app *App) *cobra.Command {
	var editorName string

	cmd := &cobra.Command{
		Use:   "edit-doc",
		Short: "Edit the raw catalog document in your editor",
		Long: `Open a copy of the catalog document in an editor. When the editor exits
the copy is validated; a valid document replaces the catalog and an
invalid one is rejected, leaving the catalog unchanged.

The editor comes from --editor, the "editor" config field, $VISUAL,
$EDITOR, or the first of cursor, code and zed found in PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			if editorName == "" {
				editorName = app.cfg.Editor
			}
			ed, err := editor.Detect(editorName)
			if err != nil {
				return err
			}

			doc, err := mgr.Document()
			if err != nil {
				return err
			}
			tmp, err := os.CreateTemp("", "exelaunch-*.json")
			if err != nil {
				return err
			}
			defer os.Remove(tmp.Name())
			if _, err := tmp.Write(doc); err != nil {
				tmp.Close()
				return err
			}
			if err := tmp.Close(); err != nil {
				return err
			}

			app.log.Debug().Str("editor", ed.Name).Str("file", tmp.Name()).Msg("editing document")
			if err := ed.Edit(commandContext(cmd), tmp.Name()); err != nil {
				return err
			}

			edited, err := os.ReadFile(tmp.Name())
			if err != nil {
				return err
			}
			if bytes.Equal(edited, doc) {
				fmt.Fprintln(cmd.OutOrStdout(), "no changes")
				return nil
			}
			c, err := catalog.Load(edited)
			if err != nil {
				return fmt.Errorf("edited document rejected, catalog unchanged: %w", err)
			}
			if err := mgr.Replace(c, "edit document"); err != nil {
				return err
			}
			folders, entries := c.Count()
			fmt.Fprintf(cmd.OutOrStdout(), "catalog updated: %d folders, %d entries\n", folders, entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&editorName, "editor", "", "Editor to use (cursor, code, zed or a command)")

	return cmd
}
