package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"exelaunch/internal/catalog"
	"exelaunch/internal/history"

	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New(`history is disabled; set "history": true in the config file or EXELAUNCH_HISTORY=true`)

func historyOf(cmd *cobra.Command, app *App) (*history.History, error) {
	mgr, err := app.open(cmd)
	if err != nil {
		return nil, err
	}
	h := mgr.History()
	if h == nil {
		return nil, errHistoryDisabled
	}
	return h, nil
}

func NewHistoryCmd(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "List recorded versions of the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := historyOf(cmd, app)
			if err != nil {
				return err
			}
			commits, err := h.Log(count)
			if err != nil {
				return err
			}
			if len(commits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no history yet")
				return nil
			}
			for _, c := range commits {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					c.ShortHash(), c.When.Local().Format("2006-01-02 15:04:05"), c.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of versions to show (0 for all)")

	return cmd
}

func NewDiffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [rev] [rev]",
		Short: "Show changes between recorded versions",
		Long: `Compare two recorded versions of the catalog document.

With no arguments the current document is compared with its parent
version (HEAD~1). With one revision that version is compared with the
current document. With two, the first is compared with the second.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := historyOf(cmd, app)
			if err != nil {
				return err
			}
			st := app.mgr.Store()
			name := filepath.Base(st.Path())

			oldRev, newRev := "HEAD~1", ""
			switch len(args) {
			case 1:
				oldRev = args[0]
			case 2:
				oldRev, newRev = args[0], args[1]
			}

			oldDoc, err := h.Show(oldRev)
			if err != nil {
				return err
			}
			var newDoc []byte
			newLabel := name
			if newRev == "" {
				newDoc, err = st.ReadDocument()
			} else {
				newDoc, err = h.Show(newRev)
				newLabel = name + "@" + newRev
			}
			if err != nil {
				return err
			}

			res := history.Diff(oldDoc, newDoc)
			if !res.HasChanges() {
				fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Unified(name+"@"+oldRev, newLabel))
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
			return nil
		},
	}
	return cmd
}

func NewRestoreCmd(app *App) *cobra.Command {
	var rev string

	cmd := &cobra.Command{
		Use:   "restore [backup]",
		Short: "Replace the catalog with a backup or a recorded version",
		Long: `With no arguments, list the rotated backups (enable them with
"backups": N in the config file). With a backup name, replace the catalog
with that backup. With --rev, replace it with a version from history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}

			if rev != "" {
				if len(args) > 0 {
					return errors.New("provide either a backup name or --rev, not both")
				}
				h, err := historyOf(cmd, app)
				if err != nil {
					return err
				}
				data, err := h.Show(rev)
				if err != nil {
					return err
				}
				c, err := catalog.Load(data)
				if err != nil {
					return err
				}
				if err := mgr.Replace(c, "restore "+rev); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored version %s\n", rev)
				return nil
			}

			if len(args) == 0 {
				backups, err := mgr.Store().ListBackups()
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no backups")
					return nil
				}
				for i := len(backups) - 1; i >= 0; i-- {
					fmt.Fprintln(cmd.OutOrStdout(), backups[i].Name)
				}
				return nil
			}

			if err := mgr.Restore(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "", "Restore a version from history instead of a backup")

	return cmd
}
