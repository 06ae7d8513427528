package cmd

import (
	"fmt"

	"exelaunch/internal/catalog"
	"exelaunch/internal/store"
	"exelaunch/internal/tui"
	"exelaunch/internal/ui"

	"github.com/spf13/cobra"
)

func NewRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <path>",
		Aliases: []string{"launch"},
		Short:   "Launch an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			p := catalog.ParsePath(args[0])
			if err := mgr.Launch(commandContext(cmd), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "launched %s\n", p)
			return nil
		},
	}
	return cmd
}

func NewTUICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive tree (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	mgr, err := app.open(cmd)
	if err != nil {
		return err
	}

	m := tui.New(mgr, app.log, app.Version)
	if app.load != nil && app.load.Status == store.StatusRecovered {
		m.Notify(ui.NotifyWarning, "Catalog was unreadable and has been reset; the old file was kept as %s", app.load.QuarantinePath)
	}
	return tui.Run(m)
}
