// Package cmd holds the exelaunch command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exelaunch/internal/config"
	"exelaunch/internal/history"
	"exelaunch/internal/launcher"
	"exelaunch/internal/logger"
	"exelaunch/internal/manager"
	"exelaunch/internal/store"

	"github.com/spf13/cobra"
)

// App carries state shared by every command.
type App struct {
	ConfigPath string
	Debug      bool
	Version    string

	cfg  *config.Config
	log  *logger.Logger
	mgr  *manager.Manager
	load *store.LoadResult

	// newLauncher is replaced in tests.
	newLauncher func(shell string) launcher.Launcher
}

// Execute runs the root command.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&App{
		Version: version,
		newLauncher: func(shell string) launcher.Launcher {
			return launcher.NewShellLauncher(shell)
		},
	})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "exelaunch",
		Short:        "Organise and launch programs from a folder tree",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive tree
  exelaunch

  # Scriptable edits
  exelaunch mkdir -p /Games/Action
  exelaunch add /Games/Action/Doom "C:/Games/Doom/doom.exe" --marker 🔫
  exelaunch mv /Games/Action/Doom /Games --before
  exelaunch ls
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("EXELAUNCH_CONFIG", config.ConfigPath()), "Path to the config file")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write debug messages to the log file")

	cmd.AddCommand(NewTUICmd(app))
	cmd.AddCommand(NewAddCmd(app))
	cmd.AddCommand(NewMkdirCmd(app))
	cmd.AddCommand(NewRmCmd(app))
	cmd.AddCommand(NewMvCmd(app))
	cmd.AddCommand(NewRenameCmd(app))
	cmd.AddCommand(NewEditCmd(app))
	cmd.AddCommand(NewSortCmd(app))
	cmd.AddCommand(NewLsCmd(app))
	cmd.AddCommand(NewSearchCmd(app))
	cmd.AddCommand(NewRunCmd(app))
	cmd.AddCommand(NewExportCmd(app))
	cmd.AddCommand(NewImportCmd(app))
	cmd.AddCommand(NewHistoryCmd(app))
	cmd.AddCommand(NewDiffCmd(app))
	cmd.AddCommand(NewRestoreCmd(app))
	cmd.AddCommand(NewEditDocCmd(app))
	cmd.AddCommand(NewVersionCmd(app))

	return cmd
}

// setup loads the config and opens the log file. The catalog itself is
// opened lazily by commands that need it.
func (a *App) setup() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.FirstRun {
		// Persist defaults so the user has a file to edit. Failure is not fatal.
		if err := cfg.Save(a.ConfigPath); err == nil {
			cfg.FirstRun = false
		}
	}
	a.cfg = cfg

	log, err := logger.NewFileLogger("cli", cfg.LogPath)
	if err != nil {
		log = logger.New("cli", os.Stderr)
		log.Warn().Err(err).Str("path", cfg.LogPath).Msg("cannot open log file, logging to stderr")
	}
	log.SetDebug(a.Debug)
	a.log = log
	return nil
}

func (a *App) teardown() error {
	var err error
	if a.mgr != nil {
		err = a.mgr.Close()
		a.mgr = nil
	}
	if a.log != nil {
		a.log.Close()
	}
	return err
}

// open builds the manager on first use and loads the catalog.
func (a *App) open(cmd *cobra.Command) (*manager.Manager, error) {
	if a.mgr != nil {
		return a.mgr, nil
	}

	st := store.New(a.cfg.CatalogPath, store.WithBackups(a.cfg.Backups))

	var h *history.History
	if a.cfg.History {
		var err error
		h, err = history.Open(a.cfg.HistoryDir(), filepath.Base(st.Path()))
		if err != nil {
			// History is optional; keep going without it.
			a.log.Warn().Err(err).Msg("history disabled")
			h = nil
		}
	}

	mgr := manager.New(a.cfg, st, a.newLauncher(a.cfg.LaunchShell), h, a.log)
	res, err := mgr.Open(commandContext(cmd))
	if err != nil {
		return nil, err
	}
	if res.Status == store.StatusRecovered {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s was unreadable (%v); starting with an empty catalog\n", st.Path(), res.Cause)
		if res.QuarantinePath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: the unreadable file was kept as %s\n", res.QuarantinePath)
		}
	}

	a.mgr = mgr
	a.load = res
	return mgr, nil
}

// commandContext returns the command's context or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
