package cmd

import (
	"errors"
	"fmt"

	"exelaunch/internal/catalog"

	"github.com/spf13/cobra"
)

func NewAddCmd(app *App) *cobra.Command {
	var marker string

	cmd := &cobra.Command{
		Use:   "add <path> <launch-path>",
		Short: "Add a launch entry",
		Long: `Add a launch entry. The last element of <path> is the entry name and the
rest names the folder it goes into, which must already exist.`,
		Example: `  exelaunch add /Games/Doom "C:/Games/Doom/doom.exe" --marker 🔫`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			p := catalog.ParsePath(args[0])
			if p.IsRoot() {
				return fmt.Errorf("%w: entry path needs a name", catalog.ErrInvalidInput)
			}
			added, err := mgr.AddEntry(p.Parent(), p.Base(), args[1], marker)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", added)
			return nil
		},
	}

	cmd.Flags().StringVarP(&marker, "marker", "m", "", "Marker shown before the name (default from config)")

	return cmd
}

func NewMkdirCmd(app *App) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Add a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			p := catalog.ParsePath(args[0])
			if p.IsRoot() {
				return fmt.Errorf("%w: folder path needs a name", catalog.ErrInvalidInput)
			}

			start := len(p) - 1
			if parents {
				start = 0
			}
			for i := start; i < len(p); i++ {
				dir := p[:i+1]
				if parents {
					if n, err := mgr.Resolve(dir); err == nil {
						if n.IsFolder() {
							continue
						}
						return &catalog.Error{Op: "add folder", Path: dir, Err: catalog.ErrInvalidParent}
					}
				}
				if _, err := mgr.AddFolder(dir.Parent(), dir.Base()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", dir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Create missing parent folders and accept an existing folder")

	return cmd
}

func NewRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <path>",
		Aliases: []string{"remove"},
		Short:   "Remove a folder (with everything in it) or an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			p := catalog.ParsePath(args[0])
			if err := mgr.Remove(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p)
			return nil
		},
	}
	return cmd
}

func NewMvCmd(app *App) *cobra.Command {
	var before bool

	cmd := &cobra.Command{
		Use:   "mv <src> <dst>",
		Short: "Move a node into a folder or before a sibling",
		Long: `Move a node and its whole subtree.

By default <dst> must be a folder and the node becomes its last child.
With --before the node is placed immediately before <dst>, under <dst>'s
parent.`,
		Example: `  exelaunch mv /Doom /Games
  exelaunch mv /Games/Doom /Games/Halo --before`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			placement := catalog.AppendInto
			if before {
				placement = catalog.BeforeSibling
			}
			dst, err := mgr.Move(catalog.ParsePath(args[0]), catalog.ParsePath(args[1]), placement)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved to %s\n", dst)
			return nil
		},
	}

	cmd.Flags().BoolVar(&before, "before", false, "Place before <dst> instead of inside it")

	return cmd
}

func NewRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a folder or entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			renamed, err := mgr.Rename(catalog.ParsePath(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", renamed)
			return nil
		},
	}
	return cmd
}

func NewEditCmd(app *App) *cobra.Command {
	var (
		launchPath string
		marker     string
	)

	cmd := &cobra.Command{
		Use:   "edit <path>",
		Short: "Change an entry's launch path or marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("path") && !cmd.Flags().Changed("marker") {
				return errors.New("provide --path and/or --marker")
			}
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			p := catalog.ParsePath(args[0])
			n, err := mgr.Resolve(p)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("path") {
				launchPath = n.LaunchPath
			}
			if !cmd.Flags().Changed("marker") {
				marker = n.Marker
			}
			if err := mgr.EditEntry(p, launchPath, marker); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", p)
			return nil
		},
	}

	cmd.Flags().StringVar(&launchPath, "path", "", "New launch path")
	cmd.Flags().StringVarP(&marker, "marker", "m", "", "New marker")

	return cmd
}

func NewSortCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [path]",
		Short: "Sort a folder recursively: folders first, then by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			var p catalog.Path
			if len(args) == 1 {
				p = catalog.ParsePath(args[0])
			}
			if err := mgr.Sort(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sorted %s\n", p)
			return nil
		},
	}
	return cmd
}
