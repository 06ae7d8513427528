package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"exelaunch/internal/catalog"

	"github.com/spf13/cobra"
)

// row is the machine-readable form of one node printed by ls --json.
type row struct {
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	Depth      int    `json:"depth"`
	Marker     string `json:"marker,omitempty"`
	LaunchPath string `json:"launch_path,omitempty"`
}

func NewLsCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "ls [path]",
		Aliases: []string{"list"},
		Short:   "Print the catalog tree",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			snap, err := mgr.Snapshot()
			if err != nil {
				return err
			}
			var under catalog.Path
			if len(args) == 1 {
				under = catalog.ParsePath(args[0])
				if _, err := snap.Resolve(under); err != nil {
					return err
				}
			}
			return printTree(cmd.OutOrStdout(), snap, under, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print one JSON object per node")

	return cmd
}

func NewSearchCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the part of the tree matching a query",
		Long: `Print every node whose name or launch path contains <query>
(case-insensitive), together with the folders leading to it. A matching
folder is printed with everything in it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd)
			if err != nil {
				return err
			}
			view, err := mgr.Filter(args[0])
			if err != nil {
				return err
			}
			if view.Root().Len() == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no matches for %q\n", args[0])
				return nil
			}
			return printTree(cmd.OutOrStdout(), view, nil, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print one JSON object per node")

	return cmd
}

// printTree writes the subtree below under, indented by depth.
func printTree(w io.Writer, c *catalog.Catalog, under catalog.Path, jsonOut bool) error {
	enc := json.NewEncoder(w)

	return c.Walk(func(p catalog.Path, n *catalog.Node, depth int) error {
		if !under.IsRoot() && !under.Equal(p) && !under.IsAncestorOf(p) {
			if p.IsAncestorOf(under) {
				return nil
			}
			return catalog.SkipChildren
		}
		depth -= max(len(under)-1, 0)

		if jsonOut {
			return enc.Encode(row{
				Path:       p.String(),
				Kind:       n.Kind.String(),
				Depth:      depth,
				Marker:     n.Marker,
				LaunchPath: n.LaunchPath,
			})
		}

		indent := strings.Repeat("  ", depth)
		if n.IsFolder() {
			_, err := fmt.Fprintf(w, "%s%s/\n", indent, n.Name)
			return err
		}
		_, err := fmt.Fprintf(w, "%s%s  → %s\n", indent, n.Label(), n.LaunchPath)
		return err
	})
}
