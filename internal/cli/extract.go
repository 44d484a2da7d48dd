package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// extractResult is the JSON output of 'task extract'.
type extractResult struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Dest   string `json:"dest"`
	IDs    []int  `json:"ids"`
	Count  int    `json:"count"`
}

func addExtractCommand(root *cobra.Command, a *app) {
	var dest string

	cmd := &cobra.Command{
		Use:   "extract <ids...> --dest <path>",
		Short: "Copy tasks into a new storage file",
		Long: `Copy tasks, with their sub-tasks, into a new storage file that declares
the same states. Ids are kept and the source file is not changed. The
destination must not exist.

Examples:
  task extract 2 --dest release.json     # Task 2 and its sub-tasks
  task extract 2,5 --dest archive.json   # Several subtrees`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(a.workDir, dest)
			}

			ctx := cmd.Context()
			s, err := a.openStorage(ctx)
			if err != nil {
				return err
			}

			extracted, err := s.Extract(ctx, dest, ids)
			if err != nil {
				return err
			}

			out := a.output(cmd.OutOrStdout())
			count := extracted.Tree().CountAll()
			if a.jsonOutput() {
				return out.JSON(extractResult{Status: "ok", Source: s.Path(), Dest: dest, IDs: ids, Count: count})
			}
			out.Success(fmt.Sprintf("Extracted %d %s to %s", count, plural(count, "task"), dest))
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "path of the new storage file")
	_ = cmd.MarkFlagRequired("dest")

	root.AddCommand(cmd)
}
