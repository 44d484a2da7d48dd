package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MikyStar/CLI-Manager-sub000/internal/config"
	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/storage"
)

// initResult is the JSON output of 'task init'.
type initResult struct {
	Status string   `json:"status"`
	File   string   `json:"file"`
	States []string `json:"states"`
	Config string   `json:"config,omitempty"`
}

func addInitCommand(root *cobra.Command, a *app) {
	var withConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new storage file",
		Long: `Create an empty storage file declaring the configured states.

An existing file is never overwritten. With --with-config a starter
.taskrc.yaml is also written to the working directory.

Examples:
  task init                     # Create tasks.json
  task init -f ~/notes.json     # Create a storage file elsewhere
  task init --with-config       # Also write .taskrc.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInit(cmd, withConfig)
		},
	}

	cmd.Flags().BoolVar(&withConfig, "with-config", false, "also write a starter "+constants.ProjectConfigName)

	root.AddCommand(cmd)
}

func (a *app) runInit(cmd *cobra.Command, withConfig bool) error {
	path := a.storagePath()
	s, err := storage.Create(cmd.Context(), path, a.cfg.States, a.storageOptions()...)
	if err != nil {
		return err
	}

	result := initResult{Status: "created", File: path, States: s.States().Names()}

	if withConfig {
		starter := *a.cfg
		if rel, relErr := filepath.Rel(a.workDir, path); relErr == nil && filepath.IsLocal(rel) {
			starter.Storage.File = rel
		} else {
			starter.Storage.File = path
		}

		cfgPath := filepath.Join(a.workDir, constants.ProjectConfigName)
		if err := config.WriteStarter(cfgPath, &starter); err != nil {
			return err
		}
		result.Config = cfgPath
	}

	out := a.output(cmd.OutOrStdout())
	if a.jsonOutput() {
		return out.JSON(result)
	}

	out.Success(fmt.Sprintf("Created %s", path))
	if result.Config != "" {
		out.Info(fmt.Sprintf("Wrote %s", result.Config))
	}
	return nil
}
