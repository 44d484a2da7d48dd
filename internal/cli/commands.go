package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/render"
	"github.com/MikyStar/CLI-Manager-sub000/internal/storage"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

// mutationResult is the JSON output of every mutating command.
type mutationResult struct {
	Status string       `json:"status"`
	File   string       `json:"file"`
	IDs    []int        `json:"ids"`
	Tasks  []*task.Task `json:"tasks,omitempty"`
}

// output returns the Output for w in the selected format.
func (a *app) output(w io.Writer) tui.Output {
	return tui.NewOutput(w, a.flags.Output)
}

func (a *app) jsonOutput() bool {
	return a.flags.Output == OutputJSON
}

func (a *app) storagePath() string {
	return a.cfg.StoragePath(a.workDir)
}

func (a *app) storageOptions() []storage.Option {
	return []storage.Option{
		storage.WithLockTimeout(a.cfg.Storage.LockTimeout),
		storage.WithSchemaValidation(a.cfg.Storage.ValidateSchema),
	}
}

func (a *app) openStorage(ctx context.Context) (*storage.Storage, error) {
	return storage.Load(ctx, a.storagePath(), a.storageOptions()...)
}

// renderOptions maps the print configuration to renderer options. The group
// name was already checked by config.Validate.
func (a *app) renderOptions() render.Options {
	p := a.cfg.Print
	group, _ := task.ParseGroupBy(p.Group)
	return render.Options{
		Depth:           p.Depth,
		HideDescription: p.HideDescription,
		HideTimestamp:   p.HideTimestamp,
		HideSubCounter:  p.HideSubCounter,
		HideTree:        p.HideTree,
		HideCompleted:   p.HideCompleted,
		Group:           group,
		NoColor:         p.NoColor || !tui.HasColorSupport(),
	}
}

// report prints the outcome of a mutating command: the affected ids and
// tasks as JSON, or a success line followed by the board when
// print.after_action is set.
func (a *app) report(w io.Writer, s *storage.Storage, msg string, ids []int) error {
	out := a.output(w)
	if a.jsonOutput() {
		result := mutationResult{Status: "ok", File: s.Path(), IDs: ids}
		for _, id := range ids {
			if t, err := s.Tree().Get(id); err == nil {
				result.Tasks = append(result.Tasks, t)
			}
		}
		return out.JSON(result)
	}

	out.Success(msg)
	if a.cfg.Print.AfterAction {
		out.Lines(append([]string{""}, render.Forest(s.Tree(), a.renderOptions())...))
	}
	return nil
}

// parseIDs parses task ids given as separate arguments or comma separated
// lists ("1 2", "1,2").
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.NewExitCode2Error(fmt.Errorf("%w: no task id given", errors.ErrInvalidArgument))
	}
	return ids, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, errors.NewExitCode2Error(
			fmt.Errorf("%w: task id must be a non-negative integer, got %q", errors.ErrInvalidArgument, s))
	}
	return id, nil
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// plural returns noun, with an "s" unless n is 1.
func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
