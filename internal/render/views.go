package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

// Forest renders every root in order (or in the grouped order), followed by
// the statistics of the whole tree.
func Forest(tr *task.Tree, opts Options) []string {
	p := NewPrinter(tr.States(), opts)

	var lines []string
	for _, id := range tr.Group(opts.Group) {
		t, err := tr.Get(id)
		if err != nil {
			continue
		}
		lines = append(lines, p.Task(t)...)
	}

	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return append(lines, p.Stats(tr.Stats())...)
}

// Subset renders the listed tasks. With several ids, entries are separated and
// followed by the statistics of the combined subtrees.
func Subset(tr *task.Tree, ids []int, opts Options) ([]string, error) {
	p := NewPrinter(tr.States(), opts)

	roots := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := tr.Get(id)
		if err != nil {
			return nil, err
		}
		roots = append(roots, t)
	}

	var lines []string
	for i, t := range roots {
		if i > 0 {
			lines = append(lines, p.style(tui.StyleDim, separator))
		}
		lines = append(lines, p.Task(t)...)
	}

	if len(roots) > 1 {
		var all []*task.Task
		for _, t := range roots {
			all = append(all, t.Flatten()...)
		}
		lines = append(lines, "")
		lines = append(lines, p.Stats(task.ComputeStats(tr.States(), all))...)
	}
	return lines, nil
}

// Stats renders the completion summary and the per-state counts.
func (p *Printer) Stats(s task.Stats) []string {
	done := s.Completed()
	summary := fmt.Sprintf("%d/%d done (%.0f%%)", done.Count, s.Total, done.Percent)

	parts := make([]string, 0, len(s.States))
	for _, sc := range s.States {
		label := fmt.Sprintf("%s %s: %d", stateMarker(sc.State, sc.State.Name), sc.State.Name, sc.Count)
		parts = append(parts, p.style(tui.StateStyle(sc.State.HexColor), label))
	}

	return []string{
		p.style(tui.StyleBold, summary),
		strings.Join(parts, "   "),
	}
}

// Board renders one section per state listing every task in that state, at
// any depth, in pre-order. The terminal state is skipped with HideCompleted.
func Board(tr *task.Tree, opts Options) []string {
	p := NewPrinter(tr.States(), opts)
	title := cases.Title(language.English)

	all := tr.All()
	idWidth := 1
	for _, t := range all {
		idWidth = max(idWidth, runewidth.StringWidth(fmt.Sprint(t.ID)))
	}

	var lines []string
	for _, st := range tr.States() {
		if opts.HideCompleted && st.Name == p.terminal {
			continue
		}

		var members []*task.Task
		for _, t := range all {
			if t.State == st.Name {
				members = append(members, t)
			}
		}

		if len(lines) > 0 {
			lines = append(lines, "")
		}
		header := fmt.Sprintf("%s %s (%d)", stateMarker(st, st.Name), title.String(st.Name), len(members))
		lines = append(lines,
			p.style(tui.StateStyle(st.HexColor).Inherit(tui.StyleBold), header),
			p.style(tui.StyleDim, strings.Repeat("─", runewidth.StringWidth(header))),
		)

		for _, t := range members {
			id := runewidth.FillLeft(fmt.Sprint(t.ID), idWidth)
			lines = append(lines, "  "+p.style(tui.StyleDim, id+".")+" "+t.Name)
		}
	}
	return lines
}
