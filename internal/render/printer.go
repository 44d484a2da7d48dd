package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

// Printer renders tasks against an ordered list of states.
type Printer struct {
	states   task.States
	terminal string
	opts     Options
}

// NewPrinter creates a Printer.
func NewPrinter(states task.States, opts Options) *Printer {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	p := &Printer{states: states, opts: opts}
	if len(states) > 0 {
		p.terminal = states.Terminal().Name
	}
	return p
}

// Task renders t and its subtree. t is usually a snapshot from task.Tree.
func (p *Printer) Task(t *task.Task) []string {
	if p.hidden(t) {
		return nil
	}
	var lines []string
	p.walk(&lines, t, 0, "", "")
	return lines
}

// walk appends the lines of t. head prefixes the task line; tail prefixes
// everything printed below it (description and children).
func (p *Printer) walk(lines *[]string, t *task.Task, depth int, head, tail string) {
	*lines = append(*lines, head+p.taskLine(t))

	if !p.opts.HideDescription && t.Description != "" {
		for _, l := range strings.Split(t.Description, "\n") {
			*lines = append(*lines, tail+blank+p.style(tui.StyleDim, l))
		}
	}

	if p.opts.Depth >= 0 && depth >= p.opts.Depth {
		return
	}

	children := p.visible(t.Children)
	for i, c := range children {
		last := i == len(children)-1
		switch {
		case p.opts.HideTree:
			p.walk(lines, c, depth+1, tail+blank, tail+blank)
		case last:
			p.walk(lines, c, depth+1, tail+branchLast, tail+blank)
		default:
			p.walk(lines, c, depth+1, tail+branchMid, tail+pipe)
		}
	}
}

func (p *Printer) taskLine(t *task.Task) string {
	var b strings.Builder

	st, _ := p.states.Get(t.State)
	stateStyle := tui.StateStyle(st.HexColor)

	b.WriteString(p.style(tui.StyleDim, strconv.Itoa(t.ID)+"."))
	b.WriteByte(' ')
	b.WriteString(p.style(stateStyle, stateMarker(st, t.State)))
	b.WriteByte(' ')

	name := t.Name
	if t.State == p.terminal {
		b.WriteString(p.style(stateStyle.Inherit(tui.StyleStrike), name))
	} else {
		b.WriteString(p.style(stateStyle, name))
	}

	if t.Priority != nil {
		b.WriteString(p.style(tui.StyleBold, fmt.Sprintf(" !%d", *t.Priority)))
	}

	if !p.opts.HideSubCounter && !t.IsLeaf() {
		done, total := p.subCount(t)
		b.WriteString(p.style(tui.StyleDim, fmt.Sprintf(" (%d/%d)", done, total)))
	}

	if !p.opts.HideTimestamp && !t.Timestamp.IsZero() {
		b.WriteString("  ")
		b.WriteString(p.style(tui.StyleDim, t.Timestamp.In(p.opts.Location).Format(TimestampLayout)))
	}

	return b.String()
}

// subCount counts the completed and total descendants of t.
func (p *Printer) subCount(t *task.Task) (done, total int) {
	for _, d := range t.Flatten()[1:] {
		total++
		if d.State == p.terminal {
			done++
		}
	}
	return done, total
}

// visible drops hidden tasks. Child order is never regrouped.
func (p *Printer) visible(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !p.hidden(t) {
			out = append(out, t)
		}
	}
	return out
}

func (p *Printer) hidden(t *task.Task) bool {
	return p.opts.HideCompleted && t.State == p.terminal
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if p.opts.NoColor {
		return text
	}
	return s.Render(text)
}

// stateMarker is the state icon, or the bracketed state name when the state
// declares no icon.
func stateMarker(st task.State, name string) string {
	if st.Icon != "" {
		return st.Icon
	}
	return "[" + name + "]"
}
