package task

import (
	"cmp"
	"fmt"
	"slices"

	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// Attribute names a searchable task field.
type Attribute string

// Searchable attributes.
const (
	AttrID          Attribute = "id"
	AttrName        Attribute = "name"
	AttrState       Attribute = "state"
	AttrDescription Attribute = "description"
	AttrPriority    Attribute = "priority"
)

func (t *Task) matches(attr Attribute, value any) bool {
	switch attr {
	case AttrID:
		v, ok := value.(int)
		return ok && t.ID == v
	case AttrName:
		v, ok := value.(string)
		return ok && t.Name == v
	case AttrState:
		v, ok := value.(string)
		return ok && t.State == v
	case AttrDescription:
		v, ok := value.(string)
		return ok && t.Description == v
	case AttrPriority:
		if value == nil {
			return t.Priority == nil
		}
		v, ok := value.(int)
		return ok && t.Priority != nil && *t.Priority == v
	default:
		return false
	}
}

// StateCount is the number of tasks in one state.
type StateCount struct {
	State   State   `json:"state"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Stats aggregates task counts per state, in state order.
type Stats struct {
	States []StateCount `json:"states"`
	Total  int          `json:"total"`
}

// Completed returns the count for the terminal state.
func (s Stats) Completed() StateCount {
	if len(s.States) == 0 {
		return StateCount{}
	}
	return s.States[len(s.States)-1]
}

// Stats counts every task in the forest per state.
func (tr *Tree) Stats() Stats {
	total := tr.CountAll()
	out := Stats{Total: total}
	for _, st := range tr.states {
		n := len(tr.Search(AttrState, st.Name))
		out.States = append(out.States, StateCount{State: st, Count: n, Percent: percent(n, total)})
	}
	return out
}

// ComputeStats counts the given tasks per state. Tasks are counted as given;
// pass a flattened list to include descendants.
func ComputeStats(states States, tasks []*Task) Stats {
	counts := make(map[string]int, len(states))
	for _, t := range tasks {
		counts[t.State]++
	}

	out := Stats{Total: len(tasks)}
	for _, st := range states {
		n := counts[st.Name]
		out.States = append(out.States, StateCount{State: st, Count: n, Percent: percent(n, len(tasks))})
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// GroupBy selects the ordering of a grouped view.
type GroupBy string

// Supported groupings. GroupNone keeps the canonical order.
const (
	GroupNone     GroupBy = ""
	GroupState    GroupBy = "state"
	GroupPriority GroupBy = "priority"
	GroupID       GroupBy = "id"
)

// ParseGroupBy validates a grouping name.
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case GroupNone, GroupState, GroupPriority, GroupID:
		return g, nil
	default:
		return GroupNone, fmt.Errorf("%w: group must be one of state, priority, id; got %q",
			taskerrors.ErrInvalidArgument, s)
	}
}

// Group returns the root ids stable-sorted by the grouping. The tree's own
// order is left untouched; only the returned view is sorted.
func (tr *Tree) Group(by GroupBy) []int {
	ids := tr.RootIDs()
	tasks := make(map[int]*Task, len(ids))
	for _, id := range ids {
		tasks[id] = tr.nodes[id].task
	}
	sortTasks(ids, tasks, tr.states, by)
	return ids
}

// sortTasks stable-sorts ids in place by the grouping, looking attributes up
// in tasks.
func sortTasks(ids []int, tasks map[int]*Task, states States, by GroupBy) {
	switch by {
	case GroupState:
		slices.SortStableFunc(ids, func(a, b int) int {
			return cmp.Compare(states.Index(tasks[a].State), states.Index(tasks[b].State))
		})
	case GroupPriority:
		slices.SortStableFunc(ids, func(a, b int) int {
			return comparePriority(tasks[a].Priority, tasks[b].Priority)
		})
	case GroupID:
		// ids are unique by construction, so the order is total.
		slices.Sort(ids)
	case GroupNone:
	}
}

// comparePriority orders present priorities ascending and puts absent ones last.
func comparePriority(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}
