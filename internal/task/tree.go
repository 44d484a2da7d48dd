package task

import (
	"fmt"

	"github.com/MikyStar/CLI-Manager-sub000/internal/clock"
	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// node is an arena record. The task holds attributes only; structure lives
// in parent and children.
type node struct {
	task     *Task
	parent   int
	children []int
}

// Tree is the authoritative collection of tasks. Every task, at any depth,
// is indexed by id; the forest is the ordered list of records without a parent.
//
// Tree is not safe for concurrent use.
type Tree struct {
	states States
	nodes  map[int]*node
	roots  []int
	clock  clock.Clock
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithClock sets the clock used to stamp inserted tasks.
func WithClock(c clock.Clock) TreeOption {
	return func(t *Tree) {
		t.clock = c
	}
}

// NewTree creates an empty tree over the given ordered states.
func NewTree(states []State, opts ...TreeOption) (*Tree, error) {
	st := States(append([]State(nil), states...))
	if err := st.Validate(); err != nil {
		return nil, err
	}

	t := &Tree{
		states: st,
		nodes:  make(map[int]*node),
		clock:  clock.RealClock{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// States returns a copy of the ordered states.
func (tr *Tree) States() States {
	return append(States(nil), tr.states...)
}

// Has reports whether a task with the id exists anywhere in the tree.
func (tr *Tree) Has(id int) bool {
	_, ok := tr.nodes[id]
	return ok
}

// CountAll returns the number of tasks across the forest, at every depth.
func (tr *Tree) CountAll() int {
	return len(tr.nodes)
}

// RootIDs returns the root ids in canonical order.
func (tr *Tree) RootIDs() []int {
	return append([]int(nil), tr.roots...)
}

// Roots returns snapshots of the root tasks, with their subtrees, in canonical order.
func (tr *Tree) Roots() []*Task {
	out := make([]*Task, 0, len(tr.roots))
	for _, id := range tr.roots {
		out = append(out, tr.snapshot(id))
	}
	return out
}

// All returns snapshots of every task in the forest, pre-order.
func (tr *Tree) All() []*Task {
	out := make([]*Task, 0, len(tr.nodes))
	for _, root := range tr.Roots() {
		out = append(out, root.Flatten()...)
	}
	return out
}

// Get returns a snapshot of the task and its subtree.
func (tr *Tree) Get(id int) (*Task, error) {
	if !tr.Has(id) {
		return nil, fmt.Errorf("%w: %d", taskerrors.ErrTaskNotFound, id)
	}
	return tr.snapshot(id), nil
}

// Match is what Retrieve hands to its callback.
type Match struct {
	// Task is a snapshot of the matched task.
	Task *Task
	// Index is the task's position among its siblings (or among the roots).
	Index int
	// Parent is a snapshot of the parent task, nil for roots.
	Parent *Task
}

// Retrieve looks up the task with the id and calls fn with it.
func (tr *Tree) Retrieve(id int, fn func(Match)) error {
	n, ok := tr.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", taskerrors.ErrTaskNotFound, id)
	}

	m := Match{Task: tr.snapshot(id), Index: indexOf(tr.siblings(n.parent), id)}
	if n.parent != NoID {
		m.Parent = tr.snapshot(n.parent)
	}
	fn(m)
	return nil
}

// IsDescendant reports whether id sits somewhere below ancestor.
func (tr *Tree) IsDescendant(id, ancestor int) bool {
	n, ok := tr.nodes[id]
	if !ok {
		return false
	}
	for p := n.parent; p != NoID; p = tr.nodes[p].parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors of id, 0 for roots.
func (tr *Tree) Depth(id int) (int, error) {
	n, ok := tr.nodes[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", taskerrors.ErrTaskNotFound, id)
	}
	depth := 0
	for p := n.parent; p != NoID; p = tr.nodes[p].parent {
		depth++
	}
	return depth, nil
}

// Add inserts t, and any children it carries, as the last child of parent,
// or as the last root when parent is NoID. It returns the id of t.
//
// Tasks without an id receive the smallest non-negative id not used anywhere
// in the tree. Explicit ids are kept and must be unused. Tasks without a
// timestamp are stamped with the tree clock. Nothing is inserted on error.
func (tr *Tree) Add(t *Task, parent int) (int, error) {
	if parent != NoID && !tr.Has(parent) {
		return NoID, fmt.Errorf("%w: parent %d", taskerrors.ErrTaskNotFound, parent)
	}

	reserved := make(map[int]bool)
	for _, n := range t.Flatten() {
		if !tr.states.Contains(n.State) {
			return NoID, fmt.Errorf("%w: %q (task %q)", taskerrors.ErrUnknownState, n.State, n.Name)
		}
		if n.ID < NoID {
			return NoID, fmt.Errorf("%w: negative id %d", taskerrors.ErrInvalidArgument, n.ID)
		}
		if n.ID == NoID {
			continue
		}
		if tr.Has(n.ID) || reserved[n.ID] {
			return NoID, fmt.Errorf("%w: %d", taskerrors.ErrDuplicateID, n.ID)
		}
		reserved[n.ID] = true
	}

	now := tr.clock.Now()
	var insert func(src *Task, parent int) int
	insert = func(src *Task, parent int) int {
		n := src.shallow()
		if n.ID == NoID {
			n.ID = tr.firstFreeID(reserved)
		}
		if n.Timestamp.IsZero() {
			n.Timestamp = now
		}
		tr.nodes[n.ID] = &node{task: n, parent: parent}
		tr.link(n.ID, parent)
		for _, c := range src.Children {
			insert(c, n.ID)
		}
		return n.ID
	}

	return insert(t, parent), nil
}

// Patch is a partial update: nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	State       *string
	Priority    *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.State == nil && p.Priority == nil
}

func (p Patch) apply(t *Task) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.State != nil {
		t.State = *p.State
	}
	if p.Priority != nil {
		prio := *p.Priority
		t.Priority = &prio
	}
}

// Edit applies the patch to every listed task, and to all their descendants
// when recursive is set. All ids and the patch state are checked first, so
// a failing call changes nothing.
func (tr *Tree) Edit(ids []int, patch Patch, recursive bool) ([]int, error) {
	if err := tr.requireAll(ids); err != nil {
		return nil, err
	}
	if patch.State != nil && !tr.states.Contains(*patch.State) {
		return nil, fmt.Errorf("%w: %q", taskerrors.ErrUnknownState, *patch.State)
	}

	for _, id := range ids {
		for _, target := range tr.targets(id, recursive) {
			patch.apply(tr.nodes[target].task)
		}
	}
	return ids, nil
}

// Increment advances every listed task to the state following its current
// one. Ids are processed in order, so a repeated id advances twice. A task in
// the terminal state fails the whole call with ErrNoFurtherState before
// anything is changed.
func (tr *Tree) Increment(ids []int, recursive bool) ([]int, error) {
	if err := tr.requireAll(ids); err != nil {
		return nil, err
	}

	planned := make(map[int]string)
	current := func(id int) string {
		if s, ok := planned[id]; ok {
			return s
		}
		return tr.nodes[id].task.State
	}

	steps := make([]string, len(ids))
	for i, id := range ids {
		next, err := tr.states.Next(current(id))
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", id, err)
		}
		steps[i] = next.Name
		for _, target := range tr.targets(id, recursive) {
			planned[target] = next.Name
		}
	}

	for i, id := range ids {
		if _, err := tr.Edit([]int{id}, Patch{State: &steps[i]}, recursive); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Check moves every listed task to the terminal state.
func (tr *Tree) Check(ids []int, recursive bool) ([]int, error) {
	done := tr.states.Terminal().Name
	return tr.Edit(ids, Patch{State: &done}, recursive)
}

// Delete detaches every listed task together with its subtree. Ids that were
// already removed as the descendant of an earlier id in the list are skipped.
func (tr *Tree) Delete(ids []int) ([]int, error) {
	if err := tr.requireAll(ids); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if !tr.Has(id) {
			continue
		}
		tr.unlink(id)
		for _, sub := range tr.subtree(id) {
			delete(tr.nodes, sub)
		}
	}
	return ids, nil
}

// Move re-parents every listed task, with its subtree and id, as the last
// children of dest. Moving a task under itself or one of its descendants
// fails with ErrDescendantCycle.
func (tr *Tree) Move(ids []int, dest int) ([]int, error) {
	if !tr.Has(dest) {
		return nil, fmt.Errorf("%w: destination %d", taskerrors.ErrTaskNotFound, dest)
	}
	if err := tr.requireAll(ids); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == dest || tr.IsDescendant(dest, id) {
			return nil, fmt.Errorf("%w: %d into %d", taskerrors.ErrDescendantCycle, id, dest)
		}
	}

	for _, id := range ids {
		tr.unlink(id)
		tr.nodes[id].parent = dest
		tr.link(id, dest)
	}
	return ids, nil
}

// Search returns snapshots of every task whose attribute equals value.
func (tr *Tree) Search(attr Attribute, value any) []*Task {
	var out []*Task
	for _, t := range tr.All() {
		if t.matches(attr, value) {
			out = append(out, t)
		}
	}
	return out
}

func (tr *Tree) requireAll(ids []int) error {
	for _, id := range ids {
		if !tr.Has(id) {
			return fmt.Errorf("%w: %d", taskerrors.ErrTaskNotFound, id)
		}
	}
	return nil
}

// targets returns id alone, or id and its descendants pre-order.
func (tr *Tree) targets(id int, recursive bool) []int {
	if !recursive {
		return []int{id}
	}
	return tr.subtree(id)
}

// subtree returns id and all ids below it, pre-order.
func (tr *Tree) subtree(id int) []int {
	out := []int{id}
	for _, c := range tr.nodes[id].children {
		out = append(out, tr.subtree(c)...)
	}
	return out
}

func (tr *Tree) snapshot(id int) *Task {
	n := tr.nodes[id]
	t := n.task.shallow()
	for _, c := range n.children {
		t.Children = append(t.Children, tr.snapshot(c))
	}
	return t
}

func (tr *Tree) siblings(parent int) []int {
	if parent == NoID {
		return tr.roots
	}
	return tr.nodes[parent].children
}

func (tr *Tree) link(id, parent int) {
	if parent == NoID {
		tr.roots = append(tr.roots, id)
		return
	}
	p := tr.nodes[parent]
	p.children = append(p.children, id)
}

func (tr *Tree) unlink(id int) {
	parent := tr.nodes[id].parent
	if parent == NoID {
		tr.roots = remove(tr.roots, id)
		return
	}
	p := tr.nodes[parent]
	p.children = remove(p.children, id)
}

// firstFreeID returns the smallest id neither used nor reserved, and reserves it.
func (tr *Tree) firstFreeID(reserved map[int]bool) int {
	for id := 0; ; id++ {
		if !tr.Has(id) && !reserved[id] {
			reserved[id] = true
			return id
		}
	}
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func remove(ids []int, id int) []int {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i:i], ids[i+1:]...)
}
