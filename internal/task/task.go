// Package task implements the in-memory task tree: tasks, their ordered
// states, and the arena-backed Tree that owns every structural mutation.
package task

import "time"

// NoID marks a task that has not been assigned an id yet, and a missing parent.
const NoID = -1

// Task is a single node of the forest.
//
// Tasks returned by a Tree are snapshots: mutating them (or their Children)
// does not affect the tree. Children are materialized from the tree's arena.
type Task struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	State       string    `json:"state"`
	Description string    `json:"description,omitempty"`
	Priority    *int      `json:"priority,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Children    []*Task   `json:"subtasks,omitempty"`
}

// Option configures a Task built with New.
type Option func(*Task)

// WithDescription sets the task description.
func WithDescription(desc string) Option {
	return func(t *Task) {
		t.Description = desc
	}
}

// WithPriority sets the task priority.
func WithPriority(p int) Option {
	return func(t *Task) {
		t.Priority = &p
	}
}

// WithID requests an explicit id. Adding the task fails with ErrDuplicateID
// if the id is already used.
func WithID(id int) Option {
	return func(t *Task) {
		t.ID = id
	}
}

// WithChildren attaches sub-tasks that are inserted together with the task.
func WithChildren(children ...*Task) Option {
	return func(t *Task) {
		t.Children = append(t.Children, children...)
	}
}

// New creates a task with no id and no timestamp; both are assigned when
// the task is added to a Tree.
func New(name, state string, opts ...Option) *Task {
	t := &Task{
		ID:    NoID,
		Name:  name,
		State: state,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsLeaf reports whether the task has no children.
func (t *Task) IsLeaf() bool {
	return len(t.Children) == 0
}

// Flatten returns the task and all its descendants in pre-order.
func (t *Task) Flatten() []*Task {
	out := []*Task{t}
	for _, c := range t.Children {
		out = append(out, c.Flatten()...)
	}
	return out
}

// Clone returns a deep copy of the task and its subtree.
func (t *Task) Clone() *Task {
	c := t.shallow()
	for _, child := range t.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// shallow copies the task attributes without children.
func (t *Task) shallow() *Task {
	c := *t
	if t.Priority != nil {
		p := *t.Priority
		c.Priority = &p
	}
	c.Children = nil
	return &c
}
