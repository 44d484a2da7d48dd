package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// Meta is the metadata block of the storage document.
type Meta struct {
	States []task.State `json:"states"`
}

// Document is the decoded storage file: the ordered states and the root tasks
// with their subtrees.
type Document struct {
	Meta  Meta         `json:"meta"`
	Tasks []*task.Task `json:"tasks"`
}

// record is the on-disk shape of a task. Older documents nest sub-tasks under
// "children", which is accepted on read and rewritten as "subtasks".
type record struct {
	ID          *int       `json:"id"`
	Name        string     `json:"name"`
	State       string     `json:"state"`
	Description string     `json:"description,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Subtasks    []*record  `json:"subtasks,omitempty"`
	Children    []*record  `json:"children,omitempty"`
}

type rawDocument struct {
	Meta  Meta      `json:"meta"`
	Tasks []*record `json:"tasks"`
}

func (r *record) toTask() (*task.Task, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: null task entry", taskerrors.ErrMalformedDocument)
	}
	t := task.New(r.Name, r.State)
	if r.ID != nil {
		t.ID = *r.ID
	}
	t.Description = r.Description
	t.Priority = r.Priority
	if r.Timestamp != nil {
		t.Timestamp = *r.Timestamp
	}
	for _, c := range append(r.Subtasks, r.Children...) {
		child, err := c.toTask()
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, child)
	}
	return t, nil
}

func fromTask(t *task.Task) *record {
	id := t.ID
	r := &record{
		ID:          &id,
		Name:        t.Name,
		State:       t.State,
		Description: t.Description,
		Priority:    t.Priority,
	}
	if !t.Timestamp.IsZero() {
		ts := t.Timestamp.UTC()
		r.Timestamp = &ts
	}
	for _, c := range t.Children {
		r.Subtasks = append(r.Subtasks, fromTask(c))
	}
	return r
}

// Encode serializes the document with two-space indentation and a trailing newline.
func Encode(doc Document) ([]byte, error) {
	raw := rawDocument{Meta: doc.Meta, Tasks: make([]*record, 0, len(doc.Tasks))}
	if raw.Meta.States == nil {
		raw.Meta.States = []task.State{}
	}
	for _, t := range doc.Tasks {
		raw.Tasks = append(raw.Tasks, fromTask(t))
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage document: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a storage document. With validate set, the document is first
// checked against the embedded JSON schema. Any failure wraps
// errors.ErrMalformedDocument.
func Decode(data []byte, validate bool) (Document, error) {
	if validate {
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return Document{}, fmt.Errorf("%w: %w", taskerrors.ErrMalformedDocument, err)
		}
		violations, err := validateSchema(generic)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %w", taskerrors.ErrMalformedDocument, err)
		}
		if len(violations) > 0 {
			msgs := make([]string, 0, len(violations))
			for _, v := range violations {
				msgs = append(msgs, v.String())
			}
			return Document{}, fmt.Errorf("%w: %s", taskerrors.ErrMalformedDocument, strings.Join(msgs, "; "))
		}
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", taskerrors.ErrMalformedDocument, err)
	}

	doc := Document{Meta: raw.Meta, Tasks: make([]*task.Task, 0, len(raw.Tasks))}
	for _, r := range raw.Tasks {
		t, err := r.toTask()
		if err != nil {
			return Document{}, err
		}
		doc.Tasks = append(doc.Tasks, t)
	}
	return doc, nil
}
