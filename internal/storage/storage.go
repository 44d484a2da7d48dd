// Package storage binds a task tree to its JSON document on disk.
//
// Every mutation is a single transaction: take the file lock, reload the
// document, mutate the tree, rewrite the whole document atomically, then
// release the lock.
// A failed write is reported as errors.ErrPersist; the in-memory tree is not
// rolled back.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/MikyStar/CLI-Manager-sub000/internal/clock"
	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/flock"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// Storage owns one task tree and the file it was loaded from.
// It is not safe for concurrent use.
type Storage struct {
	path        string
	tree        *task.Tree
	clock       clock.Clock
	lockTimeout time.Duration
	validate    bool
}

// Option configures a Storage.
type Option func(*Storage)

// WithClock sets the clock used to stamp new tasks.
func WithClock(c clock.Clock) Option {
	return func(s *Storage) {
		s.clock = c
	}
}

// WithLockTimeout sets how long a mutation waits for the file lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Storage) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithSchemaValidation toggles JSON schema validation on load.
func WithSchemaValidation(enabled bool) Option {
	return func(s *Storage) {
		s.validate = enabled
	}
}

func newStorage(path string, opts []Option) *Storage {
	s := &Storage{
		path:        path,
		clock:       clock.RealClock{},
		lockTimeout: constants.DefaultLockTimeout,
		validate:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and decodes the document at path and rebuilds its tree.
//
// A missing file yields errors.ErrFileNotFound and an unreadable or invalid
// document yields errors.ErrMalformedDocument. A task whose state is not
// declared fails with errors.ErrUnknownState, and ids used twice fail with
// errors.ErrDuplicateID.
func Load(ctx context.Context, path string, opts ...Option) (*Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := newStorage(path, opts)
	tree, err := s.read()
	if err != nil {
		return nil, err
	}
	s.tree = tree

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("tasks", tree.CountAll()).
		Msg("storage document loaded")

	return s, nil
}

// read decodes the bound file into a fresh tree. Documents that decode but
// cannot form a tree are malformed, except for undeclared states and
// duplicate ids which keep their own errors.
func (s *Storage) read() (*task.Tree, error) {
	data, err := os.ReadFile(s.path) //#nosec G304 -- path is the configured storage file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", taskerrors.ErrFileNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read storage file %s: %w", s.path, err)
	}

	doc, err := Decode(data, s.validate)
	if err != nil {
		return nil, taskerrors.Wrapf(err, "load %s", s.path)
	}

	tree, err := s.buildTree(doc.Meta.States, doc.Tasks)
	if err != nil {
		if !errors.Is(err, taskerrors.ErrUnknownState) &&
			!errors.Is(err, taskerrors.ErrDuplicateID) &&
			!errors.Is(err, taskerrors.ErrMalformedDocument) {
			err = fmt.Errorf("%w: %w", taskerrors.ErrMalformedDocument, err)
		}
		return nil, taskerrors.Wrapf(err, "load %s", s.path)
	}
	return tree, nil
}

// Create writes an empty document declaring states at path and returns it
// loaded. An occupied path yields errors.ErrFileAlreadyExists.
func Create(ctx context.Context, path string, states []task.State, opts ...Option) (*Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := newStorage(path, opts)
	tree, err := s.buildTree(states, nil)
	if err != nil {
		return nil, err
	}
	s.tree = tree

	if err := s.writeNew(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("storage document created")
	return s, nil
}

func (s *Storage) buildTree(states []task.State, roots []*task.Task) (*task.Tree, error) {
	tree, err := task.NewTree(states, task.WithClock(s.clock))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", taskerrors.ErrMalformedDocument, err)
	}
	assignMissingIDs(roots)
	for _, t := range roots {
		if _, err := tree.Add(t, task.NoID); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// assignMissingIDs gives every task without an id the smallest id not
// declared anywhere in the document, so explicit ids later in the document
// never collide with allocated ones.
func assignMissingIDs(roots []*task.Task) {
	used := make(map[int]bool)
	var missing []*task.Task
	for _, r := range roots {
		for _, t := range r.Flatten() {
			if t.ID == task.NoID {
				missing = append(missing, t)
				continue
			}
			used[t.ID] = true
		}
	}

	next := 0
	for _, t := range missing {
		for used[next] {
			next++
		}
		t.ID = next
		used[next] = true
	}
}

// Path returns the storage file path.
func (s *Storage) Path() string {
	return s.path
}

// Tree returns the in-memory tree. Mutating it directly bypasses persistence;
// use the Storage methods for changes that must reach the file.
func (s *Storage) Tree() *task.Tree {
	return s.tree
}

// States returns the declared states in order.
func (s *Storage) States() task.States {
	return s.tree.States()
}

// Document returns a snapshot of the document as it would be persisted.
func (s *Storage) Document() Document {
	return Document{
		Meta:  Meta{States: s.tree.States()},
		Tasks: s.tree.Roots(),
	}
}

// Add inserts t under parent (task.NoID for a root) and persists the document.
func (s *Storage) Add(ctx context.Context, t *task.Task, parent int) (int, error) {
	ids, err := s.mutate(ctx, "add", func(tr *task.Tree) ([]int, error) {
		id, err := tr.Add(t, parent)
		if err != nil {
			return nil, err
		}
		return []int{id}, nil
	})
	if len(ids) == 0 {
		return task.NoID, err
	}
	return ids[0], err
}

// Edit applies patch to ids (and their descendants when recursive) and persists.
func (s *Storage) Edit(ctx context.Context, ids []int, patch task.Patch, recursive bool) ([]int, error) {
	return s.mutate(ctx, "edit", func(tr *task.Tree) ([]int, error) {
		return tr.Edit(ids, patch, recursive)
	})
}

// Increment advances ids to their next state and persists.
func (s *Storage) Increment(ctx context.Context, ids []int, recursive bool) ([]int, error) {
	return s.mutate(ctx, "increment", func(tr *task.Tree) ([]int, error) {
		return tr.Increment(ids, recursive)
	})
}

// Check moves ids to the terminal state and persists.
func (s *Storage) Check(ctx context.Context, ids []int, recursive bool) ([]int, error) {
	return s.mutate(ctx, "check", func(tr *task.Tree) ([]int, error) {
		return tr.Check(ids, recursive)
	})
}

// Delete removes ids with their subtrees and persists.
func (s *Storage) Delete(ctx context.Context, ids []int) ([]int, error) {
	return s.mutate(ctx, "delete", func(tr *task.Tree) ([]int, error) {
		return tr.Delete(ids)
	})
}

// Move re-parents ids under dest and persists.
func (s *Storage) Move(ctx context.Context, ids []int, dest int) ([]int, error) {
	return s.mutate(ctx, "move", func(tr *task.Tree) ([]int, error) {
		return tr.Move(ids, dest)
	})
}

// Extract writes the subtrees rooted at ids, as roots, to a new document at
// dest declaring the same states. The source is left untouched. An id nested
// under another listed id is carried by its ancestor and not duplicated.
func (s *Storage) Extract(ctx context.Context, dest string, ids []int) (*Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var roots []*task.Task
	for _, id := range ids {
		t, err := s.tree.Get(id)
		if err != nil {
			return nil, err
		}
		if s.coveredByOther(id, ids) {
			continue
		}
		roots = append(roots, t)
	}

	out := newStorage(dest, nil)
	out.clock = s.clock
	out.lockTimeout = s.lockTimeout
	out.validate = s.validate

	tree, err := out.buildTree(s.tree.States(), roots)
	if err != nil {
		return nil, err
	}
	out.tree = tree

	if err := out.writeNew(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Str("dest", dest).
		Ints("ids", ids).
		Msg("tasks extracted")

	return out, nil
}

func (s *Storage) coveredByOther(id int, ids []int) bool {
	for _, other := range ids {
		if other != id && s.tree.IsDescendant(id, other) {
			return true
		}
	}
	return false
}

// mutate runs fn inside the lock and persists the whole document afterward.
func (s *Storage) mutate(ctx context.Context, op string, fn func(*task.Tree) ([]int, error)) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)

	lock, err := flock.Acquire(ctx, s.path+constants.LockFileSuffix, s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			logger.Warn().Err(rerr).Str("path", s.path).Msg("failed to release storage lock")
		}
	}()

	// Another process may have written since this handle was loaded.
	tree, err := s.read()
	if err != nil {
		return nil, err
	}
	s.tree = tree

	ids, err := fn(s.tree)
	if err != nil {
		return nil, err
	}

	if err := s.persist(); err != nil {
		return ids, err
	}

	logger.Debug().
		Str("path", s.path).
		Str("op", op).
		Ints("ids", ids).
		Msg("storage document persisted")

	return ids, nil
}

func (s *Storage) persist() error {
	data, err := Encode(s.Document())
	if err != nil {
		return fmt.Errorf("%w: %w", taskerrors.ErrPersist, err)
	}
	if err := atomicWrite(s.path, data); err != nil {
		return fmt.Errorf("%w: %s: %w", taskerrors.ErrPersist, s.path, err)
	}
	return nil
}

// writeNew creates the storage file, refusing to replace an existing one.
func (s *Storage) writeNew() error {
	data, err := Encode(s.Document())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPerm); err != nil {
			return fmt.Errorf("%w: %s: %w", taskerrors.ErrPersist, s.path, err)
		}
	}

	if err := createSafe(s.path, data); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", taskerrors.ErrFileAlreadyExists, s.path)
		}
		return fmt.Errorf("%w: %s: %w", taskerrors.ErrPersist, s.path, err)
	}
	return nil
}
