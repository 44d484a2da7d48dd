package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikyStar/CLI-Manager-sub000/internal/clock"
	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/storage"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func chainStates() []task.State {
	return []task.State{
		{Name: "todo", HexColor: "#B3B3B3", Icon: "☐"},
		{Name: "doing", HexColor: "#E5C07B", Icon: "✹"},
		{Name: "done", HexColor: "#98C379", Icon: "✔"},
	}
}

func newStorage(t *testing.T) (*storage.Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	s, err := storage.Create(context.Background(), path, chainStates(), storage.WithClock(clock.FixedClock{T: fixedNow}))
	require.NoError(t, err)
	return s, path
}

func reload(t *testing.T, path string) *storage.Storage {
	t.Helper()
	s, err := storage.Load(context.Background(), path)
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCreate_WritesEmptyDocument(t *testing.T) {
	_, path := newStorage(t)

	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(data), `"states": [`)
	assert.Contains(t, string(data), `"tasks": []`)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	s := reload(t, path)
	assert.Equal(t, 0, s.Tree().CountAll())
	assert.Equal(t, []string{"todo", "doing", "done"}, s.States().Names())
}

func TestCreate_RefusesExistingFile(t *testing.T) {
	_, path := newStorage(t)

	_, err := storage.Create(context.Background(), path, chainStates())
	require.ErrorIs(t, err, taskerrors.ErrFileAlreadyExists)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := storage.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, taskerrors.ErrFileNotFound)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		validate bool
		wantErr  error
	}{
		{
			name:     "invalid json",
			content:  `{"meta": `,
			validate: true,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "invalid json without schema",
			content:  `not json`,
			validate: false,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "schema violation: missing task name",
			content:  `{"meta":{"states":[{"name":"todo"}]},"tasks":[{"id":0,"state":"todo"}]}`,
			validate: true,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "schema violation: no states",
			content:  `{"meta":{"states":[]},"tasks":[]}`,
			validate: true,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "no states without schema",
			content:  `{"meta":{"states":[]},"tasks":[]}`,
			validate: false,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "unknown state",
			content:  `{"meta":{"states":[{"name":"todo"}]},"tasks":[{"id":0,"name":"a","state":"blocked"}]}`,
			validate: true,
			wantErr:  taskerrors.ErrUnknownState,
		},
		{
			name: "duplicate ids across depths",
			content: `{"meta":{"states":[{"name":"todo"}]},"tasks":[
				{"id":0,"name":"a","state":"todo","subtasks":[{"id":1,"name":"b","state":"todo"}]},
				{"id":1,"name":"c","state":"todo"}]}`,
			validate: true,
			wantErr:  taskerrors.ErrDuplicateID,
		},
		{
			name:     "negative id without schema",
			content:  `{"meta":{"states":[{"name":"todo"}]},"tasks":[{"id":-5,"name":"a","state":"todo"}]}`,
			validate: false,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "schema violation: timestamp is not a date-time",
			content:  `{"meta":{"states":[{"name":"todo"}]},"tasks":[{"id":0,"name":"a","state":"todo","timestamp":"last tuesday"}]}`,
			validate: true,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
		{
			name:     "null nested task without schema",
			content:  `{"meta":{"states":[{"name":"todo"}]},"tasks":[{"id":0,"name":"a","state":"todo","subtasks":[null]}]}`,
			validate: false,
			wantErr:  taskerrors.ErrMalformedDocument,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.content)
			_, err := storage.Load(context.Background(), path, storage.WithSchemaValidation(tc.validate))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoad_AcceptsChildrenAlias(t *testing.T) {
	path := writeFile(t, `{
		"meta": {"states": [{"name": "todo"}, {"name": "done"}]},
		"tasks": [{"id": 3, "name": "a", "state": "todo", "timestamp": "2023-05-01T10:00:00Z",
			"children": [{"id": 7, "name": "b", "state": "done"}]}]
	}`)

	s, err := storage.Load(context.Background(), path, storage.WithClock(clock.FixedClock{T: fixedNow}))
	require.NoError(t, err)

	a, err := s.Tree().Get(3)
	require.NoError(t, err)
	require.Len(t, a.Children, 1)
	assert.Equal(t, 7, a.Children[0].ID)
	assert.Equal(t, time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC), a.Timestamp)
	assert.Equal(t, fixedNow, a.Children[0].Timestamp, "missing timestamps are stamped on load")

	// Persisting rewrites the alias under "subtasks".
	_, err = s.Check(context.Background(), []int{3}, false)
	require.NoError(t, err)
	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subtasks"`)
	assert.NotContains(t, string(data), `"children"`)
}

func TestLoad_MissingIDsAvoidDeclaredOnes(t *testing.T) {
	path := writeFile(t, `{
		"meta": {"states": [{"name": "todo"}]},
		"tasks": [
			{"name": "a", "state": "todo"},
			{"id": 0, "name": "b", "state": "todo", "subtasks": [{"name": "c", "state": "todo"}]}
		]
	}`)

	s, err := storage.Load(context.Background(), path, storage.WithSchemaValidation(false))
	require.NoError(t, err)

	tr := s.Tree()
	assert.Equal(t, []int{1, 0}, tr.RootIDs())
	b, err := tr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "b", b.Name)
	require.Len(t, b.Children, 1)
	assert.Equal(t, 2, b.Children[0].ID)
}

func TestRoundTrip(t *testing.T) {
	s, path := newStorage(t)
	ctx := context.Background()

	root, err := s.Add(ctx, task.New("root", "todo", task.WithDescription("top"), task.WithPriority(2)), task.NoID)
	require.NoError(t, err)
	_, err = s.Add(ctx, task.New("child", "doing"), root)
	require.NoError(t, err)
	_, err = s.Add(ctx, task.New("other", "done"), task.NoID)
	require.NoError(t, err)

	loaded := reload(t, path)
	assert.Equal(t, s.Document(), loaded.Document())
	assert.Equal(t, s.Tree().RootIDs(), loaded.Tree().RootIDs())
}

func TestMutationsPersistImmediately(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, task.New(name, "todo"), task.NoID)
		require.NoError(t, err)
	}

	name := "renamed"
	_, err := s.Edit(ctx, []int{0}, task.Patch{Name: &name}, false)
	require.NoError(t, err)
	got, err := reload(t, path).Tree().Get(0)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	_, err = s.Increment(ctx, []int{1}, false)
	require.NoError(t, err)
	got, err = reload(t, path).Tree().Get(1)
	require.NoError(t, err)
	assert.Equal(t, "doing", got.State)

	_, err = s.Move(ctx, []int{2}, 0)
	require.NoError(t, err)
	assert.True(t, reload(t, path).Tree().IsDescendant(2, 0))

	_, err = s.Delete(ctx, []int{0})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, reload(t, path).Tree().RootIDs())

	_, err = s.Check(ctx, []int{1}, false)
	require.NoError(t, err)
	got, err = reload(t, path).Tree().Get(1)
	require.NoError(t, err)
	assert.Equal(t, "done", got.State)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not be left behind")
}

func TestIDReuseAfterDeleteSurvivesReload(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, task.New(name, "todo"), task.NoID)
		require.NoError(t, err)
	}
	_, err := s.Delete(ctx, []int{1})
	require.NoError(t, err)

	s = reload(t, path)
	id, err := s.Add(ctx, task.New("d", "todo"), task.NoID)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestMutation_ReloadsChangesFromOtherHandles(t *testing.T) {
	ctx := context.Background()
	_, path := newStorage(t)

	first := reload(t, path)
	second := reload(t, path)

	id, err := first.Add(ctx, task.New("from first", "todo"), task.NoID)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	id, err = second.Add(ctx, task.New("from second", "todo"), task.NoID)
	require.NoError(t, err)
	assert.Equal(t, 1, id, "the second handle sees the id taken by the first")

	tr := reload(t, path).Tree()
	require.Equal(t, 2, tr.CountAll())
	a, err := tr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "from first", a.Name)
	b, err := tr.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "from second", b.Name)
	assert.Equal(t, 2, second.Tree().CountAll())
}

func TestFailedMutationDoesNotTouchFile(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)
	_, err := s.Add(ctx, task.New("a", "done"), task.NoID)
	require.NoError(t, err)

	before, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)

	_, err = s.Increment(ctx, []int{0}, false)
	require.ErrorIs(t, err, taskerrors.ErrNoFurtherState)

	after, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPersistFailureWrapsErrPersist(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)

	// A directory squatting on the temp path makes the atomic write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o750))

	_, err := s.Add(ctx, task.New("a", "todo"), task.NoID)
	require.ErrorIs(t, err, taskerrors.ErrPersist)

	// No rollback: the in-memory tree keeps the change.
	assert.True(t, s.Tree().Has(0))
}

func TestCanceledContext(t *testing.T) {
	s, path := newStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.Load(ctx, path)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Add(ctx, task.New("a", "todo"), task.NoID)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Tree().Has(0))
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)

	root, err := s.Add(ctx, task.New("a", "todo", task.WithChildren(task.New("b", "doing"))), task.NoID)
	require.NoError(t, err)
	_, err = s.Add(ctx, task.New("c", "todo"), task.NoID)
	require.NoError(t, err)

	before, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "nested", "extract.json")
	out, err := s.Extract(ctx, dest, []int{root, 1})
	require.NoError(t, err)

	assert.Equal(t, []int{0}, out.Tree().RootIDs(), "a descendant listed with its ancestor is not duplicated")
	assert.Equal(t, 2, out.Tree().CountAll())
	assert.Equal(t, s.States(), out.States())

	extracted := reload(t, dest)
	b, err := extracted.Tree().Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", b.Name)

	after, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, before, after, "source document must be left untouched")
	assert.Equal(t, 3, s.Tree().CountAll())
}

func TestExtract_Errors(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)
	_, err := s.Add(ctx, task.New("a", "todo"), task.NoID)
	require.NoError(t, err)

	_, err = s.Extract(ctx, path, []int{0})
	require.ErrorIs(t, err, taskerrors.ErrFileAlreadyExists)

	dest := filepath.Join(t.TempDir(), "out.json")
	_, err = s.Extract(ctx, dest, []int{42})
	require.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
