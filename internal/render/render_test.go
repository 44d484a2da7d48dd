package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikyStar/CLI-Manager-sub000/internal/clock"
	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/render"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// sample builds:
//
//	0 a (todo, "details")
//	├── 1 b (done)
//	│   └── 2 c (todo)
//	└── 3 d (wip)
//	4 e (todo)
func sample(t *testing.T) *task.Tree {
	t.Helper()
	tr, err := task.NewTree(task.DefaultStates(), task.WithClock(clock.FixedClock{T: fixedNow}))
	require.NoError(t, err)

	_, err = tr.Add(task.New("a", "todo", task.WithDescription("details"), task.WithChildren(
		task.New("b", "done", task.WithChildren(task.New("c", "todo"))),
		task.New("d", "wip"),
	)), task.NoID)
	require.NoError(t, err)
	_, err = tr.Add(task.New("e", "todo"), task.NoID)
	require.NoError(t, err)
	return tr
}

func plain() render.Options {
	opts := render.DefaultOptions()
	opts.NoColor = true
	opts.HideTimestamp = true
	opts.Location = time.UTC
	return opts
}

func TestForest(t *testing.T) {
	lines := render.Forest(sample(t), plain())

	assert.Equal(t, []string{
		"0. ☐ a (1/3)",
		"    details",
		"├── 1. ✔ b (0/1)",
		"│   └── 2. ☐ c",
		"└── 3. ✹ d",
		"4. ☐ e",
		"",
		"1/5 done (20%)",
		"☐ todo: 3   ✹ wip: 1   ✔ done: 1",
	}, lines)
}

func TestForest_Empty(t *testing.T) {
	tr, err := task.NewTree(task.DefaultStates())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"0/0 done (0%)",
		"☐ todo: 0   ✹ wip: 0   ✔ done: 0",
	}, render.Forest(tr, plain()))
}

func TestPrinter_Options(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*render.Options)
		want   []string
	}{
		{
			name:   "depth zero prints the task alone",
			modify: func(o *render.Options) { o.Depth = 0 },
			want:   []string{"0. ☐ a (1/3)", "    details"},
		},
		{
			name:   "depth one stops above grandchildren",
			modify: func(o *render.Options) { o.Depth = 1 },
			want: []string{
				"0. ☐ a (1/3)",
				"    details",
				"├── 1. ✔ b (0/1)",
				"└── 3. ✹ d",
			},
		},
		{
			name:   "hide tree indents instead",
			modify: func(o *render.Options) { o.HideTree = true },
			want: []string{
				"0. ☐ a (1/3)",
				"    details",
				"    1. ✔ b (0/1)",
				"        2. ☐ c",
				"    3. ✹ d",
			},
		},
		{
			name:   "hide completed drops the subtree",
			modify: func(o *render.Options) { o.HideCompleted = true },
			want: []string{
				"0. ☐ a (1/3)",
				"    details",
				"└── 3. ✹ d",
			},
		},
		{
			name: "hide description and sub counter",
			modify: func(o *render.Options) {
				o.HideDescription = true
				o.HideSubCounter = true
				o.Depth = 1
			},
			want: []string{
				"0. ☐ a",
				"├── 1. ✔ b",
				"└── 3. ✹ d",
			},
		},
		{
			name: "timestamps",
			modify: func(o *render.Options) {
				o.HideTimestamp = false
				o.Depth = 0
				o.HideDescription = true
			},
			want: []string{"0. ☐ a (1/3)  2024-03-01 09:30"},
		},
		{
			name: "grouping leaves children in tree order",
			modify: func(o *render.Options) {
				o.Group = task.GroupState
				o.HideDescription = true
				o.Depth = 1
			},
			want: []string{
				"0. ☐ a (1/3)",
				"├── 1. ✔ b (0/1)",
				"└── 3. ✹ d",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := sample(t)
			opts := plain()
			tc.modify(&opts)

			root, err := tr.Get(0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, render.NewPrinter(tr.States(), opts).Task(root))
		})
	}
}

func TestPrinter_PriorityAndMissingIcon(t *testing.T) {
	states := task.States{{Name: "open"}, {Name: "closed"}}
	tk := task.New("ship", "open", task.WithID(7), task.WithPriority(2))

	lines := render.NewPrinter(states, plain()).Task(tk)
	assert.Equal(t, []string{"7. [open] ship !2"}, lines)
}

func TestPrinter_HiddenRoot(t *testing.T) {
	opts := plain()
	opts.HideCompleted = true
	tk := task.New("x", "done", task.WithID(1))

	assert.Empty(t, render.NewPrinter(task.DefaultStates(), opts).Task(tk))
}

func TestGroupedForest_LeavesTreeOrderIntact(t *testing.T) {
	tr := sample(t)
	opts := plain()
	opts.Group = task.GroupState

	render.Forest(tr, opts)

	assert.Equal(t, []int{0, 4}, tr.RootIDs())
	a, err := tr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Children[0].ID)
	assert.Equal(t, 3, a.Children[1].ID)
}

func TestGroupedForest_OnlyReordersRoots(t *testing.T) {
	tr := sample(t)
	_, err := tr.Add(task.New("f", "wip", task.WithChildren(
		task.New("g", "done"),
		task.New("h", "todo"),
	)), 1)
	require.NoError(t, err)

	for _, by := range []task.GroupBy{task.GroupNone, task.GroupState, task.GroupPriority, task.GroupID} {
		t.Run(string(by), func(t *testing.T) {
			opts := plain()
			opts.HideDescription = true
			opts.HideSubCounter = true
			opts.Group = by

			lines := render.Forest(tr, opts)
			require.GreaterOrEqual(t, len(lines), 8)
			assert.Equal(t, []string{
				"0. ☐ a",
				"├── 1. ✔ b",
				"│   ├── 2. ☐ c",
				"│   └── 5. ✹ f",
				"│       ├── 6. ✔ g",
				"│       └── 7. ☐ h",
				"└── 3. ✹ d",
				"4. ☐ e",
			}, lines[:8])
		})
	}
}

func TestSubset(t *testing.T) {
	tr := sample(t)

	t.Run("single id has no stats", func(t *testing.T) {
		lines, err := render.Subset(tr, []int{3}, plain())
		require.NoError(t, err)
		assert.Equal(t, []string{"3. ✹ d"}, lines)
	})

	t.Run("several ids are separated and summarized", func(t *testing.T) {
		lines, err := render.Subset(tr, []int{3, 4}, plain())
		require.NoError(t, err)

		require.Len(t, lines, 6)
		assert.Equal(t, "3. ✹ d", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "─"))
		assert.Equal(t, "4. ☐ e", lines[2])
		assert.Empty(t, lines[3])
		assert.Equal(t, "0/2 done (0%)", lines[4])
		assert.Equal(t, "☐ todo: 1   ✹ wip: 1   ✔ done: 0", lines[5])
	})

	t.Run("stats cover descendants", func(t *testing.T) {
		lines, err := render.Subset(tr, []int{1, 4}, plain())
		require.NoError(t, err)
		assert.Contains(t, lines, "1/3 done (33%)")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := render.Subset(tr, []int{3, 99}, plain())
		require.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestBoard(t *testing.T) {
	lines := render.Board(sample(t), plain())

	require.Len(t, lines, 13)
	assert.Equal(t, "☐ Todo (3)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "─"))
	assert.Equal(t, []string{"  0. a", "  2. c", "  4. e"}, lines[2:5])
	assert.Empty(t, lines[5])
	assert.Equal(t, "✹ Wip (1)", lines[6])
	assert.Equal(t, "  3. d", lines[8])
	assert.Equal(t, "✔ Done (1)", lines[10])
	assert.Equal(t, "  1. b", lines[12])
}

func TestBoard_HideCompleted(t *testing.T) {
	opts := plain()
	opts.HideCompleted = true

	lines := render.Board(sample(t), opts)
	for _, l := range lines {
		assert.NotContains(t, l, "Done")
	}
}
