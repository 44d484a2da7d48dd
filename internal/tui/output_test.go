package tui_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/tui"
)

func TestNewOutput_SelectsImplementation(t *testing.T) {
	var buf bytes.Buffer

	_, ok := tui.NewOutput(&buf, tui.FormatJSON).(*tui.JSONOutput)
	assert.True(t, ok)

	_, ok = tui.NewOutput(&buf, tui.FormatText).(*tui.TTYOutput)
	assert.True(t, ok)

	_, ok = tui.NewOutput(&buf, "").(*tui.TTYOutput)
	assert.True(t, ok)
}

func TestTTYOutput_Messages(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := tui.NewTTYOutput(&buf)

	out.Success("Added task 3")
	out.Warning("careful")
	out.Info("hello")
	out.Lines([]string{"line one", "line two"})

	assert.Equal(t, "✓ Added task 3\n⚠ careful\nhello\nline one\nline two\n", buf.String())
}

func TestTTYOutput_ErrorWithAction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	out := tui.NewTTYOutput(&buf)

	out.Error(fmt.Errorf("%w: /tmp/x.json", taskerrors.ErrFileNotFound))

	s := buf.String()
	assert.Contains(t, s, "✗ No task storage file was found. (storage file not found: /tmp/x.json)")
	assert.Contains(t, s, "▸ Try: Run 'task init'")
}

func TestTTYOutput_ErrorUnknown(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	tui.NewTTYOutput(&buf).Error(errors.New("boom"))

	assert.Equal(t, "✗ boom\n", buf.String())
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	out := tui.NewJSONOutput(&buf)

	out.Success("ignored")
	out.Info("ignored")
	out.Warning("ignored")
	out.Lines([]string{"ignored"})
	assert.Empty(t, buf.String())

	require.NoError(t, out.JSON(map[string]int{"id": 3}))
	assert.JSONEq(t, `{"id": 3}`, buf.String())

	buf.Reset()
	out.Error(fmt.Errorf("%w: 9", taskerrors.ErrTaskNotFound))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got["type"])
	assert.Equal(t, "Task not found.", got["message"])
	assert.Equal(t, "task not found: 9", got["details"])
}
