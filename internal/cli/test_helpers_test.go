package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/storage"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// This file contains test utilities and mocks for testing CLI functions.
// These helpers are only available in test files (*_test.go).

// mockFormRunner is a test helper that implements the formRunner interface.
// Use this to mock Charm Huh forms in tests.
type mockFormRunner struct {
	// runErr is the error to return from Run()
	runErr error

	// onRun is an optional callback executed when Run() is called
	// Use this to simulate user input by modifying form values
	onRun func()
}

// Run executes the mock form, optionally calling the onRun callback.
func (m *mockFormRunner) Run() error {
	if m.onRun != nil {
		m.onRun()
	}
	return m.runErr
}

// mockTerminalCheckFunc returns a function that can replace terminalCheck in tests.
// The returned cleanup function should be deferred to restore the original.
func mockTerminalCheckFunc(isTerminal bool) func() {
	original := terminalCheck
	terminalCheck = func() bool { return isTerminal }
	return func() { terminalCheck = original }
}

// mockDeleteConfirm answers the delete confirmation with confirm, or fails
// with runErr.
func mockDeleteConfirm(t *testing.T, confirm bool, runErr error) {
	t.Helper()
	original := createDeleteConfirmForm
	createDeleteConfirmForm = func(_ []string, _ int, value *bool) formRunner {
		return &mockFormRunner{runErr: runErr, onRun: func() { *value = confirm }}
	}
	t.Cleanup(func() { createDeleteConfirmForm = original })
}

// mockNameInput answers the name prompt with name.
func mockNameInput(t *testing.T, name string) {
	t.Helper()
	original := createNameInputForm
	createNameInputForm = func(value *string) formRunner {
		return &mockFormRunner{onRun: func() { *value = name }}
	}
	t.Cleanup(func() { createNameInputForm = original })
}

// testEnv isolates a CLI run: a temporary working directory and HOME, no
// colors, and no interactive terminal unless a test mocks one.
type testEnv struct {
	dir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("NO_COLOR", "1")
	t.Chdir(dir)

	restore := mockTerminalCheckFunc(false)
	t.Cleanup(restore)

	return testEnv{dir: dir}
}

func (e testEnv) storageFile() string {
	return filepath.Join(e.dir, constants.DefaultStorageFileName)
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// lines returns stdout split into lines, without the trailing newline.
func (r cliResult) lines() []string {
	return strings.Split(strings.TrimSuffix(r.stdout, "\n"), "\n")
}

// run executes the CLI as main would, including error printing.
func (e testEnv) run(t *testing.T, args ...string) cliResult {
	t.Helper()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := execute(context.Background(), cmd, flags)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// mustRun executes the CLI and fails the test on error.
func (e testEnv) mustRun(t *testing.T, args ...string) cliResult {
	t.Helper()
	res := e.run(t, args...)
	require.NoError(t, res.err, "task %s\nstderr: %s", strings.Join(args, " "), res.stderr)
	return res
}

// tree loads the storage file from disk.
func (e testEnv) tree(t *testing.T) *task.Tree {
	t.Helper()
	s, err := storage.Load(context.Background(), e.storageFile())
	require.NoError(t, err)
	return s.Tree()
}

func (e testEnv) get(t *testing.T, id int) *task.Task {
	t.Helper()
	got, err := e.tree(t).Get(id)
	require.NoError(t, err)
	return got
}

// seed initializes storage with:
//
//	0 Write docs !1
//	└── 1 Intro
//	2 Release
func (e testEnv) seed(t *testing.T) {
	t.Helper()
	e.mustRun(t, "init")
	e.mustRun(t, "add", "Write", "docs", "-p", "1")
	e.mustRun(t, "add", "Intro", "--parent", "0")
	e.mustRun(t, "add", "Release")
}
