// Package constants provides centralized constant values used throughout the
// task manager. This package is the single source of truth for all shared
// constants and MUST NOT import any other internal packages.
package constants

import "time"

// AppName is the binary name and the prefix used in user-facing hints.
const AppName = "task"

// EnvPrefix is the prefix for environment variable overrides (TASK_STORAGE_FILE, ...).
const EnvPrefix = "TASK"

// File names used for state persistence.
const (
	// DefaultStorageFileName is the storage document created by 'task init'
	// when no other path is configured.
	DefaultStorageFileName = "tasks.json"

	// LockFileSuffix is appended to the storage path to form its lock file.
	LockFileSuffix = ".lock"

	// TempFileSuffix is appended to the storage path for atomic writes.
	TempFileSuffix = ".tmp"
)

// Directory names used for organizing data.
const (
	// TaskHome is the hidden directory in the user's home directory that
	// holds the global config and logs.
	TaskHome = ".task"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File and directory permissions.
const (
	// FilePerm is used for storage documents; they are meant to be shared
	// and committed alongside a project.
	FilePerm = 0o644

	// LockFilePerm is used for lock files.
	LockFilePerm = 0o600

	// DirPerm is used for directories created by the tool.
	DirPerm = 0o750
)

// Timeouts for storage operations.
const (
	// DefaultLockTimeout is the maximum duration to wait for the storage lock.
	DefaultLockTimeout = 5 * time.Second

	// LockRetryInterval is the pause between lock acquisition attempts.
	LockRetryInterval = 50 * time.Millisecond
)

// Log rotation defaults.
const (
	// DefaultLogMaxSizeMB is the size at which the log file is rotated.
	DefaultLogMaxSizeMB = 5

	// DefaultLogMaxBackups is the number of rotated log files kept.
	DefaultLogMaxBackups = 3
)
