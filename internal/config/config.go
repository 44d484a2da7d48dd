// Package config provides configuration management for the task CLI with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags that were explicitly set
//  2. Environment variables (TASK_* prefix, e.g. TASK_STORAGE_FILE)
//  3. Project config (.taskrc.yaml in the working directory or any parent)
//  4. Global config (~/.task/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
package config

import (
	"time"

	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// Config is the root configuration structure.
type Config struct {
	// Storage controls where tasks are persisted and how the file is accessed.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// States is the ordered state list written by 'task init'. Existing
	// storage files keep the states declared in their own metadata.
	States []task.State `yaml:"states" mapstructure:"states"`

	// Print holds the default rendering options.
	Print PrintConfig `yaml:"print" mapstructure:"print"`

	// Log controls the rotating log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// ProjectDir is the directory of the project config that was loaded,
	// empty when none was found.
	ProjectDir string `yaml:"-" mapstructure:"-"`
}

// StorageConfig contains settings for the storage file.
type StorageConfig struct {
	// File is the storage document path. Relative paths are resolved against
	// the project directory when a project config was found, the working
	// directory otherwise.
	// Default: "tasks.json"
	File string `yaml:"file" mapstructure:"file"`

	// LockTimeout is how long a mutation waits for the file lock.
	// Default: 5s
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`

	// ValidateSchema enables JSON schema validation when loading.
	// Default: true
	ValidateSchema bool `yaml:"validate_schema" mapstructure:"validate_schema"`
}

// PrintConfig contains the default rendering options.
type PrintConfig struct {
	// Depth is how many descendant levels are printed; -1 means unlimited.
	Depth int `yaml:"depth" mapstructure:"depth"`

	HideDescription bool `yaml:"hide_description" mapstructure:"hide_description"`
	HideTimestamp   bool `yaml:"hide_timestamp" mapstructure:"hide_timestamp"`
	HideSubCounter  bool `yaml:"hide_sub_counter" mapstructure:"hide_sub_counter"`
	HideTree        bool `yaml:"hide_tree" mapstructure:"hide_tree"`
	HideCompleted   bool `yaml:"hide_completed" mapstructure:"hide_completed"`

	// Group orders the board by "state", "priority" or "id"; empty keeps
	// insertion order.
	Group string `yaml:"group" mapstructure:"group"`

	// AfterAction prints the board after every mutating command.
	// Default: true
	AfterAction bool `yaml:"after_action" mapstructure:"after_action"`

	// NoColor disables colored output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// LogConfig contains settings for the log file.
type LogConfig struct {
	// File is the log file path; empty disables file logging.
	// Default: ~/.task/logs/task.log
	File string `yaml:"file" mapstructure:"file"`

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`
}
