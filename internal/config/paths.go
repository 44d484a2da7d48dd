package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// GlobalConfigDir returns the path to the global configuration directory.
// This is typically ~/.task on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.TaskHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// DefaultLogPath returns ~/.task/logs/task.log, or an empty string (file
// logging disabled) when the home directory is unknown.
func DefaultLogPath() string {
	dir, err := GlobalConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName)
}

// FindProjectConfig looks for the project config file in start and then in
// each parent directory.
func FindProjectConfig(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, constants.ProjectConfigName)
		if fileExists(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// StoragePath resolves the configured storage file against the project
// directory, or workDir when no project config was loaded.
func (c *Config) StoragePath(workDir string) string {
	file := c.Storage.File
	if file == "" {
		file = constants.DefaultStorageFileName
	}
	if filepath.IsAbs(file) {
		return file
	}
	base := c.ProjectDir
	if base == "" {
		base = workDir
	}
	return filepath.Join(base, file)
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
