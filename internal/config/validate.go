package config

import (
	"regexp"

	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - storage.lock_timeout must be positive
//   - states must be a non-empty list of uniquely named states
//   - state colors must be #RGB or #RRGGBB hex values
//   - print.depth must be -1 (unlimited) or more
//   - print.group must be empty, state, priority or id
//   - log sizes must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.Storage.LockTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"storage.lock_timeout must be positive, got %s", cfg.Storage.LockTimeout)
	}

	if err := validateStates(cfg.States); err != nil {
		return err
	}

	if err := validatePrintConfig(&cfg.Print); err != nil {
		return err
	}

	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"log.max_size_mb and log.max_backups must not be negative, got %d and %d",
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}

	return nil
}

func validateStates(states []task.State) error {
	if err := task.States(states).Validate(); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalid, "states: %v", err)
	}

	for _, st := range states {
		if st.HexColor != "" && !hexColorPattern.MatchString(st.HexColor) {
			return errors.Wrapf(errors.ErrConfigInvalid,
				"states: %q has invalid hex_color %q", st.Name, st.HexColor)
		}
	}
	return nil
}

func validatePrintConfig(cfg *PrintConfig) error {
	if cfg.Depth < -1 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"print.depth must be -1 or more, got %d", cfg.Depth)
	}

	if _, err := task.ParseGroupBy(cfg.Group); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalid, "print.group: %v", err)
	}
	return nil
}
