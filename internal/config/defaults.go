package config

import (
	"github.com/spf13/viper"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// DefaultConfig returns a new Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			File:           constants.DefaultStorageFileName,
			LockTimeout:    constants.DefaultLockTimeout,
			ValidateSchema: true,
		},
		States: task.DefaultStates(),
		Print: PrintConfig{
			Depth:       -1,
			AfterAction: true,
		},
		Log: LogConfig{
			File:       DefaultLogPath(),
			MaxSizeMB:  constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("storage.file", d.Storage.File)
	v.SetDefault("storage.lock_timeout", d.Storage.LockTimeout.String())
	v.SetDefault("storage.validate_schema", d.Storage.ValidateSchema)

	states := make([]map[string]any, 0, len(d.States))
	for _, st := range d.States {
		states = append(states, map[string]any{
			"name":      st.Name,
			"hex_color": st.HexColor,
			"icon":      st.Icon,
		})
	}
	v.SetDefault("states", states)

	v.SetDefault("print.depth", d.Print.Depth)
	v.SetDefault("print.hide_description", false)
	v.SetDefault("print.hide_timestamp", false)
	v.SetDefault("print.hide_sub_counter", false)
	v.SetDefault("print.hide_tree", false)
	v.SetDefault("print.hide_completed", false)
	v.SetDefault("print.group", "")
	v.SetDefault("print.after_action", d.Print.AfterAction)
	v.SetDefault("print.no_color", false)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}
