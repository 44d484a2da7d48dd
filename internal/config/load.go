package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// flagKeys maps CLI flag names to configuration keys. Only flags that were
// explicitly set override lower layers.
//
//nolint:gochecknoglobals // static lookup table
var flagKeys = map[string]string{
	"file":             "storage.file",
	"lock-timeout":     "storage.lock_timeout",
	"depth":            "print.depth",
	"hide-description": "print.hide_description",
	"hide-timestamp":   "print.hide_timestamp",
	"hide-sub-counter": "print.hide_sub_counter",
	"hide-tree":        "print.hide_tree",
	"hide-completed":   "print.hide_completed",
	"group":            "print.group",
	"no-color":         "print.no_color",
}

// newViperInstance creates a Viper instance with the TASK_ environment
// prefix, key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from every source with proper precedence. The
// project config is searched from workDir upward. flags may be nil.
//
// Missing config files are not an error.
func Load(ctx context.Context, workDir string, flags *pflag.FlagSet) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		globalPath = ""
	}

	projectPath, _ := FindProjectConfig(workDir)

	return LoadFromPaths(ctx, projectPath, globalPath, flags)
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string, flags *pflag.FlagSet) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence)
	if globalConfigPath != "" && fileExists(globalConfigPath) {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	// Project config merges over global
	projectDir := ""
	if projectConfigPath != "" && fileExists(projectConfigPath) {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
		projectDir = filepath.Dir(projectConfigPath)
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}
	cfg.ProjectDir = projectDir

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("project_config", projectConfigPath).
		Str("global_config", globalConfigPath).
		Str("storage.file", cfg.Storage.File).
		Dur("storage.lock_timeout", cfg.Storage.LockTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// viperDecoderOption returns the decode hooks shared by every load path.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
