package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MikyStar/CLI-Manager-sub000/internal/constants"
	"github.com/MikyStar/CLI-Manager-sub000/internal/errors"
	"github.com/MikyStar/CLI-Manager-sub000/internal/task"
)

// starter is the subset of Config written into a new project config.
type starter struct {
	Storage StorageConfig `yaml:"storage"`
	States  []task.State  `yaml:"states"`
	Print   PrintConfig   `yaml:"print"`
}

// WriteStarter writes the project-level sections of cfg to path as YAML.
// An existing file is never overwritten (errors.ErrFileAlreadyExists).
func WriteStarter(path string, cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	data, err := yaml.Marshal(starter{
		Storage: cfg.Storage,
		States:  cfg.States,
		Print:   cfg.Print,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode starter config")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePerm) //#nosec G302,G304 -- path is chosen by the user
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", errors.ErrFileAlreadyExists, path)
		}
		return errors.Wrapf(err, "failed to create %s", path)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}
