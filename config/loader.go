package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config = Default()

// DefaultPaths are probed in order when no explicit path is given.
var DefaultPaths = []string{"config.yml", "transport-catalogue.yml"}

// LoadAppConfig loads and validates the application configuration. An
// explicit path must exist; without one the default paths are probed and,
// when none exists, the defaults are kept.
func LoadAppConfig(path string) error {
	var data []byte
	var err error
	if path != "" {
		if data, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		for _, p := range DefaultPaths {
			data, err = os.ReadFile(p)
			if err == nil {
				break
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
		if err != nil {
			Config = Default()
			return nil
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	Config = cfg
	return nil
}
