package config

// This file loads configuration from a YAML file and from environment
// variables (VIDPRESS_* keys, see the struct tags on Config). Flags are
// parsed afterwards and therefore always win.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// LoadExternal overlays cfg with values from the config file at path (when
// non-empty) and the environment. When path is empty the default location
// is used if, and only if, a file exists there; a missing explicit path is
// an error, a missing default is not.
func LoadExternal(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			// ReadConfig applies the file first, then env overrides.
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return fmt.Errorf("load config %q: %w", path, err)
			}
			cfg.ConfigFile = path
			return nil
		} else if explicit {
			return fmt.Errorf("config file %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// defaultConfigPath returns ~/.config/vidpress/config.yaml, or "" when the
// home directory cannot be resolved.
func defaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vidpress", "config.yaml")
}
