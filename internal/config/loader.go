package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load layers defaults, the YAML file at path and MANTRAD_* env vars, in
// that order. A missing file is not an error; an empty path uses Path().
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path == "" {
		path = Path()
	}
	if err := loadFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return RuntimeConfigFromEnv(cfg).Normalize(), fmt.Errorf("load config %s: %w", path, err)
	}
	return RuntimeConfigFromEnv(cfg).Normalize(), nil
}

func loadFile(path string, cfg *RuntimeConfig) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Marshal renders cfg as YAML, as read back by Load.
func Marshal(cfg RuntimeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default configuration to path unless a file is
// already there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	data, err := Marshal(DefaultRuntimeConfig())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
