// Package file provides the TOML-backed configuration store.
// Configuration lives in a TOML file inside the crosscheck config
// directory.
package file

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the persisted crosscheck settings.
type Config struct {
	// InputDir is the directory holding the documents to compare.
	InputDir string `toml:"input_dir"`

	// OutputDir is where reports are written.
	OutputDir string `toml:"output_dir"`

	// BlockSize is the highlight granularity in tokens.
	BlockSize int `toml:"block_size"`

	// Port is the HTTP server listen port.
	Port string `toml:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputDir:  "input_files",
		OutputDir: "results",
		BlockSize: 2,
		Port:      "8080",
	}
}

// ConfigStore is a file-based configuration store using TOML.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.crosscheck/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".crosscheck")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load reads the configuration, filling unset fields with defaults.
// A missing file yields the defaults without error.
func (s *ConfigStore) Load() (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Default(), err
	}

	if cfg.InputDir == "" {
		cfg.InputDir = Default().InputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = Default().OutputDir
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = Default().BlockSize
	}
	if cfg.Port == "" {
		cfg.Port = Default().Port
	}

	return cfg, nil
}

// Save persists the configuration.
func (s *ConfigStore) Save(cfg Config) error {
	raw, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0600)
}
