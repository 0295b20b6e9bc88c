package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the project-local configuration file.
const DefaultFileName = ".puid.toml"

// ProjectConfig represents the project-local configuration.
type ProjectConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Upload   UploadConfig   `toml:"upload"`
	Serve    ServeConfig    `toml:"serve"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig holds defaults for the generate command.
type GenerateConfig struct {
	Prefix string `toml:"prefix"`
	Length *int   `toml:"length,omitempty"`
}

// UploadConfig holds object-tagging upload settings.
type UploadConfig struct {
	Bucket      string `toml:"bucket"`
	KeyPrefix   string `toml:"key_prefix"`
	IDPrefix    string `toml:"id_prefix"`
	Profile     string `toml:"profile"`
	Region      string `toml:"region"`
	Concurrency int    `toml:"concurrency"`
}

// ServeConfig holds ID service settings.
type ServeConfig struct {
	Addr  string `toml:"addr"`
	Ngrok bool   `toml:"ngrok"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Upload: UploadConfig{
			IDPrefix:    "obj",
			Concurrency: 4,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from path, layered over Default.
// Returns the defaults if the file doesn't exist.
func Load(path string) (*ProjectConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Generate.Length != nil && *cfg.Generate.Length < 0 {
		return nil, fmt.Errorf("invalid %s: generate.length must not be negative", path)
	}

	return cfg, nil
}

// Save writes the configuration to path.
func Save(path string, cfg *ProjectConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
