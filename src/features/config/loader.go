package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		URL:  "https://lrclib.net",
		Jobs: 1,
		Logger: Logger{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file from the given path and returns a new Manager.
// An empty path yields the default configuration. File values overlay the
// defaults, and the merged result is validated.
func Load(path string) (*Manager, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return NewManager(cfg), nil
}
