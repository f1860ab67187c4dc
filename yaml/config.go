// Package yaml loads the optional diffmark config file.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/diffmark/diffmark/fs"
)

// Config holds the user-tunable settings. Zero values mean "use default";
// Normalize fills them in.
type Config struct {
	// ContextLines is how many unchanged lines stay visible around each
	// change before the rest collapses.
	ContextLines int `yaml:"context_lines"`

	// DraftsPath is where draft comments are persisted.
	DraftsPath string `yaml:"drafts_path"`

	// Theme selects the color theme by name ("default" or "light").
	Theme string `yaml:"theme"`

	// Model names the generative model used for comment suggestions.
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills unset fields with their defaults.
func (c *Config) Normalize() {
	if c.ContextLines <= 0 {
		c.ContextLines = 3
	}
	if c.DraftsPath == "" {
		c.DraftsPath = fs.DefaultDraftsPath()
	}
	if c.Theme == "" {
		c.Theme = "default"
	}
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
}

// Load reads the config file at path. A missing file yields the defaults; a
// present but malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}
