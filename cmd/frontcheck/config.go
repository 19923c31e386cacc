package main

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/larklang/compiler/internal/config"
	"github.com/larklang/compiler/internal/diagnostics"
)

// Config is the driver-side .frontcheck.yaml: suppressed diagnostic
// codes and a recursion-depth override. Configuration stays out of the
// core; the file only tunes the knobs internal/config already exposes.
type Config struct {
	Suppress          []string `yaml:"suppress"`
	MaxRecursionDepth int      `yaml:"maxRecursionDepth"`

	suppressed map[diagnostics.Code]bool
}

// LoadConfig reads path, or discovers ./.frontcheck.yaml when path is
// empty. A discovered file that is missing or unreadable yields an empty
// config; an explicit path that cannot be read is an error.
func LoadConfig(path string) (*Config, error) {
	discover := path == ""
	if discover {
		path = ".frontcheck.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if discover && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		if !discover {
			return nil, err
		}
		return &Config{}, nil
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply pushes overrides into the core's config package.
func (c *Config) Apply() {
	if c.MaxRecursionDepth > 0 {
		config.MaxRecursionDepth = c.MaxRecursionDepth
	}
}

// Suppressed reports whether a code is filtered from output.
func (c *Config) Suppressed(code diagnostics.Code) bool {
	if c.suppressed == nil {
		c.suppressed = map[diagnostics.Code]bool{}
		for _, s := range c.Suppress {
			c.suppressed[diagnostics.Code(s)] = true
		}
	}
	return c.suppressed[code]
}
