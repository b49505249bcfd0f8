package hbars

import (
	"os"

	"github.com/juju/errors"
	yaml "gopkg.in/yaml.v2"
)

// EngineConfig controls the behaviors an Engine applies uniformly
// across every Template it compiles.
type EngineConfig struct {
	// AutoEscape selects EscapeHTML as the default escape function for
	// {{ expr }} output; {{{ expr }}} is never escaped regardless.
	AutoEscape bool `yaml:"auto_escape"`

	// Strict turns an unresolved path into a render error instead of
	// rendering as empty.
	Strict bool `yaml:"strict"`

	// MaxPartialDepth bounds {{> name}} recursion.
	MaxPartialDepth int `yaml:"max_partial_depth"`
}

// DefaultConfig returns the engine defaults: HTML auto-escaping on,
// strict mode off, partial recursion capped at 100 levels.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		AutoEscape:      true,
		Strict:          false,
		MaxPartialDepth: 100,
	}
}

// LoadConfig reads an EngineConfig from a YAML file, starting from
// DefaultConfig so an omitted field keeps its default.
func LoadConfig(path string) (EngineConfig, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Annotatef(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "parsing config %q", path)
	}
	return cfg, nil
}
