package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where `tinfer init` writes the configuration.
const DefaultPath = ".tinfer.yaml"

var ErrInvalid = errors.New("config: invalid configuration")

// FilterRule toggles one obviousness filter.
type FilterRule struct {
	Enabled bool `yaml:"enabled"`
}

// Config represents the inference settings shared by every point of a run.
type Config struct {
	Name string `yaml:"name"`
	// MaxOneOf bounds the number of distinct values a one-of invariant keeps.
	MaxOneOf      int  `yaml:"max_one_of"`
	EnableFloats  bool `yaml:"enable_floats"`
	EnableTernary bool `yaml:"enable_ternary"`
	// MinJustification is the confidence an invariant needs to be reported.
	MinJustification float64               `yaml:"min_justification"`
	Suppression      bool                  `yaml:"suppression"`
	Filters          map[string]FilterRule `yaml:"filters"`
}

func Default() *Config {
	return &Config{
		Name:             "tinfer",
		MaxOneOf:         3,
		EnableFloats:     true,
		EnableTernary:    true,
		MinJustification: 0.99,
		Suppression:      true,
		Filters:          map[string]FilterRule{},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Filters == nil {
		cfg.Filters = map[string]FilterRule{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxOneOf < 1 {
		return fmt.Errorf("%w: max_one_of must be positive, got %d", ErrInvalid, c.MaxOneOf)
	}
	if c.MinJustification < 0 || c.MinJustification > 1 {
		return fmt.Errorf("%w: min_justification must be within [0, 1], got %g", ErrInvalid, c.MinJustification)
	}
	return nil
}

// FilterEnabled reports whether the named filter runs. Filters not listed
// in the configuration are enabled.
func (c *Config) FilterEnabled(name string) bool {
	rule, ok := c.Filters[name]
	return !ok || rule.Enabled
}

// Write stores c as YAML at path, replacing any existing file.
func Write(path string, c *Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
