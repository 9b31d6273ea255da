package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geniusinaction/GEO244/invert"
	"github.com/geniusinaction/GEO244/okada"
)

const (
	ModeMonteCarlo = "montecarlo"
	ModeLinear     = "linear"
)

// Config drives one inversion run. In montecarlo mode the source is searched
// inside Bounds; in linear mode the geometry is fixed and only the slip
// vector is estimated.
type Config struct {
	Mode     string        `yaml:"mode"`
	Bounds   invert.Bounds `yaml:"bounds"`
	Geometry okada.Source  `yaml:"geometry"`

	Starts        int     `yaml:"starts"`
	MaxIterations int     `yaml:"maxIterations"`
	Seed          int64   `yaml:"seed"`
	Opening       float64 `yaml:"opening"`
	Nu            float64 `yaml:"nu"`
	BlockMean     float64 `yaml:"blockMean"`

	LogLevel string `yaml:"logLevel"`

	// set from the command line
	Points     string `yaml:"-"`
	CovarModel string `yaml:"-"`
}

// LoadConfig reads and validates a YAML inversion configuration.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Config{Mode: ModeMonteCarlo}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	switch c.Mode {
	case ModeMonteCarlo:
		if err := c.Bounds.Validate(); err != nil {
			return nil, err
		}
	case ModeLinear:
		if err := c.Geometry.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", c.Mode)
	}
	return c, nil
}
