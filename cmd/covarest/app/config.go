package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geniusinaction/GEO244/covar"
)

// Config drives one covariance estimation run: which rasters to load, how to
// screen them, and which model to fit to the radial profile.
type Config struct {
	Interferogram string `yaml:"interferogram"`
	Correlation   string `yaml:"correlation"`
	WaterMask     string `yaml:"waterMask"`

	Band      *int     `yaml:"band"`
	NoData    *float64 `yaml:"noData"`
	SRS       *string  `yaml:"srs"`
	PixelSize *float64 `yaml:"pixelSize"`

	Wavelength     float64 `yaml:"wavelength"`
	CorrelationMin float64 `yaml:"correlationMin"`
	Crop           *Crop   `yaml:"crop"`

	Model         covar.ModelType `yaml:"model"`
	BinWidth      float64         `yaml:"binWidth"`
	Alpha0        *float64        `yaml:"alpha0"`
	Beta0         *float64        `yaml:"beta0"`
	MaxIterations *int            `yaml:"maxIterations"`

	LogLevel string `yaml:"logLevel"`
	Output   string `yaml:"-"`
}

// Crop is a half-open row/column window into the loaded grid.
type Crop struct {
	Row0 int `yaml:"row0"`
	Col0 int `yaml:"col0"`
	Row1 int `yaml:"row1"`
	Col1 int `yaml:"col1"`
}

// LoadConfig reads and validates a YAML run configuration.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Config{Model: covar.Exponential}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Interferogram == "" {
		return errors.New("interferogram path is required")
	}
	if c.Wavelength <= 0 {
		return fmt.Errorf("radar wavelength %g must be positive", c.Wavelength)
	}
	if c.CorrelationMin < 0 || c.CorrelationMin > 1 {
		return fmt.Errorf("correlationMin %g outside [0, 1]", c.CorrelationMin)
	}
	if c.Correlation == "" && c.CorrelationMin > 0 {
		return errors.New("correlationMin set without a correlation raster")
	}
	return nil
}
