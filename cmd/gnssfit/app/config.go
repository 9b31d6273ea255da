package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geniusinaction/GEO244/gnss"
)

// Config names the series to decompose and the model to fit to it.
type Config struct {
	Input     string
	URL       string
	Token     string
	ModelPath string
	Output    string

	Model gnss.Model
}

// NewConfigFromCLI builds a run configuration from command-line flags. The
// decomposition model itself comes from a YAML file; without one only the
// intercept and velocity are fitted.
func NewConfigFromCLI() (*Config, error) {
	c := &Config{}

	flag.StringVar(&c.Input, "in", "", "Path to a position series file")
	flag.StringVar(&c.URL, "url", "", "Archive URL to fetch the series from instead of -in")
	flag.StringVar(&c.Token, "token", "", "Bearer token sent with the archive request")
	flag.StringVar(&c.ModelPath, "config", "", "Path to the decomposition model file (YAML)")
	flag.StringVar(&c.Output, "out", "", "Prefix for per-component decomposition tables (optional)")
	flag.Parse()

	var err error
	if c.Input == "" && c.URL == "" {
		err = errors.New("a series file (-in) or archive URL (-url) is required")
	} else if c.Input != "" && c.URL != "" {
		err = errors.New("choose one of -in and -url")
	}
	if err != nil {
		flag.Usage()
		return nil, err
	}

	if c.ModelPath != "" {
		raw, err := os.ReadFile(c.ModelPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &c.Model); err != nil {
			return nil, fmt.Errorf("parsing model file: %w", err)
		}
	}
	return c, nil
}
