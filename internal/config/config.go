package config

import (
	"fmt"
	"os"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/physics"
	"github.com/san-kum/rootlab/internal/roots"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTime          = 1.0
	DefaultFrequencyHz   = physics.DefaultFrequencyHz
	DefaultTolerance     = roots.DefaultTolerance
	DefaultMaxIterations = roots.DefaultMaxIterations
)

type Config struct {
	Time          float64 `yaml:"time"`
	FrequencyHz   float64 `yaml:"frequency_hz"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Time:          DefaultTime,
		FrequencyHz:   DefaultFrequencyHz,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys absent from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %g: %w", c.FrequencyHz, roots.ErrInvalidInput)
	}
	return c.SolverConfig().Validate()
}

func (c *Config) SolverConfig() roots.Config {
	return roots.Config{
		Tolerance:     c.Tolerance,
		MaxIterations: c.MaxIterations,
	}
}

func (c *Config) ExperimentConfig() experiment.Config {
	return experiment.Config{
		FrequencyHz: c.FrequencyHz,
		Solver:      c.SolverConfig(),
	}
}
