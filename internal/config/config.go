// Package config holds the yaml run configuration for the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt           = 0.01
	DefaultEndTime      = 1.0
	DefaultCells        = 50
	DefaultLength       = 1.0
	DefaultConductivity = 1.0
	DefaultPorosity     = 0.2
)

type Config struct {
	Scheme       string  `yaml:"scheme"`
	Dt           float64 `yaml:"dt"`
	EndTime      float64 `yaml:"end_time"`
	Cells        int     `yaml:"cells"`
	Length       float64 `yaml:"length"`
	Conductivity float64 `yaml:"conductivity"`
	Porosity     float64 `yaml:"porosity"`
	BCLeft       float64 `yaml:"bc_left"`
	BCRight      float64 `yaml:"bc_right"`
	InitialValue float64 `yaml:"initial_value"`
	StoreResults bool    `yaml:"store_results"`
	Verbose      bool    `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:       "implicit",
		Dt:           DefaultDt,
		EndTime:      DefaultEndTime,
		Cells:        DefaultCells,
		Length:       DefaultLength,
		Conductivity: DefaultConductivity,
		Porosity:     DefaultPorosity,
		BCLeft:       1.0,
		BCRight:      0.0,
		StoreResults: true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.EndTime <= 0 {
		return fmt.Errorf("end_time must be positive, got %f", c.EndTime)
	}
	if c.Cells < 1 {
		return fmt.Errorf("cells must be at least 1, got %d", c.Cells)
	}
	if c.Length <= 0 {
		return fmt.Errorf("length must be positive, got %f", c.Length)
	}
	if c.Conductivity <= 0 || c.Porosity <= 0 {
		return fmt.Errorf("conductivity and porosity must be positive")
	}
	return nil
}
