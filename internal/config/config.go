// Package config loads the YAML settings shared by the CLI and the web server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/logging"
)

// Config holds all the settings a gridsearch process runs with.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig holds the defaults a run starts with; per-request values win.
type SearchConfig struct {
	Algorithm      string  `yaml:"algorithm"`
	Heuristic      string  `yaml:"heuristic"`
	StepsPerSecond float64 `yaml:"steps_per_second"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	AllowOrigin   string        `yaml:"allow_origin"`
	Compression   bool          `yaml:"compression"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	// MaxCells caps the boards clients may load.
	MaxCells int `yaml:"max_cells"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Search: SearchConfig{
			Algorithm:      gridsearch.AStar.String(),
			Heuristic:      "manhattan",
			StepsPerSecond: 30,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			AllowOrigin:   "*",
			Compression:   true,
			ShutdownGrace: 5 * time.Second,
			MaxCells:      1 << 18,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := gridsearch.ParseAlgorithm(c.Search.Algorithm); err != nil {
		errs = append(errs, err)
	}
	if _, err := gridsearch.ParseHeuristic(c.Search.Heuristic); err != nil {
		errs = append(errs, err)
	}
	if c.Search.StepsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("steps_per_second must be positive, got %v", c.Search.StepsPerSecond))
	}
	if c.Server.MaxCells <= 0 {
		errs = append(errs, fmt.Errorf("server max_cells must be positive, got %d", c.Server.MaxCells))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server addr is required"))
	}
	return errors.Join(errs...)
}

// Algorithm is the parsed default algorithm. Call after Validate.
func (c Config) Algorithm() gridsearch.Algorithm {
	algorithm, _ := gridsearch.ParseAlgorithm(c.Search.Algorithm)
	return algorithm
}
