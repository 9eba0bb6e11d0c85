package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the stress run parameters. All fields have working defaults;
// a TOML file given with -config overrides them.
type Config struct {
	// Objects is the number of native objects to bind.
	Objects int `toml:"objects"`

	// Goroutines is the number of workers hammering the slots.
	Goroutines int `toml:"goroutines"`

	// Iterations is the number of operations each worker performs.
	Iterations int `toml:"iterations"`
}

func defaultConfig() Config {
	return Config{
		Objects:    64,
		Goroutines: 8,
		Iterations: 10000,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Objects <= 0 {
		return fmt.Errorf("objects must be positive, got %d", c.Objects)
	}
	if c.Goroutines <= 0 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	return nil
}
