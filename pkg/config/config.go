// Package config loads and saves extraction settings as TOML.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the runtime parameters for an extraction run.
type Config struct {
	// Isovalue is the extraction threshold.
	Isovalue float64 `toml:"isovalue"`

	// Resolution is the per-axis point count when sampling a field. Ignored
	// for pre-sampled voxel input.
	Resolution int `toml:"resolution"`

	// Workers is the goroutine count per pipeline stage. Zero means one per
	// CPU.
	Workers int `toml:"workers"`

	// Serial forces single-threaded extraction.
	Serial bool `toml:"serial"`

	// Output is the STL output path.
	Output string `toml:"output"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Isovalue:   0,
		Resolution: 64,
		Output:     "output.stl",
	}
}

// Load reads a TOML config file, applying defaults for absent keys.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Resolution < 2 {
		return cfg, fmt.Errorf("config: resolution must be at least 2, got %d", cfg.Resolution)
	}
	return cfg, nil
}

// Save writes the configuration to a TOML file.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
