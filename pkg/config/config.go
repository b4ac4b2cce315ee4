// Package config provides configuration loading and management for roitool.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/funkelab/funlib.geometry/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Array describes the world space covered by the data
	Array struct {
		// Offset is the world coordinate of the first voxel
		Offset geometry.FloatCoordinate `yaml:"offset"`

		// Shape is the world extent of the array
		Shape geometry.FloatCoordinate `yaml:"shape"`

		// VoxelSize is the physical size of each voxel
		VoxelSize geometry.FloatCoordinate `yaml:"voxelSize"`
	} `yaml:"array"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many workers to use for per-block statistics
		NumCores int `yaml:"numCores"`

		// SnapMode controls how requested regions are aligned to the voxel grid
		SnapMode geometry.SnapMode `yaml:"snapMode"`

		// BlockShape is the world shape of the blocks the array is tiled into
		BlockShape geometry.FloatCoordinate `yaml:"blockShape"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`

		// Format of the report: text, json or yaml
		Format string `yaml:"format"`

		// SectionDir is where section images of the requested region are
		// saved; empty disables it
		SectionDir string `yaml:"sectionDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// 100^3 unit voxels at the origin
	cfg.Array.Offset = geometry.FC(0, 0, 0)
	cfg.Array.Shape = geometry.FC(100, 100, 100)
	cfg.Array.VoxelSize = geometry.FC(1, 1, 1)

	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.SnapMode = geometry.SnapGrow
	cfg.Processing.BlockShape = geometry.FC(50, 50, 50)

	cfg.Output.Verbose = false
	cfg.Output.Format = "text"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Validate checks that the configuration describes a usable array
func (c *Config) Validate() error {
	dims := c.Array.Shape.Dims()
	if dims == 0 {
		return fmt.Errorf("array shape is required")
	}
	if c.Array.Offset.Dims() != dims || c.Array.VoxelSize.Dims() != dims {
		return fmt.Errorf("array offset %v, shape %v and voxel size %v must have the same dimensions",
			c.Array.Offset, c.Array.Shape, c.Array.VoxelSize)
	}
	if c.Processing.BlockShape.Dims() != dims {
		return fmt.Errorf("block shape %v must have %d dimensions", c.Processing.BlockShape, dims)
	}
	if _, err := geometry.ParseSnapMode(string(c.Processing.SnapMode)); err != nil {
		return err
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", c.Output.Format)
	}
	if _, err := c.BuildArray(); err != nil {
		return err
	}
	return nil
}

// BuildArray returns the array described by the configuration
func (c *Config) BuildArray() (geometry.FloatArray, error) {
	if c.Array.Offset.Dims() != c.Array.Shape.Dims() || c.Array.Shape.Dims() != c.Array.VoxelSize.Dims() {
		return geometry.FloatArray{}, fmt.Errorf("array offset %v, shape %v and voxel size %v must have the same dimensions",
			c.Array.Offset, c.Array.Shape, c.Array.VoxelSize)
	}
	return geometry.FromWorld(c.Array.Offset, c.Array.Shape, c.Array.VoxelSize)
}
