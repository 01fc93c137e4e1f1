// Package config provides configuration management for the incantata CLI.
//
// This package extends the shared structure configuration from
// internal/config with CLI-specific fields: batch size, seeding, output
// format and named profiles.
package config

import (
	sharedcfg "github.com/leapstack-labs/incantata/internal/config"
	"github.com/leapstack-labs/incantata/pkg/core"
)

// StructureConfig is an alias for the shared structure configuration.
// This allows CLI code to use config.StructureConfig without importing
// internal/config.
type StructureConfig = sharedcfg.StructureConfig

// Config holds all CLI configuration options.
type Config struct {
	Count        int    `koanf:"count"`
	Seed         uint64 `koanf:"seed"`
	Workers      int    `koanf:"workers"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	Capitalize   bool   `koanf:"capitalize"`
	Hyphenate    bool   `koanf:"hyphenate"`
	Filter       string `koanf:"filter"`
	MaxAttempts  int    `koanf:"max_attempts"`
	Profile      string `koanf:"profile"`

	Structure StructureConfig `koanf:"structure"`

	// Profiles holds named overrides. Only the names are decoded here; the
	// loader merges the selected profile before decoding.
	Profiles map[string]map[string]any `koanf:"profiles"`

	// ProjectRoot is the directory of the config file in use, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// BuildStructure converts the structure section into a core.Structure.
// The result is not validated.
func (c *Config) BuildStructure() *core.Structure {
	return c.Structure.Build()
}

// Default configuration values.
const (
	DefaultCount       = 10
	DefaultWorkers     = 1
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxAttempts = 1000
)
