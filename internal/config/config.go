// Package config loads the HCL file describing a table build.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertables/abstraction"
	"github.com/lox/pokertables/poker"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "tables.hcl"

// BuildConfig represents a complete tables.hcl file
type BuildConfig struct {
	Output        string      `hcl:"output,optional"`
	Ranks         int         `hcl:"ranks,optional"`
	Buckets       int         `hcl:"buckets,optional"`
	Workers       int         `hcl:"workers,optional"`
	ChunkSize     int         `hcl:"chunk_size,optional"`
	ProgressEvery string      `hcl:"progress_every,optional"`
	Tables        []string    `hcl:"tables,optional"`
	OCHS          *OCHSConfig `hcl:"ochs,block"`
}

// OCHSConfig points at the opponent cluster assignment used by the river table
type OCHSConfig struct {
	// Assignment is either a clusters table file or a whitespace separated
	// text file of cluster ids.
	Assignment string `hcl:"assignment"`
}

// Default returns the configuration used when no file exists. The river
// table is left out because it needs a cluster assignment.
func Default() *BuildConfig {
	defaults := abstraction.DefaultConfig()
	return &BuildConfig{
		Output:        "tables",
		Ranks:         poker.NumRanks,
		Buckets:       defaults.Buckets,
		Workers:       defaults.Workers,
		ChunkSize:     defaults.ChunkSize,
		ProgressEvery: defaults.ProgressEvery.String(),
		Tables:        []string{abstraction.KindStrength, abstraction.KindFlop, abstraction.KindTurn, abstraction.KindOCHS},
	}
}

// Load loads the build configuration from an HCL file. A missing file yields
// the defaults.
func Load(filename string) (*BuildConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source.
func Parse(src []byte, filename string) (*BuildConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*BuildConfig, error) {
	var config BuildConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if config.Output == "" {
		config.Output = defaults.Output
	}
	if config.Ranks == 0 {
		config.Ranks = defaults.Ranks
	}
	if config.Buckets == 0 {
		config.Buckets = defaults.Buckets
	}
	if config.Workers == 0 {
		config.Workers = defaults.Workers
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = defaults.ChunkSize
	}
	if config.ProgressEvery == "" {
		config.ProgressEvery = defaults.ProgressEvery
	}
	if len(config.Tables) == 0 {
		config.Tables = defaults.Tables
		if config.OCHS != nil {
			config.Tables = append(config.Tables, abstraction.KindRiver)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate validates the build configuration
func (c *BuildConfig) Validate() error {
	if _, err := poker.ShortDeck(c.Ranks); err != nil {
		return err
	}
	if _, err := c.Abstraction(); err != nil {
		return err
	}
	for _, kind := range c.Tables {
		if !slices.Contains(abstraction.Kinds, kind) {
			return fmt.Errorf("unknown table %q", kind)
		}
	}
	if c.Wants(abstraction.KindRiver) && (c.OCHS == nil || c.OCHS.Assignment == "") {
		return fmt.Errorf("the river table needs an ochs assignment")
	}
	return nil
}

// Abstraction returns the builder settings.
func (c *BuildConfig) Abstraction() (abstraction.Config, error) {
	every, err := time.ParseDuration(c.ProgressEvery)
	if err != nil {
		return abstraction.Config{}, fmt.Errorf("invalid progress_every: %w", err)
	}
	cfg := abstraction.Config{
		Buckets:       c.Buckets,
		Workers:       c.Workers,
		ChunkSize:     c.ChunkSize,
		ProgressEvery: every,
	}
	return cfg, cfg.Validate()
}

// Deck returns the deck the tables are built over.
func (c *BuildConfig) Deck() (poker.Deck, error) {
	return poker.ShortDeck(c.Ranks)
}

// Wants reports whether the table kind is part of the build.
func (c *BuildConfig) Wants(kind string) bool {
	return slices.Contains(c.Tables, kind)
}

// Path returns where the table of the given kind is stored.
func (c *BuildConfig) Path(kind string) string {
	return filepath.Join(c.Output, kind+".msgp")
}
