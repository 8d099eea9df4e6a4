package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultType is the generator used when a target does not name one.
const DefaultType = "swift"

// Config represents the complete configuration for code generation
type Config struct {
	Spec string `yaml:"spec"`
	// Validate runs OpenAPI validation on the document before generating.
	Validate bool     `yaml:"validate"`
	Targets  []Target `yaml:"targets"`
}

// Target represents one generated output file
type Target struct {
	Type string `yaml:"type"`
	// Name is the enclosing Swift declaration. When empty it is derived from info.title.
	Name string `yaml:"name"`
	// Output is the file the generated source is written to.
	Output string `yaml:"output"`
	// Indent is the indentation unit, four spaces when empty.
	Indent      string   `yaml:"indent"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
	// StrictPaths fails generation when a path placeholder is not a declared path parameter.
	StrictPaths bool `yaml:"strictPaths"`
	// PreCommand is an optional command to run before generation starts.
	// Uses Docker Compose array format: ["swiftformat", "--version"]
	// The command will be executed in the output file's directory.
	PreCommand []string `yaml:"preCommand"`
	// PostCommand is an optional command to run after the file has been written.
	// Uses Docker Compose array format: ["swiftformat", "PetStore.swift"]
	// The command will be executed in the output file's directory.
	PostCommand []string `yaml:"postCommand"`
}

// GetPreCommand returns the pre-generation command to execute.
func (t *Target) GetPreCommand() []string {
	return t.PreCommand
}

// GetPostCommand returns the post-generation command to execute.
func (t *Target) GetPostCommand() []string {
	return t.PostCommand
}

// OutDir is the directory the output file lives in.
func (t *Target) OutDir() string {
	return filepath.Dir(t.Output)
}

// Label identifies the target in messages.
func (t *Target) Label() string {
	switch {
	case t.Name != "":
		return t.Name
	case t.Output != "":
		return t.Output
	}
	return "<stdout>"
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and normalizes a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize applies defaults, checks required fields and makes paths absolute.
func (cfg *Config) Normalize() error {
	if cfg.Spec == "" {
		return errors.New("config.spec is required")
	}
	if len(cfg.Targets) == 0 {
		return errors.New("config.targets must list at least one target")
	}
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if t.Type == "" {
			t.Type = DefaultType
		}
		if t.Output == "" {
			return fmt.Errorf("targets[%d] missing required field (output)", i)
		}
		if !filepath.IsAbs(t.Output) {
			abs, _ := filepath.Abs(t.Output)
			t.Output = abs
		}
	}
	// Do not absolutize when spec is an HTTP(S) URL
	if u, err := url.Parse(cfg.Spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		// keep as-is
	} else if !filepath.IsAbs(cfg.Spec) {
		abs, _ := filepath.Abs(cfg.Spec)
		cfg.Spec = abs
	}
	return nil
}
