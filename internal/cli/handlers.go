package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/blimu-dev/openapi-swift/pkg/config"
	"github.com/blimu-dev/openapi-swift/pkg/generator/swift"
)

// GenerateFlags defines the generate flags on a new flag set bound to p.
func GenerateFlags(p *GenerateParams) *pflag.FlagSet {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.StringVarP(&p.ConfigPath, "config", "c", "", "Path to swiftgen.yaml config")
	fs.StringVar(&p.Target, "target", "", "Generate only the named target from config")
	fs.BoolVar(&p.Check, "check", false, "Fail if generated output differs from the files on disk")
	fs.BoolVarP(&p.Verbose, "verbose", "v", false, "Log progress to stderr")
	// Single-target flags, also used as overrides with --config
	fs.StringVar(&p.Fallback.Spec, "input", "", "OpenAPI document, file or http(s) URL (yaml/json)")
	fs.StringVar(&p.Fallback.Name, "name", "", "Name of the generated enum (default derived from info.title)")
	fs.StringVar(&p.Fallback.Indent, "tab", swift.DefaultIndent, "Indentation unit")
	fs.StringVar(&p.Fallback.Output, "out", "", "Output file (stdout when empty)")
	fs.StringArrayVar(&p.Fallback.IncludeTags, "include-tags", nil, "Regex patterns for tags to include")
	fs.StringArrayVar(&p.Fallback.ExcludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")
	fs.BoolVar(&p.Fallback.StrictPaths, "strict-paths", false, "Reject path placeholders that are not declared path parameters")
	fs.BoolVar(&p.Fallback.Validate, "validate", false, "Validate the document before generating")
	p.flags = fs
	return fs
}

// applyOverrides copies explicitly set flags over the values loaded from a config file.
func applyOverrides(cfg *config.Config, p GenerateParams) error {
	fs := p.flags
	if fs == nil {
		return nil
	}
	fb := p.Fallback

	if fs.Changed("input") {
		cfg.Spec = fb.Spec
	}
	if fs.Changed("validate") {
		cfg.Validate = fb.Validate
	}
	if fs.Changed("out") {
		if len(cfg.Targets) != 1 {
			return fmt.Errorf("%w: --out needs a config with exactly one target, found %d", ErrUsage, len(cfg.Targets))
		}
		cfg.Targets[0].Output = fb.Output
	}
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if fs.Changed("name") {
			t.Name = fb.Name
		}
		if fs.Changed("tab") {
			t.Indent = fb.Indent
		}
		if fs.Changed("include-tags") {
			t.IncludeTags = fb.IncludeTags
		}
		if fs.Changed("exclude-tags") {
			t.ExcludeTags = fb.ExcludeTags
		}
		if fs.Changed("strict-paths") {
			t.StrictPaths = fb.StrictPaths
		}
	}
	return cfg.Normalize()
}
