package generator

import (
	"context"

	"github.com/blimu-dev/openapi-swift/pkg/config"
	"github.com/blimu-dev/openapi-swift/pkg/openapi"
)

// GenerateFileOptions contains options for the convenience GenerateFile function
type GenerateFileOptions struct {
	// ConfigPath is the path to the configuration file (optional)
	ConfigPath string

	// SingleTarget generates only the named target from config (optional)
	SingleTarget string

	// Check compares instead of writing and fails with ErrOutOfDate on a difference
	Check bool

	// Fallback options when no config file is provided
	Spec        string   // OpenAPI spec file or URL
	Validate    bool     // Validate the document before generating
	Type        string   // Generator type, "swift" when empty
	Output      string   // Output file
	Name        string   // Enclosing declaration, derived from info.title when empty
	Indent      string   // Indentation unit, four spaces when empty
	IncludeTags []string // Regex patterns for tags to include
	ExcludeTags []string // Regex patterns for tags to exclude
	StrictPaths bool     // Reject placeholders that are not declared path parameters
}

// GenerateFile is a convenience function for generating with minimal configuration
func GenerateFile(ctx context.Context, opts GenerateFileOptions) error {
	service := NewService(WithCheck(opts.Check))

	return service.Generate(ctx, GenerateOptions{
		ConfigPath:   opts.ConfigPath,
		SingleTarget: opts.SingleTarget,
		Fallback: FallbackOptions{
			Spec:        opts.Spec,
			Validate:    opts.Validate,
			Type:        opts.Type,
			Output:      opts.Output,
			Name:        opts.Name,
			Indent:      opts.Indent,
			IncludeTags: opts.IncludeTags,
			ExcludeTags: opts.ExcludeTags,
			StrictPaths: opts.StrictPaths,
		},
	})
}

// GenerateSwift writes the Swift source for spec to output, wrapped in `enum name`.
func GenerateSwift(spec, output, name string) error {
	return GenerateFile(context.Background(), GenerateFileOptions{
		Spec:   spec,
		Type:   config.DefaultType,
		Output: output,
		Name:   name,
	})
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(configPath string, singleTarget ...string) error {
	service := NewService()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	onlyTarget := ""
	if len(singleTarget) > 0 {
		onlyTarget = singleTarget[0]
	}

	return service.GenerateFromConfig(context.Background(), cfg, onlyTarget)
}

// ValidateSpec validates an OpenAPI specification
func ValidateSpec(specPath string) error {
	return openapi.Validate(context.Background(), specPath)
}
