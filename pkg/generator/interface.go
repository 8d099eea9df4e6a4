package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/blimu-dev/openapi-swift/pkg/config"
	"github.com/blimu-dev/openapi-swift/pkg/generator/swift"
	"github.com/blimu-dev/openapi-swift/pkg/ir"
	"github.com/blimu-dev/openapi-swift/pkg/openapi"
)

// Generator defines the interface for source generators
type Generator interface {
	// Generate renders the complete output file for target
	Generate(target config.Target, spec *ir.Specification) ([]byte, error)
	// GetType returns the type identifier for this generator (e.g., "swift")
	GetType() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GenerateOptions contains options for generation
type GenerateOptions struct {
	ConfigPath   string
	SingleTarget string
	Fallback     FallbackOptions
}

// FallbackOptions describes a single target when no config file is provided
type FallbackOptions struct {
	Spec        string
	Validate    bool
	Type        string
	Output      string
	Name        string
	Indent      string
	IncludeTags []string
	ExcludeTags []string
	StrictPaths bool
}

// Config turns the fallback options into a one-target configuration.
func (f FallbackOptions) Config() (*config.Config, error) {
	if f.Spec == "" || f.Output == "" {
		return nil, errors.New("either config path or spec and output must be provided")
	}
	cfg := &config.Config{
		Spec:     f.Spec,
		Validate: f.Validate,
		Targets: []config.Target{{
			Type:        f.Type,
			Name:        f.Name,
			Output:      f.Output,
			Indent:      f.Indent,
			IncludeTags: f.IncludeTags,
			ExcludeTags: f.ExcludeTags,
			StrictPaths: f.StrictPaths,
		}},
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Service provides high-level generation functionality
type Service struct {
	registry    *Registry
	check       bool
	logger      *log.Logger
	loadOptions []openapi.Option
	stdout      io.Writer
	stderr      io.Writer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCheck makes the service compare output with the files on disk instead of writing.
func WithCheck(check bool) ServiceOption {
	return func(s *Service) { s.check = check }
}

// WithLogger sets the logger used for progress messages. Messages are discarded by default.
func WithLogger(l *log.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithLoadOptions passes options to the document loader.
func WithLoadOptions(opts ...openapi.Option) ServiceOption {
	return func(s *Service) { s.loadOptions = append(s.loadOptions, opts...) }
}

// WithCommandOutput redirects the output of pre and post commands.
func WithCommandOutput(stdout, stderr io.Writer) ServiceOption {
	return func(s *Service) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// NewService creates a new generator service with default generators
func NewService(opts ...ServiceOption) *Service {
	registry := NewRegistry()
	registry.Register(swift.NewSwiftGenerator())
	return NewServiceWithRegistry(registry, opts...)
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry, opts ...ServiceOption) *Service {
	s := &Service{
		registry: registry,
		logger:   log.New(io.Discard, "", 0),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// Generate generates output files based on the provided options
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) error {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		cfg, err = opts.Fallback.Config()
	} else {
		cfg, err = config.Load(opts.ConfigPath)
	}
	if err != nil {
		return err
	}

	return s.GenerateFromConfig(ctx, cfg, opts.SingleTarget)
}

// LoadSpecification loads, optionally validates and decodes the document at input.
func (s *Service) LoadSpecification(ctx context.Context, input string, validate bool) (*ir.Specification, error) {
	data, err := openapi.LoadDocument(ctx, input, s.loadOptions...)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := openapi.ValidateDocument(ctx, data); err != nil {
			return nil, fmt.Errorf("%s: %w", input, err)
		}
	}
	spec, err := openapi.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	s.logger.Printf("loaded %s: %d operations, %d schemas", input, len(spec.Operations()), len(spec.Schemas))
	return spec, nil
}

// Render filters spec for target and returns the generated source.
func (s *Service) Render(target config.Target, spec *ir.Specification) ([]byte, error) {
	gen, exists := s.registry.Get(target.Type)
	if !exists {
		return nil, fmt.Errorf("unsupported target type: %s (available: %s)", target.Type, strings.Join(s.registry.GetAvailableTypes(), ", "))
	}

	filtered, err := FilterOperations(spec, target.IncludeTags, target.ExcludeTags)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", target.Label(), err)
	}

	out, err := gen.Generate(target, filtered)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", target.Label(), err)
	}
	return out, nil
}

// GenerateFromConfig generates every target of cfg, or only the one named onlyTarget.
func (s *Service) GenerateFromConfig(ctx context.Context, cfg *config.Config, onlyTarget string) error {
	spec, err := s.LoadSpecification(ctx, cfg.Spec, cfg.Validate)
	if err != nil {
		return err
	}

	matched := false
	for _, target := range cfg.Targets {
		if onlyTarget != "" && target.Name != onlyTarget {
			continue
		}
		matched = true
		if err := s.generateTarget(ctx, target, spec); err != nil {
			return err
		}
	}
	if onlyTarget != "" && !matched {
		return fmt.Errorf("target %q not found in config", onlyTarget)
	}
	return nil
}

func (s *Service) generateTarget(ctx context.Context, target config.Target, spec *ir.Specification) error {
	// Commands may rewrite the output, so check mode runs without them
	runCommands := !s.check
	if runCommands {
		if err := os.MkdirAll(target.OutDir(), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory for target %s: %w", target.Label(), err)
		}
		if err := s.executeCommand(ctx, target.GetPreCommand(), target.OutDir(), "pre-command"); err != nil {
			return fmt.Errorf("pre-generation commands failed for target %s: %w", target.Label(), err)
		}
	}

	out, err := s.Render(target, spec)
	if err != nil {
		return err
	}

	wrote, err := WriteFile(target.Output, out, WriteOptions{Check: s.check})
	if err != nil {
		return err
	}
	switch {
	case wrote:
		s.logger.Printf("wrote %s", target.Output)
	case s.check:
		s.logger.Printf("up to date: %s", target.Output)
	default:
		s.logger.Printf("unchanged: %s", target.Output)
	}

	if runCommands {
		if err := s.executeCommand(ctx, target.GetPostCommand(), target.OutDir(), "post-command"); err != nil {
			return fmt.Errorf("post-generation commands failed for target %s: %w", target.Label(), err)
		}
	}
	return nil
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(ctx context.Context, command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	cmdDescription := strings.Join(command, " ")
	s.logger.Printf("running %s: %s", commandLabel, cmdDescription)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}
	return nil
}
