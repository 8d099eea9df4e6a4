package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/blimu-dev/openapi-swift/pkg/config"
	"github.com/blimu-dev/openapi-swift/pkg/generator"
	"github.com/blimu-dev/openapi-swift/pkg/openapi"
)

// ErrUsage marks errors caused by invalid flags or arguments.
var ErrUsage = errors.New("usage")

type GenerateParams struct {
	ConfigPath string
	Target     string
	Check      bool
	Verbose    bool
	Fallback   generator.FallbackOptions

	// Stdout receives generated source when no output file is given.
	Stdout io.Writer
	// Stderr receives progress messages in verbose mode.
	Stderr io.Writer

	flags *pflag.FlagSet
}

func (p GenerateParams) logger() *log.Logger {
	if !p.Verbose {
		return log.New(io.Discard, "", 0)
	}
	w := p.Stderr
	if w == nil {
		w = os.Stderr
	}
	return log.New(w, "swiftgen: ", 0)
}

func (p GenerateParams) stdout() io.Writer {
	if p.Stdout == nil {
		return os.Stdout
	}
	return p.Stdout
}

func RunValidate(ctx context.Context, input string, stdout io.Writer) error {
	if input == "" {
		return fmt.Errorf("%w: --input is required", ErrUsage)
	}
	if err := openapi.Validate(ctx, input); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "%s is valid\n", input)
	return err
}

func RunGenerate(ctx context.Context, p GenerateParams) error {
	logger := p.logger()
	service := generator.NewService(
		generator.WithCheck(p.Check),
		generator.WithLogger(logger),
	)

	if p.ConfigPath != "" {
		cfg, err := config.Load(p.ConfigPath)
		if err != nil {
			return err
		}
		if err := applyOverrides(cfg, p); err != nil {
			return err
		}
		logger.Printf("using config %s with %d target(s)", p.ConfigPath, len(cfg.Targets))
		return service.GenerateFromConfig(ctx, cfg, p.Target)
	}

	if p.Fallback.Spec == "" {
		return fmt.Errorf("%w: either --config or --input must be provided", ErrUsage)
	}
	if p.Target != "" {
		return fmt.Errorf("%w: --target requires --config", ErrUsage)
	}
	if p.Fallback.Output != "" {
		cfg, err := p.Fallback.Config()
		if err != nil {
			return err
		}
		return service.GenerateFromConfig(ctx, cfg, "")
	}

	if p.Check {
		return fmt.Errorf("%w: --check requires --out or --config", ErrUsage)
	}
	spec, err := service.LoadSpecification(ctx, p.Fallback.Spec, p.Fallback.Validate)
	if err != nil {
		return err
	}
	out, err := service.Render(config.Target{
		Type:        config.DefaultType,
		Name:        p.Fallback.Name,
		Indent:      p.Fallback.Indent,
		IncludeTags: p.Fallback.IncludeTags,
		ExcludeTags: p.Fallback.ExcludeTags,
		StrictPaths: p.Fallback.StrictPaths,
	}, spec)
	if err != nil {
		return err
	}
	_, err = p.stdout().Write(out)
	return err
}
