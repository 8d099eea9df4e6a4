// Package swiftgen generates a single Swift source file from an OpenAPI 3 document.
//
// The generated file is one enum that holds an Operation enum (a case per operation and a
// path builder), an Endpoint<Response> struct with a factory per operation, and a Swift
// declaration per component schema.
//
// Quick Start:
//
//	import "github.com/blimu-dev/openapi-swift"
//
//	source, err := swiftgen.Generate(data, "PetStore", "")
//
// For more advanced usage, see the generator package.
package swiftgen

import (
	"context"

	"github.com/blimu-dev/openapi-swift/pkg/generator"
	"github.com/blimu-dev/openapi-swift/pkg/generator/swift"
	"github.com/blimu-dev/openapi-swift/pkg/openapi"
)

// Generate decodes an OpenAPI document (YAML or JSON) and returns the Swift source.
// An empty containerName is derived from info.title, an empty indentUnit means four spaces.
//
// Example:
//
//	source, err := swiftgen.Generate(data, "PetStore", "\t")
func Generate(document []byte, containerName, indentUnit string) (string, error) {
	spec, err := openapi.Decode(document)
	if err != nil {
		return "", err
	}
	if containerName == "" {
		containerName = swift.ContainerName(spec)
	}
	return swift.Generate(spec, containerName, indentUnit)
}

// GenerateFile writes one Swift file with full control over the options.
//
// Example:
//
//	err := swiftgen.GenerateFile(ctx, swiftgen.GenerateFileOptions{
//		Spec:        "./openapi.yaml",
//		Output:      "./Sources/API/PetStore.swift",
//		Name:        "PetStore",
//		IncludeTags: []string{"pets"},
//		ExcludeTags: []string{"internal"},
//	})
func GenerateFile(ctx context.Context, opts GenerateFileOptions) error {
	return generator.GenerateFile(ctx, opts)
}

// GenerateFileOptions contains options for GenerateFile
type GenerateFileOptions = generator.GenerateFileOptions

// GenerateFromConfig generates every target of a YAML configuration file.
// Optionally, you can name a single target to generate only that one.
//
// Example:
//
//	// Generate all targets
//	err := swiftgen.GenerateFromConfig("./swiftgen.yaml")
//
//	// Generate only one target
//	err := swiftgen.GenerateFromConfig("./swiftgen.yaml", "PetStore")
func GenerateFromConfig(configPath string, singleTarget ...string) error {
	return generator.GenerateFromConfig(configPath, singleTarget...)
}

// ValidateSpec validates an OpenAPI document against the OpenAPI 3 schema.
//
// Example:
//
//	if err := swiftgen.ValidateSpec("./openapi.yaml"); err != nil {
//		log.Fatalf("Invalid OpenAPI spec: %v", err)
//	}
func ValidateSpec(specPath string) error {
	return generator.ValidateSpec(specPath)
}
