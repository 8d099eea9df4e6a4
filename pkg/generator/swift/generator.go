package swift

import (
	"unicode"
	"unicode/utf8"

	"github.com/blimu-dev/openapi-swift/pkg/config"
	"github.com/blimu-dev/openapi-swift/pkg/ir"
	"github.com/blimu-dev/openapi-swift/pkg/utils"
)

// FallbackName is the container name used when the document has no usable title.
const FallbackName = "API"

// SwiftGenerator renders a target as one Swift source file.
type SwiftGenerator struct{}

// NewSwiftGenerator creates a new Swift generator
func NewSwiftGenerator() *SwiftGenerator {
	return &SwiftGenerator{}
}

// GetType returns the generator type identifier
func (g *SwiftGenerator) GetType() string {
	return "swift"
}

// Generate renders spec with the target's name, indentation and path checking.
func (g *SwiftGenerator) Generate(target config.Target, spec *ir.Specification) ([]byte, error) {
	name := target.Name
	if name == "" {
		name = ContainerName(spec)
	}
	out, err := Emit(spec, Options{
		Name:        name,
		Indent:      target.Indent,
		StrictPaths: target.StrictPaths,
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// ContainerName derives a Swift type name from the document title.
func ContainerName(spec *ir.Specification) string {
	if spec == nil {
		return FallbackName
	}
	name := utils.ToPascalCase(spec.Title)
	if name == "" {
		return FallbackName
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		return FallbackName + name
	}
	return name
}
