package swift

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

//go:embed templates/*
var templatesFS embed.FS

// DefaultIndent is used when no indentation unit is given.
const DefaultIndent = "    "

// Options configures a generation run.
type Options struct {
	// Name is the enclosing declaration, e.g. "PetStore".
	Name string
	// Indent is repeated once per nesting level.
	Indent string
	// StrictPaths rejects path placeholders that are not declared path parameters.
	StrictPaths bool
}

// Generate renders spec as a single Swift source file wrapped in `enum containerName`.
// An empty indentUnit means four spaces. On error no text is returned.
func Generate(spec *ir.Specification, containerName, indentUnit string) (string, error) {
	return Emit(spec, Options{Name: containerName, Indent: indentUnit})
}

// Emit is Generate with the full set of options.
func Emit(spec *ir.Specification, opts Options) (string, error) {
	unit, err := Assemble(spec, opts)
	if err != nil {
		return "", err
	}
	return unit.Render(), nil
}

// Assemble builds the ordered fragments for spec without concatenating them.
func Assemble(spec *ir.Specification, opts Options) (*Unit, error) {
	if spec == nil {
		return nil, fmt.Errorf("swift: specification is nil")
	}
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}

	operations, err := BuildOperations(spec, opts)
	if err != nil {
		return nil, err
	}
	components, err := BuildComponents(spec)
	if err != nil {
		return nil, err
	}

	tmpl, err := parseTemplates(opts.Indent)
	if err != nil {
		return nil, err
	}

	unit := &Unit{}
	unit.Append(Fragment{Kind: FragmentOpen, Text: "enum " + opts.Name + " {\n"})

	data := map[string]any{"Operations": operations}
	for _, step := range []struct {
		kind FragmentKind
		name string
	}{
		{FragmentOperationCases, "operation_cases"},
		{FragmentPathFunction, "path_function"},
		{FragmentEndpoints, "endpoints"},
	} {
		text, err := render(tmpl, step.name, data)
		if err != nil {
			return nil, err
		}
		unit.Append(Fragment{Kind: step.kind, Text: text})
	}

	for _, c := range components {
		text, err := render(tmpl, string(c.Kind), c)
		if err != nil {
			return nil, err
		}
		unit.Append(Fragment{Kind: FragmentComponent, Name: c.Name, Text: "\n" + text})
	}

	unit.Append(Fragment{Kind: FragmentClose, Text: "}\n"})
	return unit, nil
}

func parseTemplates(indent string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"ind":         func(level int) string { return strings.Repeat(indent, level) },
		"swiftString": swiftString,
	}
	for k, v := range sprig.TxtFuncMap() {
		if _, ok := funcMap[k]; !ok {
			funcMap[k] = v
		}
	}
	tmpl, err := template.New("swift").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse swift templates: %w", err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
