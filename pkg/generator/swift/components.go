package swift

import (
	"strings"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
	"github.com/blimu-dev/openapi-swift/pkg/utils"
)

// ComponentKind selects the Swift declaration a named schema turns into.
type ComponentKind string

const (
	ComponentEnum      ComponentKind = "enum"
	ComponentTypealias ComponentKind = "typealias"
	ComponentStruct    ComponentKind = "struct"
)

// Component is one declaration derived from components.schemas.
type Component struct {
	Kind        ComponentKind
	Name        string
	Description string
	// Cases is set for enums.
	Cases []EnumCase
	// Type is set for typealiases.
	Type GeneratedType
	// Fields is set for structs, in declared property order.
	Fields []Field
}

// EnumCase pairs a Swift case name with the raw value it is serialized as.
type EnumCase struct {
	Name  string
	Value string
}

// Field is a stored property of a struct together with its CodingKeys entry.
type Field struct {
	Name        string
	Key         string
	Type        GeneratedType
	Description string
}

// BuildComponents builds one declaration per named schema, in declaration order.
func BuildComponents(spec *ir.Specification) ([]Component, error) {
	out := make([]Component, 0, len(spec.Schemas))
	for _, named := range spec.Schemas {
		c, err := buildComponent(named)
		if err != nil {
			return nil, at(err, "#/components/schemas/"+escapePointer(named.Name))
		}
		out = append(out, c)
	}
	return out, nil
}

func buildComponent(named ir.NamedSchema) (Component, error) {
	c := Component{Name: named.Name}
	if named.Schema == nil {
		c.Kind = ComponentTypealias
		c.Type = voidType
		return c, nil
	}
	c.Description = strings.TrimSpace(named.Schema.Annotation().Description)

	switch s := named.Schema.(type) {
	case *ir.Enum:
		if s.Type != ir.TypeString {
			return Component{}, newError(InvalidEnumBacking, s, "enum %s must be backed by string, got %q", named.Name, s.Type)
		}
		c.Kind = ComponentEnum
		for _, v := range s.Values {
			c.Cases = append(c.Cases, EnumCase{Name: identifier(utils.Normalize(v)), Value: v})
		}
	case *ir.Product:
		c.Kind = ComponentStruct
		for _, p := range s.Properties {
			f, err := buildField(s, p)
			if err != nil {
				return Component{}, at(err, "#/components/schemas/"+escapePointer(named.Name)+"/properties/"+escapePointer(p.Name))
			}
			c.Fields = append(c.Fields, f)
		}
	case *ir.Object:
		c.Kind = ComponentStruct
	default:
		t, err := Resolve(s)
		if err != nil {
			return Component{}, err
		}
		c.Kind = ComponentTypealias
		c.Type = t
	}
	return c, nil
}

func buildField(owner *ir.Product, p ir.Property) (Field, error) {
	t, err := Resolve(p.Schema)
	if err != nil {
		return Field{}, err
	}
	if !owner.IsRequired(p.Name) {
		t = t.Optional()
	}
	f := Field{
		Name: identifier(utils.Normalize(p.Name)),
		Key:  p.Name,
		Type: t,
	}
	if p.Schema != nil {
		f.Description = strings.TrimSpace(p.Schema.Annotation().Description)
	}
	return f, nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(token string) string {
	return pointerEscaper.Replace(token)
}
