package swift

import "fmt"

// TypeKind is the shape of a resolved Swift type.
type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypePrimitive
	TypeNamed
	TypeSequence
	TypeOptional
	TypeDynamic
)

// GeneratedType is a resolved Swift type. It is a value; resolving the same schema
// twice yields equal values.
type GeneratedType struct {
	Kind TypeKind
	// Name is set for primitive and named types.
	Name string
	// Annotation carries an unrecognized format, rendered as a trailing comment.
	Annotation string
	// Element is the wrapped type of sequences and optionals.
	Element *GeneratedType
}

var (
	voidType    = GeneratedType{Kind: TypeVoid}
	dynamicType = GeneratedType{Kind: TypeDynamic}
)

func primitive(name string) GeneratedType {
	return GeneratedType{Kind: TypePrimitive, Name: name}
}

func named(name string) GeneratedType {
	return GeneratedType{Kind: TypeNamed, Name: name}
}

func sequenceOf(elem GeneratedType) GeneratedType {
	return GeneratedType{Kind: TypeSequence, Element: &elem}
}

// Optional wraps t unless it is already optional.
func (t GeneratedType) Optional() GeneratedType {
	if t.Kind == TypeOptional {
		return t
	}
	return GeneratedType{Kind: TypeOptional, Element: &t}
}

// IsVoid reports whether t is the unit type.
func (t GeneratedType) IsVoid() bool {
	return t.Kind == TypeVoid
}

// String renders t as Swift source.
func (t GeneratedType) String() string {
	switch t.Kind {
	case TypeVoid:
		return "Void"
	case TypeDynamic:
		return "Any"
	case TypeNamed:
		return t.Name
	case TypePrimitive:
		return t.Name + comment(t.Annotation)
	case TypeSequence:
		return "[" + t.Element.String() + "]"
	case TypeOptional:
		// The marker has to touch the type name, so an annotation moves behind it.
		if e := t.Element; e.Kind == TypePrimitive {
			return e.Name + "?" + comment(e.Annotation)
		}
		return t.Element.String() + "?"
	}
	return fmt.Sprintf("<invalid type kind %d>", t.Kind)
}

func comment(annotation string) string {
	if annotation == "" {
		return ""
	}
	return "/* " + annotation + " */"
}
