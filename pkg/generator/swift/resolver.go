package swift

import (
	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

// Resolve maps a schema to its Swift type. A nil schema resolves to Void.
//
// References resolve to the basename of their pointer as written. allOf resolves
// to its first variant only; later variants are ignored.
func Resolve(schema ir.Schema) (GeneratedType, error) {
	if schema == nil {
		return voidType, nil
	}

	switch s := schema.(type) {
	case *ir.Reference:
		return named(s.Name()), nil
	case *ir.Primitive:
		return resolvePrimitive(s)
	case *ir.Enum:
		if s.Type != ir.TypeString {
			return GeneratedType{}, newError(InvalidEnumBacking, s, "enum must be backed by string, got %q", s.Type)
		}
		return primitive("String"), nil
	case *ir.Array:
		elem, err := Resolve(s.Items)
		if err != nil {
			return GeneratedType{}, err
		}
		return sequenceOf(elem), nil
	case *ir.Object, *ir.Product:
		return dynamicType, nil
	case *ir.Composed:
		if len(s.AllOf) == 0 {
			return GeneratedType{}, newError(UnresolvableSchema, s, "allOf has no variants")
		}
		return Resolve(s.AllOf[0])
	case *ir.Unrecognized:
		return GeneratedType{}, newError(UnresolvableSchema, s, "unsupported schema shape")
	}
	return GeneratedType{}, newError(UnresolvableSchema, schema, "unsupported schema kind %q", schema.Kind())
}

func resolvePrimitive(p *ir.Primitive) (GeneratedType, error) {
	switch p.Type {
	case ir.TypeString:
		switch p.Format {
		case "":
			return primitive("String"), nil
		case "uuid":
			return primitive("UUID"), nil
		case "byte":
			return primitive("Data"), nil
		}
		return GeneratedType{Kind: TypePrimitive, Name: "String", Annotation: p.Format}, nil
	case ir.TypeInteger:
		switch p.Format {
		case "":
			return primitive("Int"), nil
		case "int32":
			return primitive("Int32"), nil
		case "int64":
			return primitive("Int64"), nil
		}
		return GeneratedType{Kind: TypePrimitive, Name: "Int", Annotation: p.Format}, nil
	case ir.TypeBoolean:
		return primitive("Bool"), nil
	}
	return GeneratedType{}, newError(UnresolvableSchema, p, "unsupported primitive type %q", p.Type)
}
