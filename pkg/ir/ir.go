package ir

import "strings"

// Specification is the decoded, order-preserving view of an API document that the
// Swift emitter consumes. Paths and Schemas keep the declaration order of the source.
type Specification struct {
	OpenAPI string
	Title   string
	Version string
	Paths   []PathItem
	Schemas []NamedSchema
}

// PathItem groups the operations declared under a single URL template.
type PathItem struct {
	Path       string
	Operations []Operation
}

// Operation represents a single API operation (path + method)
type Operation struct {
	ID          string
	Summary     string
	Description string
	Method      string
	Path        string
	Tags        []string
	Deprecated  bool
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   []Response
	// Pointer locates the operation inside the source document, e.g. "#/paths/~1pets/get".
	Pointer string
}

// Parameter is a path, query, header or cookie parameter
type Parameter struct {
	Name        string
	In          string
	Required    bool
	Description string
	Schema      Schema
}

// RequestBody represents a request body
type RequestBody struct {
	ContentType string
	Required    bool
	Description string
	Schema      Schema
}

// Response is one entry of an operation's responses map.
type Response struct {
	Status string
	// Numeric is set when the status key was written as an integer (200) rather than a string ("200").
	Numeric     bool
	Description string
	ContentType string
	Schema      Schema
}

// NamedSchema is a component schema together with its declared name.
type NamedSchema struct {
	Name   string
	Schema Schema
}

// Annotations captures non-structural metadata that generators may render as comments.
type Annotations struct {
	Title       string
	Description string
}

// SchemaKind represents the kind of schema
type SchemaKind string

const (
	KindReference    SchemaKind = "ref"
	KindPrimitive    SchemaKind = "primitive"
	KindArray        SchemaKind = "array"
	KindObject       SchemaKind = "object"
	KindComposed     SchemaKind = "allOf"
	KindEnum         SchemaKind = "enum"
	KindProduct      SchemaKind = "product"
	KindUnrecognized SchemaKind = "unrecognized"
)

// Primitive type names as they appear in the source document.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Schema is a closed tagged union over the schema shapes the generator understands.
// A nil Schema means the schema is absent.
type Schema interface {
	Kind() SchemaKind
	Annotation() Annotations
	sealed()
}

// Reference points at another schema by JSON pointer.
type Reference struct {
	Annotations
	Ref string
}

// Name returns the last path segment of the pointer.
func (r *Reference) Name() string {
	if i := strings.LastIndex(r.Ref, "/"); i >= 0 {
		return r.Ref[i+1:]
	}
	return r.Ref
}

// Primitive is a scalar schema. Type carries whatever the document declared,
// including kinds the generator later rejects.
type Primitive struct {
	Annotations
	Type   string
	Format string
}

// Array is a sequence of Items.
type Array struct {
	Annotations
	Items Schema
}

// Object is an object without declared properties.
type Object struct {
	Annotations
}

// Composed is an allOf composition, variants in declaration order.
type Composed struct {
	Annotations
	AllOf []Schema
}

// Enum is an enumeration of literal values backed by Type.
type Enum struct {
	Annotations
	Type   string
	Values []string
}

// Property is a named member of a Product, in declaration order.
type Property struct {
	Name   string
	Schema Schema
}

// Product is an object with declared properties.
type Product struct {
	Annotations
	Properties []Property
	Required   []string
}

// IsRequired reports whether name is listed in the required set.
func (p *Product) IsRequired(name string) bool {
	for _, r := range p.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Unrecognized keeps the raw node of a shape no other variant matched.
type Unrecognized struct {
	Annotations
	Raw map[string]any
}

func (*Reference) Kind() SchemaKind    { return KindReference }
func (*Primitive) Kind() SchemaKind    { return KindPrimitive }
func (*Array) Kind() SchemaKind        { return KindArray }
func (*Object) Kind() SchemaKind       { return KindObject }
func (*Composed) Kind() SchemaKind     { return KindComposed }
func (*Enum) Kind() SchemaKind         { return KindEnum }
func (*Product) Kind() SchemaKind      { return KindProduct }
func (*Unrecognized) Kind() SchemaKind { return KindUnrecognized }

func (a Annotations) Annotation() Annotations { return a }

func (*Reference) sealed()    {}
func (*Primitive) sealed()    {}
func (*Array) sealed()        {}
func (*Object) sealed()       {}
func (*Composed) sealed()     {}
func (*Enum) sealed()         {}
func (*Product) sealed()      {}
func (*Unrecognized) sealed() {}

// Operations returns every operation in document order.
func (s *Specification) Operations() []Operation {
	var out []Operation
	for _, p := range s.Paths {
		out = append(out, p.Operations...)
	}
	return out
}

// EffectiveTags returns the operation's tags, treating untagged operations as "misc".
func (o Operation) EffectiveTags() []string {
	if len(o.Tags) == 0 {
		return []string{"misc"}
	}
	return o.Tags
}
