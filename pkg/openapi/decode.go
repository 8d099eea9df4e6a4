package openapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

// httpMethods are the path item keys that declare operations, in OpenAPI order.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// Decode parses a YAML or JSON OpenAPI 3 document into an ir.Specification.
//
// The document is walked as a yaml.Node tree so that paths, methods, schemas and
// properties keep their declaration order. Schemas are classified once here:
//
//	$ref                   -> Reference
//	enum                   -> Enum
//	type: array            -> Array (missing items -> [Any])
//	type: object           -> Product with properties, Object without
//	any other type         -> Primitive
//	allOf (no type)        -> Composed
//	properties (no type)   -> Product
//	anything else          -> Unrecognized
func Decode(data []byte) (*ir.Specification, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("parse spec: %v", err), Cause: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &SpecError{Code: ParseError, Message: "spec: document is empty"}
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &SpecError{Code: ParseError, Message: "spec: top level must be a mapping"}
	}

	d := &decoder{root: root}
	version, err := d.version()
	if err != nil {
		return nil, err
	}

	spec := &ir.Specification{OpenAPI: version}
	if info := lookup(root, "info"); info != nil {
		spec.Title = scalar(lookup(info, "title"))
		spec.Version = scalar(lookup(info, "version"))
	}

	if err := d.paths(spec); err != nil {
		return nil, err
	}
	if schemas := lookup(lookup(root, "components"), "schemas"); schemas != nil {
		err := eachPair(schemas, func(key, value *yaml.Node) error {
			spec.Schemas = append(spec.Schemas, ir.NamedSchema{
				Name:   key.Value,
				Schema: d.schema(value),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return spec, nil
}

type decoder struct {
	root *yaml.Node
}

func (d *decoder) version() (string, error) {
	raw := scalar(lookup(d.root, "openapi"))
	if raw == "" {
		if sw := scalar(lookup(d.root, "swagger")); sw != "" {
			return "", &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: swagger %s documents are not supported, convert to OpenAPI 3 first", sw)}
		}
		return "", &SpecError{Code: ParseError, Message: "spec: missing 'openapi' version field"}
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return "", &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: invalid openapi version %q", raw), JSONPointer: "#/openapi", Cause: err}
	}
	if v.Major() != 3 {
		return "", &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: unsupported openapi version %s (expected 3.x)", raw), JSONPointer: "#/openapi"}
	}
	return raw, nil
}

func (d *decoder) paths(spec *ir.Specification) error {
	paths := lookup(d.root, "paths")
	if paths == nil {
		return nil
	}
	return eachPair(paths, func(key, item *yaml.Node) error {
		pointer := "#/paths/" + escapePointer(key.Value)
		item, err := d.deref(item, pointer)
		if err != nil {
			return err
		}

		shared, err := d.parameters(lookup(item, "parameters"), pointer+"/parameters")
		if err != nil {
			return err
		}

		entry := ir.PathItem{Path: key.Value}
		err = eachPair(item, func(methodKey, opNode *yaml.Node) error {
			method := strings.ToLower(methodKey.Value)
			if !httpMethods[method] {
				return nil
			}
			op, err := d.operation(key.Value, method, opNode, shared, pointer+"/"+method)
			if err != nil {
				return err
			}
			entry.Operations = append(entry.Operations, op)
			return nil
		})
		if err != nil {
			return err
		}
		spec.Paths = append(spec.Paths, entry)
		return nil
	})
}

func (d *decoder) operation(path, method string, n *yaml.Node, shared []ir.Parameter, pointer string) (ir.Operation, error) {
	n = resolveAlias(n)
	op := ir.Operation{
		ID:          scalar(lookup(n, "operationId")),
		Summary:     scalar(lookup(n, "summary")),
		Description: scalar(lookup(n, "description")),
		Method:      method,
		Path:        path,
		Deprecated:  boolean(lookup(n, "deprecated")),
		Pointer:     pointer,
	}
	for _, t := range items(lookup(n, "tags")) {
		op.Tags = append(op.Tags, scalar(t))
	}

	own, err := d.parameters(lookup(n, "parameters"), pointer+"/parameters")
	if err != nil {
		return ir.Operation{}, err
	}
	op.Parameters = mergeParameters(shared, own)

	if rb := lookup(n, "requestBody"); rb != nil {
		body, err := d.requestBody(rb, pointer+"/requestBody")
		if err != nil {
			return ir.Operation{}, err
		}
		op.RequestBody = body
	}

	if responses := lookup(n, "responses"); responses != nil {
		err := eachPair(responses, func(key, value *yaml.Node) error {
			resp, err := d.response(key, value, pointer+"/responses/"+escapePointer(key.Value))
			if err != nil {
				return err
			}
			op.Responses = append(op.Responses, resp)
			return nil
		})
		if err != nil {
			return ir.Operation{}, err
		}
	}
	return op, nil
}

func (d *decoder) parameters(n *yaml.Node, pointer string) ([]ir.Parameter, error) {
	var out []ir.Parameter
	for i, item := range items(n) {
		p, err := d.deref(item, fmt.Sprintf("%s/%d", pointer, i))
		if err != nil {
			return nil, err
		}
		param := ir.Parameter{
			Name:        scalar(lookup(p, "name")),
			In:          scalar(lookup(p, "in")),
			Required:    boolean(lookup(p, "required")),
			Description: scalar(lookup(p, "description")),
		}
		if s := lookup(p, "schema"); s != nil {
			param.Schema = d.schema(s)
		} else if _, media := firstMedia(lookup(p, "content")); media != nil {
			param.Schema = d.schema(lookup(media, "schema"))
		}
		out = append(out, param)
	}
	return out, nil
}

// mergeParameters applies operation-level parameters over path-level ones. A parameter
// with the same name and location replaces the shared one in place; others are appended.
func mergeParameters(shared, own []ir.Parameter) []ir.Parameter {
	if len(shared) == 0 {
		return own
	}
	merged := make([]ir.Parameter, len(shared), len(shared)+len(own))
	copy(merged, shared)
	for _, p := range own {
		replaced := false
		for i := range merged {
			if merged[i].Name == p.Name && merged[i].In == p.In {
				merged[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, p)
		}
	}
	return merged
}

func (d *decoder) requestBody(n *yaml.Node, pointer string) (*ir.RequestBody, error) {
	n, err := d.deref(n, pointer)
	if err != nil {
		return nil, err
	}
	body := &ir.RequestBody{
		Required:    boolean(lookup(n, "required")),
		Description: scalar(lookup(n, "description")),
	}
	content := lookup(n, "content")
	contentType, media := jsonMedia(content)
	if media == nil {
		contentType, media = firstMedia(content)
	}
	body.ContentType = contentType
	if media != nil {
		body.Schema = d.schema(lookup(media, "schema"))
	}
	return body, nil
}

func (d *decoder) response(key, n *yaml.Node, pointer string) (ir.Response, error) {
	n, err := d.deref(n, pointer)
	if err != nil {
		return ir.Response{}, err
	}
	resp := ir.Response{
		Status:      key.Value,
		Numeric:     key.ShortTag() == "!!int",
		Description: scalar(lookup(n, "description")),
	}
	if contentType, media := jsonMedia(lookup(n, "content")); media != nil {
		resp.ContentType = contentType
		resp.Schema = d.schema(lookup(media, "schema"))
	}
	return resp, nil
}

// schema classifies n into exactly one ir.Schema variant. A nil node yields nil.
func (d *decoder) schema(n *yaml.Node) ir.Schema {
	n = resolveAlias(n)
	if n == nil {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return &ir.Unrecognized{Raw: map[string]any{"value": scalar(n)}}
	}

	ann := ir.Annotations{
		Title:       scalar(lookup(n, "title")),
		Description: scalar(lookup(n, "description")),
	}

	if ref := lookup(n, "$ref"); ref != nil {
		return &ir.Reference{Annotations: ann, Ref: scalar(ref)}
	}

	typ := typeName(lookup(n, "type"))

	if enum := lookup(n, "enum"); enum != nil {
		e := &ir.Enum{Annotations: ann, Type: typ}
		allStrings := true
		for _, v := range items(enum) {
			if v.ShortTag() == "!!null" {
				continue
			}
			if v.ShortTag() != "!!str" {
				allStrings = false
			}
			e.Values = append(e.Values, scalar(v))
		}
		if e.Type == "" && allStrings {
			e.Type = ir.TypeString
		}
		return e
	}

	switch typ {
	case "":
	case ir.TypeArray:
		elem := d.schema(lookup(n, "items"))
		if elem == nil {
			elem = &ir.Object{}
		}
		return &ir.Array{Annotations: ann, Items: elem}
	case ir.TypeObject:
		if props := lookup(n, "properties"); props != nil {
			return d.product(n, props, ann)
		}
		return &ir.Object{Annotations: ann}
	default:
		return &ir.Primitive{Annotations: ann, Type: typ, Format: scalar(lookup(n, "format"))}
	}

	if allOf := lookup(n, "allOf"); allOf != nil {
		c := &ir.Composed{Annotations: ann}
		for _, v := range items(allOf) {
			c.AllOf = append(c.AllOf, d.schema(v))
		}
		return c
	}
	if props := lookup(n, "properties"); props != nil {
		return d.product(n, props, ann)
	}

	raw := map[string]any{}
	_ = n.Decode(&raw)
	return &ir.Unrecognized{Annotations: ann, Raw: raw}
}

func (d *decoder) product(n, props *yaml.Node, ann ir.Annotations) *ir.Product {
	p := &ir.Product{Annotations: ann}
	_ = eachPair(props, func(key, value *yaml.Node) error {
		p.Properties = append(p.Properties, ir.Property{Name: key.Value, Schema: d.schema(value)})
		return nil
	})
	for _, r := range items(lookup(n, "required")) {
		p.Required = append(p.Required, scalar(r))
	}
	return p
}

// deref follows a local $ref on a parameter, request body, response or path item.
func (d *decoder) deref(n *yaml.Node, pointer string) (*yaml.Node, error) {
	n = resolveAlias(n)
	for depth := 0; n != nil; depth++ {
		ref := lookup(n, "$ref")
		if ref == nil {
			return n, nil
		}
		if depth > 32 {
			return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: $ref chain too deep at %s", pointer), JSONPointer: pointer}
		}
		target := scalar(ref)
		if !strings.HasPrefix(target, "#/") {
			return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: external $ref %q is not supported", target), JSONPointer: pointer}
		}
		next := d.resolvePointer(target)
		if next == nil {
			return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: $ref %q does not resolve", target), JSONPointer: pointer}
		}
		n = next
	}
	return n, nil
}

func (d *decoder) resolvePointer(pointer string) *yaml.Node {
	n := d.root
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "#/"), "/") {
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		n = resolveAlias(n)
		switch {
		case n == nil:
			return nil
		case n.Kind == yaml.MappingNode:
			n = lookup(n, token)
		case n.Kind == yaml.SequenceNode:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(n.Content) {
				return nil
			}
			n = n.Content[i]
		default:
			return nil
		}
	}
	return resolveAlias(n)
}

// jsonMedia picks application/json, then any other JSON media type, from a content map.
func jsonMedia(content *yaml.Node) (string, *yaml.Node) {
	if media := lookup(content, "application/json"); media != nil {
		return "application/json", media
	}
	var name string
	var found *yaml.Node
	_ = eachPair(content, func(key, value *yaml.Node) error {
		ct := strings.ToLower(key.Value)
		if found == nil && (strings.HasPrefix(ct, "application/json") || strings.HasSuffix(ct, "+json")) {
			name, found = key.Value, value
		}
		return nil
	})
	return name, found
}

func firstMedia(content *yaml.Node) (string, *yaml.Node) {
	content = resolveAlias(content)
	if content == nil || content.Kind != yaml.MappingNode || len(content.Content) < 2 {
		return "", nil
	}
	return content.Content[0].Value, resolveAlias(content.Content[1])
}

// typeName reads a type keyword. OpenAPI 3.1 type lists yield their first non-null entry.
func typeName(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil {
		return ""
	}
	if n.Kind == yaml.SequenceNode {
		for _, t := range n.Content {
			if v := scalar(t); v != "null" {
				return v
			}
		}
		return ""
	}
	return scalar(n)
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	m = resolveAlias(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}

func eachPair(m *yaml.Node, fn func(key, value *yaml.Node) error) error {
	m = resolveAlias(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if err := fn(m.Content[i], resolveAlias(m.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func items(n *yaml.Node) []*yaml.Node {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

func scalar(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func boolean(n *yaml.Node) bool {
	var b bool
	if n = resolveAlias(n); n == nil || n.Decode(&b) != nil {
		return false
	}
	return b
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(token string) string {
	return pointerEscaper.Replace(token)
}
