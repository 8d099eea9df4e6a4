package swift

import (
	"fmt"
	"strings"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
	"github.com/blimu-dev/openapi-swift/pkg/utils"
)

// Param is one associated value of an operation case. The same ordered slice
// drives the case declaration, the switch bindings and the endpoint factory.
type Param struct {
	// Name is the parameter name as declared in the document.
	Name        string
	In          string
	Label       string
	Type        GeneratedType
	Description string
}

// Operation is the Swift-facing model of one (path, method) pair.
type Operation struct {
	ID          string
	Name        string
	Description string
	Method      string
	RawPath     string
	Path        string
	Params      []Param
	// Body is nil when the operation takes no request body. It is already wrapped
	// in an optional unless the body is required.
	Body     *GeneratedType
	Response GeneratedType
}

// BuildOperations builds the operation models of spec in document order.
func BuildOperations(spec *ir.Specification, opts Options) ([]Operation, error) {
	var out []Operation
	for _, item := range spec.Paths {
		for _, op := range item.Operations {
			model, err := buildOperation(op, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, model)
		}
	}
	return out, nil
}

func buildOperation(op ir.Operation, opts Options) (Operation, error) {
	if strings.TrimSpace(op.ID) == "" {
		return Operation{}, &GenerationError{
			Code:     MissingOperationIdentifier,
			Message:  fmt.Sprintf("%s %s has no operationId", strings.ToUpper(op.Method), op.Path),
			Location: op.Pointer,
		}
	}

	model := Operation{
		ID:          op.ID,
		Name:        identifier(utils.Normalize(op.ID)),
		Description: strings.TrimSpace(op.Description),
		Method:      strings.ToUpper(op.Method),
		RawPath:     op.Path,
		Path:        CompilePath(op.Path, interpolate),
	}

	for i, p := range op.Parameters {
		t, err := Resolve(p.Schema)
		if err != nil {
			return Operation{}, at(err, fmt.Sprintf("%s/parameters/%d/schema", op.Pointer, i))
		}
		model.Params = append(model.Params, Param{
			Name:        p.Name,
			In:          p.In,
			Label:       identifier(p.Name),
			Type:        t,
			Description: p.Description,
		})
	}

	if opts.StrictPaths {
		if err := checkPlaceholders(op, model.Params); err != nil {
			return Operation{}, err
		}
	}

	if rb := op.RequestBody; rb != nil {
		body := dynamicType
		if rb.Schema != nil {
			t, err := Resolve(rb.Schema)
			if err != nil {
				return Operation{}, at(err, op.Pointer+"/requestBody")
			}
			body = t
		}
		if !rb.Required {
			body = body.Optional()
		}
		model.Body = &body
	}

	resp, status := successResponse(op.Responses)
	model.Response = voidType
	if resp != nil {
		t, err := Resolve(resp.Schema)
		if err != nil {
			return Operation{}, at(err, fmt.Sprintf("%s/responses/%s", op.Pointer, status))
		}
		model.Response = t
	}

	return model, nil
}

// successResponse returns the response declared under the 200 status key. The
// quoted form is looked up before the numeric one.
func successResponse(responses []ir.Response) (*ir.Response, string) {
	for _, numeric := range []bool{false, true} {
		for i := range responses {
			if r := &responses[i]; r.Status == "200" && r.Numeric == numeric {
				return r, r.Status
			}
		}
	}
	return nil, ""
}

func checkPlaceholders(op ir.Operation, params []Param) error {
	declared := make(map[string]bool, len(params))
	for _, p := range params {
		if p.In == "path" {
			declared[p.Name] = true
		}
	}
	for _, name := range PlaceholderNames(op.Path) {
		if !declared[name] {
			return &GenerationError{
				Code:     UnknownPathParameter,
				Message:  fmt.Sprintf("path %s references {%s}, which is not a declared path parameter of %s", op.Path, name, op.ID),
				Location: op.Pointer,
			}
		}
	}
	return nil
}
