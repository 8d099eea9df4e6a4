package swift

import (
	"errors"
	"fmt"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

// ErrorCode categorizes generation failures.
type ErrorCode string

const (
	UnresolvableSchema         ErrorCode = "UnresolvableSchema"
	InvalidEnumBacking         ErrorCode = "InvalidEnumBacking"
	MissingOperationIdentifier ErrorCode = "MissingOperationIdentifier"
	UnknownPathParameter       ErrorCode = "UnknownPathParameter"
)

var (
	ErrUnresolvableSchema   = errors.New("unresolvable schema")
	ErrInvalidEnumBacking   = errors.New("invalid enum backing type")
	ErrMissingOperationID   = errors.New("missing operationId")
	ErrUnknownPathParameter = errors.New("unknown path parameter")
)

// GenerationError is returned by every failing stage of the emitter. No partial
// output accompanies it.
type GenerationError struct {
	Code    ErrorCode
	Message string
	// Location is a JSON pointer into the source document when known.
	Location string
	// Schema is the offending schema node, if any.
	Schema ir.Schema
}

func (e *GenerationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Message)
	}
	return e.Message
}

// Is matches the sentinel for the error's code.
func (e *GenerationError) Is(target error) bool {
	switch e.Code {
	case UnresolvableSchema:
		return target == ErrUnresolvableSchema
	case InvalidEnumBacking:
		return target == ErrInvalidEnumBacking
	case MissingOperationIdentifier:
		return target == ErrMissingOperationID
	case UnknownPathParameter:
		return target == ErrUnknownPathParameter
	}
	return false
}

func newError(code ErrorCode, schema ir.Schema, format string, args ...any) *GenerationError {
	return &GenerationError{Code: code, Message: fmt.Sprintf(format, args...), Schema: schema}
}

// at fills in the location of err when it is a GenerationError that does not know
// where it came from yet. Other errors pass through.
func at(err error, location string) error {
	var ge *GenerationError
	if errors.As(err, &ge) && ge.Location == "" {
		ge.Location = location
	}
	return err
}
