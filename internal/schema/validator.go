package schema

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("representation validation failed")

// Validator checks a candidate representation against a Schema and returns
// the normalized representation.
type Validator interface {
	Validate(s Schema, candidate map[string]any) (map[string]any, error)
}

// Resolver is the default Validator. It performs the strict key and type
// checks of Schema and returns a shallow copy of the candidate.
type Resolver struct{}

// NewValidator returns the default Validator.
func NewValidator() Validator {
	return Resolver{}
}

// Validate implements Validator.
func (Resolver) Validate(s Schema, candidate map[string]any) (map[string]any, error) {
	if err := s.check(candidate); err != nil {
		return nil, err
	}
	return maps.Clone(candidate), nil
}

// ErrorCode categorizes validation failures.
type ErrorCode uint8

const (
	// CodeUndefinedOption indicates a key the schema does not define.
	CodeUndefinedOption ErrorCode = iota
	// CodeMissingOption indicates a required option is absent.
	CodeMissingOption
	// CodeInvalidType indicates a value of a type the option does not allow.
	CodeInvalidType
)

// String returns a short name for the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeUndefinedOption:
		return "undefined_option"
	case CodeMissingOption:
		return "missing_option"
	case CodeInvalidType:
		return "invalid_type"
	default:
		return "unknown"
	}
}

// ValidationError describes why a representation was rejected.
type ValidationError struct {
	// Option is the offending key.
	Option string
	Code   ErrorCode
	// Value is the rejected value for CodeInvalidType.
	Value any
	// Expected and Actual are set for CodeInvalidType.
	Expected []Type
	Actual   []Type
	// Defined lists the schema's keys for CodeUndefinedOption.
	Defined []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeUndefinedOption:
		return fmt.Sprintf("The option %q does not exist. Defined options are: %s.", e.Option, quoteJoin(e.Defined))
	case CodeMissingOption:
		return fmt.Sprintf("The required option %q is missing.", e.Option)
	case CodeInvalidType:
		actual := Null
		if len(e.Actual) > 0 {
			actual = e.Actual[0]
		}
		return fmt.Sprintf("The option %q with value %s is expected to be of type %s, but is of type %q.",
			e.Option, formatValue(e.Value), typeList(e.Expected), actual)
	default:
		return fmt.Sprintf("The option %q is invalid.", e.Option)
	}
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

func typeList(types []Type) string {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = fmt.Sprintf("%q", string(t))
	}
	return strings.Join(quoted, " or ")
}

// formatValue renders a value for an error message without dumping
// large structures.
func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q", rv.String())
	case reflect.Bool:
		return fmt.Sprintf("%t", rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%v", v)
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map:
		return "map"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return "object"
	default:
		return "object"
	}
}
