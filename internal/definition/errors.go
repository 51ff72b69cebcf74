package definition

import (
	"errors"
	"fmt"
)

// Errors returned by definition operations.
var (
	// ErrMappingFormat indicates a node declared a malformed mapping.
	ErrMappingFormat = errors.New("malformed mapping")

	// ErrConversion indicates a mapping getter or setter failed.
	ErrConversion = errors.New("configuration conversion failed")

	// ErrMalformedArray indicates a representation failed validation.
	ErrMalformedArray = errors.New("malformed array representation")

	// ErrNoDefaultValue indicates the definition has no default value.
	ErrNoDefaultValue = errors.New("no default value assigned")

	// ErrNotContainer indicates a child operation on a leaf definition.
	ErrNotContainer = errors.New("definition is not a container")

	// ErrForeignArena indicates an attempt to link definitions from different arenas.
	ErrForeignArena = errors.New("definitions belong to different arenas")

	// ErrCycle indicates a link that would make a definition its own ancestor.
	ErrCycle = errors.New("definition cannot become its own ancestor")

	// ErrAddressNotFound indicates an address that resolves to no definition.
	ErrAddressNotFound = errors.New("address not found")
)

// MappingFormatError reports a malformed binding in a node's mapping. It
// signals a bug in the mapping declaration, not bad input data.
type MappingFormatError struct {
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *MappingFormatError) Error() string {
	return fmt.Sprintf(
		"malformed mapping for key %q: %s; each binding needs a key, a get function, a set function and known types",
		e.Key, e.Reason,
	)
}

// Is implements error matching for MappingFormatError.
func (e *MappingFormatError) Is(target error) bool {
	return target == ErrMappingFormat
}

// Operation names the direction of a mapping evaluation.
type Operation string

const (
	OpGet Operation = "get"
	OpSet Operation = "set"
)

// ConversionError reports a failing getter or setter.
type ConversionError struct {
	Key string
	Op  Operation
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot evaluate %s mapping for key %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ConversionError.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// MalformedArrayError wraps the validator failure for a representation
// passed to FromArray.
type MalformedArrayError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *MalformedArrayError) Error() string {
	return fmt.Sprintf("malformed representation for %q: %v", e.Name, e.Err)
}

// Unwrap returns the validator error.
func (e *MalformedArrayError) Unwrap() error {
	return e.Err
}

// Is implements error matching for MalformedArrayError.
func (e *MalformedArrayError) Is(target error) bool {
	return target == ErrMalformedArray
}

// DefaultValueError is returned by DefaultValue when none is assigned.
type DefaultValueError struct {
	Name string
}

// Error implements the error interface.
func (e *DefaultValueError) Error() string {
	return fmt.Sprintf("no default value assigned to %q, check HasDefaultValue first", e.Name)
}

// Is implements error matching for DefaultValueError.
func (e *DefaultValueError) Is(target error) bool {
	return target == ErrNoDefaultValue
}
