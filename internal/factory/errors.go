package factory

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRepresentation is matched by every
// *UnsupportedRepresentationError.
var ErrUnsupportedRepresentation = errors.New("unsupported representation")

// UnsupportedRepresentationError reports a candidate no factory accepts. Key
// names the entry of the nested representation when known.
type UnsupportedRepresentationError struct {
	Key string
}

// Error implements the error interface.
func (e *UnsupportedRepresentationError) Error() string {
	if e.Key == "" {
		return "no factory supporting the given representation"
	}
	return fmt.Sprintf("unsupported representation given for key %q", e.Key)
}

// Is implements error matching for UnsupportedRepresentationError.
func (e *UnsupportedRepresentationError) Is(target error) bool {
	return target == ErrUnsupportedRepresentation
}
