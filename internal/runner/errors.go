package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTestableSchemes is returned when scheme discovery finds nothing to
// test. Zero invocations occur.
var ErrNoTestableSchemes = errors.New("no testable schemes found")

// SchemeNotFoundError is returned when a named scheme is absent from the
// testable set. The message lists what was found so the operator can correct
// the input.
type SchemeNotFoundError struct {
	Scheme    string
	Available []string
}

func (e *SchemeNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("scheme '%s' not found: the project has no testable schemes", e.Scheme)
	}
	return fmt.Sprintf("scheme '%s' not found: testable schemes are %s", e.Scheme, strings.Join(e.Available, ", "))
}

// InvocationError wraps a build-tool failure for one scheme. It aborts the
// remaining scheme list: results built on an unclean workspace state after a
// failure would not be trustworthy.
type InvocationError struct {
	Scheme string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("testing scheme '%s' failed: %v", e.Scheme, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
