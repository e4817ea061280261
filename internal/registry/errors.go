// Package registry loads and validates the static documentation-module
// registry. The registry is read once at startup and is immutable for the
// remainder of the process lifetime; it is the only supported extension
// point for new documentation modules.
package registry

import "fmt"

// LoadError represents a fatal registry loading failure. A malformed
// registry refuses to load rather than running partially.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry load error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("registry load error (%s): %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
