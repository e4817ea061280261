// Package composition merges the selected modules' template fragments
// and extracted field data into three synchronized artifacts.
package composition

import "fmt"

// CollisionError is the hard composition error raised when two modules'
// schema fragments contribute the same key. Failing loud here preserves
// the synchronized-output invariant; silent overwrite would not.
type CollisionError struct {
	Key          string
	FirstModule  string
	SecondModule string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("schema key collision on %q between modules %q and %q",
		e.Key, e.FirstModule, e.SecondModule)
}

// ComposeError wraps any other fault that aborts composition. Because
// composition is all-or-nothing, a ComposeError means zero artifacts
// were produced.
type ComposeError struct {
	Module  string
	Message string
	Cause   error
}

func (e *ComposeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("composition error in module %q: %s: %v", e.Module, e.Message, e.Cause)
	}
	return fmt.Sprintf("composition error in module %q: %s", e.Module, e.Message)
}

func (e *ComposeError) Unwrap() error {
	return e.Cause
}
