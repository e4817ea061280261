// Package provider supplies per-element signal records from the
// code-intelligence index. The pipeline only consumes these records; it
// never parses source code itself.
package provider

import (
	"context"
	"errors"

	"github.com/jonathan/docforge/internal/types"
)

// ErrNotFound signals that the index has no record for the requested
// element. The pipeline treats it as template mode, not as a failure.
var ErrNotFound = errors.New("element signals not found")

// Provider resolves one named element to its signal record.
type Provider interface {
	Signals(ctx context.Context, name string) (*types.ElementSignals, error)
}
