// Package sink persists the three composed artifacts for one element.
// Every implementation owns the atomic-write guarantee: all artifacts
// become visible together or not at all.
package sink

import (
	"context"

	"github.com/jonathan/docforge/internal/types"
)

// Sink persists one composed document.
type Sink interface {
	Persist(ctx context.Context, elementName string, doc *types.ComposedDocument) error
}
