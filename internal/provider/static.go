package provider

import (
	"context"

	"github.com/jonathan/docforge/internal/types"
)

// StaticProvider serves signal records from an in-memory map. Used by
// tests and by callers that already hold the records.
type StaticProvider struct {
	records map[string]*types.ElementSignals
}

// NewStaticProvider creates a provider over the given records.
func NewStaticProvider(records map[string]*types.ElementSignals) *StaticProvider {
	return &StaticProvider{records: records}
}

// Signals returns the stored record or ErrNotFound.
func (p *StaticProvider) Signals(ctx context.Context, name string) (*types.ElementSignals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sig, ok := p.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	return sig, nil
}
