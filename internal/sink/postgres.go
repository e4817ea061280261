package sink

import (
	"context"
	"fmt"

	"github.com/jonathan/docforge/internal/db"
	"github.com/jonathan/docforge/internal/types"
	"github.com/jonathan/docforge/internal/validation"
)

// PostgresSink persists the artifacts plus the result envelope through
// the database layer. One transaction per document is the atomicity
// boundary.
type PostgresSink struct {
	database *db.DB
}

// NewPostgresSink creates a sink over an open database handle.
func NewPostgresSink(database *db.DB) *PostgresSink {
	return &PostgresSink{database: database}
}

// Persist stores the document in a single transaction. The validation
// report is recomputed here; it is ephemeral and never trusted from a
// previous stage.
func (s *PostgresSink) Persist(ctx context.Context, elementName string, doc *types.ComposedDocument) error {
	vr := validation.Validate(doc)

	envelope := &types.GenerationResult{
		Success:        true,
		ElementName:    elementName,
		ModulesUsed:    doc.ModulesUsed,
		CompletionRate: doc.CompletionRate,
		ReviewFlags:    doc.ReviewFlags,
		Validation:     vr,
	}

	if _, err := s.database.SaveDocument(ctx, doc, vr, envelope); err != nil {
		return fmt.Errorf("failed to persist document for %s: %w", elementName, err)
	}
	return nil
}
