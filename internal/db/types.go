package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/docforge/internal/types"
)

// Run represents one generation run record.
type Run struct {
	ID             uuid.UUID      `json:"id"`
	ElementName    string         `json:"element_name"`
	Category       types.Category `json:"category"`
	Status         string         `json:"status"`
	Verdict        types.Verdict  `json:"verdict,omitempty"`
	Score          int            `json:"score"`
	CompletionRate int            `json:"completion_rate"`
	CreatedAt      time.Time      `json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

// Run status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for the three composed outputs and the
// result envelope.
const (
	StepNarrative  = "narrative"
	StepSchema     = "schema"
	StepAnnotation = "annotation"
	StepEnvelope   = "envelope"
)
