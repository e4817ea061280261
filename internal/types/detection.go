package types

// ScoredCategory pairs a category with its confidence score.
type ScoredCategory struct {
	Category   Category `json:"category"`
	Confidence int      `json:"confidence"`
}

// DetectionResult is the detector's classification of one element.
// It is created once and never mutated afterward.
type DetectionResult struct {
	Category   Category `json:"category"`
	Confidence int      `json:"confidence"`

	// Alternates lists near-tie categories, best first. It is guaranteed
	// non-empty whenever Confidence is below the review threshold.
	Alternates []ScoredCategory `json:"alternates,omitempty"`

	// NeedsReview marks results whose confidence fell below the
	// threshold; the category is still the best guess.
	NeedsReview bool `json:"needs_review,omitempty"`

	// TemplateMode is set when no signals were available at all and the
	// element is documented as a skeleton.
	TemplateMode bool `json:"template_mode,omitempty"`
}
