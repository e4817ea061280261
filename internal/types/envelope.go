package types

// GenerationResult is the envelope handed back to the dispatch layer
// after a pipeline run. On failure no partial artifacts are exposed:
// Document is nil and Error carries the reason.
type GenerationResult struct {
	Success        bool              `json:"success"`
	ElementName    string            `json:"element_name"`
	Detection      *DetectionResult  `json:"detection,omitempty"`
	Selection      *SelectionResult  `json:"selection,omitempty"`
	Document       *ComposedDocument `json:"document,omitempty"`
	ModulesUsed    []string          `json:"modules_used,omitempty"`
	CompletionRate int               `json:"completion_rate"`
	ReviewFlags    []ReviewFlag      `json:"review_flags,omitempty"`
	Validation     *ValidationResult `json:"validation,omitempty"`
	Error          string            `json:"error,omitempty"`
}
