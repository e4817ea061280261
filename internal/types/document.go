package types

import "time"

// SchemaValue is one leaf of the merged schema artifact. Generated marks
// values that came out of a module's field extraction; manual values keep
// Generated false and surface in review flags instead.
type SchemaValue struct {
	Value     string `json:"value"`
	Generated bool   `json:"generated"`
}

// ReviewFlag names one section of the composed output that still
// requires manual input, with the prompt shown to the author.
type ReviewFlag struct {
	Module  string `json:"module"`
	Section string `json:"section"`
	Prompt  string `json:"prompt"`
}

// Provenance records who produced a document and when. The timestamp
// lives here, outside the generated-content regions, so composition
// stays byte-deterministic over the three artifacts.
type Provenance struct {
	GeneratedAt      time.Time `json:"generated_at"`
	GeneratorVersion string    `json:"generator_version"`
}

// ComposedDocument holds the three synchronized artifacts for one
// element. All three are produced from a single selection and extraction
// pass; ModulesUsed is set-equal across them by construction.
type ComposedDocument struct {
	ElementName string   `json:"element_name"`
	Category    Category `json:"category"`

	ModulesUsed []string               `json:"modules_used"`
	Narrative   string                 `json:"narrative"`
	Schema      map[string]SchemaValue `json:"schema"`
	Annotation  string                 `json:"annotation"`

	// CompletionRate is measured from generated-content markers in the
	// composed artifacts, not copied from the selection estimate.
	CompletionRate int `json:"completion_rate"`

	ReviewFlags []ReviewFlag `json:"review_flags,omitempty"`

	// DegradedModules lists modules whose extraction failed and were
	// composed with an empty field set.
	DegradedModules []string `json:"degraded_modules,omitempty"`

	Provenance Provenance `json:"provenance"`
}

// UsedModule reports whether the module id contributed to this document.
func (d *ComposedDocument) UsedModule(moduleID string) bool {
	for _, id := range d.ModulesUsed {
		if id == moduleID {
			return true
		}
	}
	return false
}
