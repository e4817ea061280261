package types

// SelectionResult is the set of documentation modules chosen for one
// element: universal modules first in registry order, then conditional
// modules in registry-declared priority order.
type SelectionResult struct {
	Modules []string `json:"modules"`

	// Rationale records, per selected module, why it was included:
	// "universal" or the description of the trigger predicate that fired.
	Rationale map[string]string `json:"rationale"`

	// EstimatedCompletion is the arithmetic mean of the selected modules'
	// declared auto-fill rates (0-100). It is an estimate; the composer
	// measures the real rate from generated-content markers.
	EstimatedCompletion int `json:"estimated_completion"`
}

// Contains reports whether the module id was selected.
func (s *SelectionResult) Contains(moduleID string) bool {
	for _, id := range s.Modules {
		if id == moduleID {
			return true
		}
	}
	return false
}
