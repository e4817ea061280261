// Package selection chooses which documentation modules apply to one
// element, given its detected category and raw signals.
package selection

import (
	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/types"
)

// universalRationale is recorded for every universal module.
const universalRationale = "universal"

// Select builds the module set for one element. Universal modules are
// always included, in registry declaration order. A conditional module
// is included iff one of its trigger predicates fires against the
// signals and its applies_to set permits the detected category.
//
// In template mode (detection.TemplateMode, signals absent) only the
// universal modules are selected and the completion estimate reflects
// skeleton-only content.
func Select(detection *types.DetectionResult, sig *types.ElementSignals, reg *registry.Registry) *types.SelectionResult {
	result := &types.SelectionResult{
		Rationale: make(map[string]string),
	}

	var rateSum int

	for _, m := range reg.Universal() {
		result.Modules = append(result.Modules, m.ID)
		result.Rationale[m.ID] = universalRationale
		rateSum += m.AutoFillRate
	}

	if !detection.TemplateMode {
		for _, m := range reg.Conditional() {
			if !m.AppliesToCategory(detection.Category) {
				continue
			}
			fired := m.FiredTrigger(sig)
			if fired == nil {
				continue
			}
			result.Modules = append(result.Modules, m.ID)
			result.Rationale[m.ID] = fired.Description
			rateSum += m.AutoFillRate
		}
	}

	if n := len(result.Modules); n > 0 {
		result.EstimatedCompletion = rateSum / n
	}
	if detection.TemplateMode {
		// Skeleton-only content: the universal auto-fill rates assume
		// signals that template mode does not have.
		result.EstimatedCompletion = 0
	}

	return result
}
