// Package detection classifies one element into a category with a
// confidence score. The detector is a pure function: no memory between
// calls, no I/O, no mutation of the input signals.
package detection

import (
	"sort"

	"github.com/jonathan/docforge/internal/types"
)

// ConfidenceThreshold is the minimum confidence below which a result is
// marked for manual review with non-empty alternates.
const ConfidenceThreshold = 80

// alternateWindow is how close (in points) a category must be to the
// best score to count as a near-tie alternate.
const alternateWindow = 15

// Detect classifies the element described by sig. A nil sig is the
// explicit "absent" signal: the result is template mode with the generic
// fallback category and zero confidence.
func Detect(sig *types.ElementSignals) types.DetectionResult {
	if sig == nil {
		return types.DetectionResult{
			Category:     types.CategoryGeneric,
			Confidence:   0,
			TemplateMode: true,
			NeedsReview:  true,
			Alternates: []types.ScoredCategory{
				{Category: types.CategoryGeneric, Confidence: 0},
			},
		}
	}

	base := patternStage(sig)
	scores := refineStage(base, sig)

	best, bestScore := pickBest(scores)

	result := types.DetectionResult{
		Category:   best,
		Confidence: bestScore,
		Alternates: nearTies(scores, best, bestScore),
	}

	if bestScore < ConfidenceThreshold {
		result.NeedsReview = true
		if len(result.Alternates) == 0 {
			// The contract requires non-empty alternates below the
			// threshold even when nothing else scored; the generic
			// fallback is always a viable alternate reading.
			result.Alternates = []types.ScoredCategory{
				{Category: types.CategoryGeneric, Confidence: fallbackBaseScore},
			}
		}
	}

	return result
}

// pickBest returns the highest-scoring category; exact ties go to the
// category earlier in the declared priority ordering.
func pickBest(scores map[types.Category]int) (types.Category, int) {
	best := types.CategoryGeneric
	bestScore := -1
	for _, cat := range types.CategoryPriority {
		score, ok := scores[cat]
		if !ok {
			continue
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	if bestScore < 0 {
		return types.CategoryGeneric, fallbackBaseScore
	}
	return best, bestScore
}

// nearTies lists every non-winning category whose score is within the
// alternate window of the best, strongest first, priority order breaking
// score ties.
func nearTies(scores map[types.Category]int, best types.Category, bestScore int) []types.ScoredCategory {
	var out []types.ScoredCategory
	for cat, score := range scores {
		if cat == best || bestScore-score > alternateWindow {
			continue
		}
		out = append(out, types.ScoredCategory{Category: cat, Confidence: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Category.PriorityRank() < out[j].Category.PriorityRank()
	})
	return out
}
