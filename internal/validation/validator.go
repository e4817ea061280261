// Package validation scores a composed document against four
// independent quality gates. The result is advisory: it never mutates
// the document and by default never blocks persistence.
package validation

import "github.com/jonathan/docforge/internal/types"

// Validate runs all four gates over the document and aggregates their
// issues into one score and verdict. Gates are independent: every gate
// runs and reports regardless of the others.
func Validate(doc *types.ComposedDocument) *types.ValidationResult {
	preamble, sections := splitSections(doc.Narrative)

	gates := []types.GateResult{
		structuralGate(doc, preamble, sections),
		contentGate(doc, sections),
		elementGate(doc, sections),
		completionGate(doc),
	}

	var issues []types.ValidationIssue
	score := 100
	for _, g := range gates {
		for _, issue := range g.Issues {
			issues = append(issues, issue)
			score -= issue.Severity.Penalty()
		}
	}
	if score < 0 {
		score = 0
	}

	return &types.ValidationResult{
		Gates:   gates,
		Issues:  issues,
		Score:   score,
		Verdict: types.VerdictForScore(score),
	}
}
