package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictForScore_BandsAreExhaustive(t *testing.T) {
	// Every score in 0-100 maps to exactly one verdict with no gaps.
	for score := 0; score <= 100; score++ {
		v := VerdictForScore(score)
		switch {
		case score >= 90:
			assert.Equal(t, VerdictPass, v, "score %d", score)
		case score >= 50:
			assert.Equal(t, VerdictWarn, v, "score %d", score)
		default:
			assert.Equal(t, VerdictReject, v, "score %d", score)
		}
	}
}

func TestSeverity_PenaltyOrdering(t *testing.T) {
	assert.Greater(t, SeverityCritical.Penalty(), SeverityMajor.Penalty())
	assert.Greater(t, SeverityMajor.Penalty(), SeverityMinor.Penalty())
	assert.Greater(t, SeverityMinor.Penalty(), SeverityWarning.Penalty())
	assert.Equal(t, 0, Severity("bogus").Penalty())
}

func TestValidationResult_GateByName(t *testing.T) {
	r := ValidationResult{
		Gates: []GateResult{
			{Gate: "structural", Passed: true},
			{Gate: "completion", Passed: false},
		},
	}

	g := r.GateByName("completion")
	assert.NotNil(t, g)
	assert.False(t, g.Passed)
	assert.Nil(t, r.GateByName("missing"))
}

func TestSelectionResult_Contains(t *testing.T) {
	s := SelectionResult{Modules: []string{"architecture", "state"}}
	assert.True(t, s.Contains("state"))
	assert.False(t, s.Contains("props"))
}

func TestComposedDocument_UsedModule(t *testing.T) {
	d := ComposedDocument{ModulesUsed: []string{"architecture"}}
	assert.True(t, d.UsedModule("architecture"))
	assert.False(t, d.UsedModule("state"))
}
