package types

// Severity classifies how badly a failed validation check hurts the
// document score.
type Severity string

// Severity levels, strongest first.
const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityWarning  Severity = "warning"
)

// Penalty returns the score deduction for one failed check of this
// severity.
func (s Severity) Penalty() int {
	switch s {
	case SeverityCritical:
		return 30
	case SeverityMajor:
		return 15
	case SeverityMinor:
		return 8
	case SeverityWarning:
		return 3
	}
	return 0
}

// Verdict is the aggregate outcome of validation.
type Verdict string

// Verdict bands over the aggregate score. The bands are exhaustive:
// every score in 0-100 maps to exactly one verdict.
const (
	VerdictPass   Verdict = "PASS"
	VerdictWarn   Verdict = "WARN"
	VerdictReject Verdict = "REJECT"
)

// VerdictForScore maps an aggregate score to its verdict band.
func VerdictForScore(score int) Verdict {
	switch {
	case score >= 90:
		return VerdictPass
	case score >= 50:
		return VerdictWarn
	default:
		return VerdictReject
	}
}

// ValidationIssue is one failed check, tagged with the gate that found
// it and a severity driving the score penalty.
type ValidationIssue struct {
	Gate     string   `json:"gate"`
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`
	Details  string   `json:"details"`
	Section  string   `json:"section,omitempty"`
}

// GateResult reports one gate's pass/fail together with its issues.
// Gates are independent: a later gate runs regardless of earlier
// failures and all results are reported together.
type GateResult struct {
	Gate   string            `json:"gate"`
	Passed bool              `json:"passed"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// ValidationResult is the advisory quality report for one composed
// document. It is ephemeral: never persisted, always recomputed.
type ValidationResult struct {
	Gates   []GateResult      `json:"gates"`
	Issues  []ValidationIssue `json:"issues,omitempty"`
	Score   int               `json:"score"`
	Verdict Verdict           `json:"verdict"`
}

// GateByName returns the named gate result, or nil when absent.
func (r *ValidationResult) GateByName(name string) *GateResult {
	for i := range r.Gates {
		if r.Gates[i].Gate == name {
			return &r.Gates[i]
		}
	}
	return nil
}
