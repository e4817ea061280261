package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// Gate names, in the order they are reported.
const (
	GateStructural = "structural"
	GateContent    = "content-quality"
	GateElement    = "element-specific"
	GateCompletion = "completion-threshold"
)

// CompletionFloor is the minimum measured completion rate accepted by
// the completion-threshold gate.
const CompletionFloor = 60

// universalSections must be present in every narrative regardless of
// category. They mirror the registry's universal module titles.
var universalSections = []string{"Architecture", "Integration", "Testing", "Performance"}

// discouragedOpeners flag instructional bullets that drift out of the
// imperative voice.
var discouragedOpeners = []string{
	"You should ", "You can ", "We ", "It is recommended", "It would be", "Maybe ", "Please ",
}

// minSectionChars is the degenerate-section cutoff: a section whose
// content, after stripping markers and manual-input tokens, is shorter
// than this is considered near-empty.
const minSectionChars = 20

func gateResult(name string, issues []types.ValidationIssue) types.GateResult {
	return types.GateResult{Gate: name, Passed: len(issues) == 0, Issues: issues}
}

// structuralGate checks the document skeleton: header metadata, a
// summary, the universal sections, and for stateful categories a
// state-ownership table.
func structuralGate(doc *types.ComposedDocument, preamble []string, sections []section) types.GateResult {
	var issues []types.ValidationIssue

	if !hasHeaderMetadata(preamble) {
		issues = append(issues, types.ValidationIssue{
			Gate:     GateStructural,
			Severity: types.SeverityCritical,
			Check:    "header-metadata",
			Details:  "document header metadata line is missing",
		})
	}

	if findSection(sections, "Summary") == nil {
		issues = append(issues, types.ValidationIssue{
			Gate:     GateStructural,
			Severity: types.SeverityCritical,
			Check:    "summary-section",
			Details:  "narrative has no Summary section",
		})
	}

	for _, title := range universalSections {
		if findSection(sections, title) == nil {
			issues = append(issues, types.ValidationIssue{
				Gate:     GateStructural,
				Severity: types.SeverityMajor,
				Check:    "required-section",
				Details:  fmt.Sprintf("required section %q is missing", title),
				Section:  title,
			})
		}
	}

	if doc.Category.IsStateful() && !hasStateTable(sections) {
		issues = append(issues, types.ValidationIssue{
			Gate:     GateStructural,
			Severity: types.SeverityMajor,
			Check:    "state-ownership-table",
			Details:  fmt.Sprintf("category %s implies owned state but no state-ownership table is present", doc.Category),
		})
	}

	return gateResult(GateStructural, issues)
}

func hasHeaderMetadata(preamble []string) bool {
	for _, line := range preamble {
		if strings.Contains(line, "**Kind:**") && strings.Contains(line, "**Category:**") {
			return true
		}
	}
	return false
}

func hasStateTable(sections []section) bool {
	for _, s := range sections {
		for _, line := range s.lines {
			if strings.HasPrefix(line, "| State |") {
				return true
			}
		}
	}
	return false
}

// contentGate checks lexical quality: no leftover template syntax, no
// near-empty sections, well-formed tables, and imperative voice on
// instructional bullets.
func contentGate(doc *types.ComposedDocument, sections []section) types.GateResult {
	var issues []types.ValidationIssue

	if strings.Contains(doc.Narrative, "{{") || strings.Contains(doc.Narrative, "}}") {
		issues = append(issues, types.ValidationIssue{
			Gate:     GateContent,
			Severity: types.SeverityMajor,
			Check:    "unresolved-template-token",
			Details:  "narrative contains unexpanded template syntax",
		})
	}
	for key, v := range doc.Schema {
		if strings.Contains(v.Value, "{{") {
			issues = append(issues, types.ValidationIssue{
				Gate:     GateContent,
				Severity: types.SeverityMajor,
				Check:    "unresolved-template-token",
				Details:  fmt.Sprintf("schema key %q contains unexpanded template syntax", key),
			})
		}
	}

	for _, s := range sections {
		if isDegenerate(s) {
			issues = append(issues, types.ValidationIssue{
				Gate:     GateContent,
				Severity: types.SeverityMinor,
				Check:    "degenerate-section",
				Details:  fmt.Sprintf("section %q has no substantive content", s.title),
				Section:  s.title,
			})
		}
		issues = append(issues, tableIssues(s)...)
		issues = append(issues, voiceIssues(s)...)
	}

	return gateResult(GateContent, issues)
}

// isDegenerate strips markers, manual-input tokens and list decoration,
// then measures what is left.
func isDegenerate(s section) bool {
	var substantive int
	for _, line := range s.lines {
		content := types.StripMarkers(line)
		content = types.ManualTokenRE.ReplaceAllString(content, "")
		content = strings.Trim(content, "-|: ")
		substantive += len(strings.TrimSpace(content))
	}
	return substantive < minSectionChars
}

func tableIssues(s section) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, block := range tableBlocks(s.lines) {
		if len(block) < 2 {
			issues = append(issues, types.ValidationIssue{
				Gate:     GateContent,
				Severity: types.SeverityMinor,
				Check:    "malformed-table",
				Details:  fmt.Sprintf("section %q has a table with no rows", s.title),
				Section:  s.title,
			})
			continue
		}
		width := cellCount(block[0])
		for _, row := range block[1:] {
			if cellCount(row) != width {
				issues = append(issues, types.ValidationIssue{
					Gate:     GateContent,
					Severity: types.SeverityMinor,
					Check:    "malformed-table",
					Details:  fmt.Sprintf("section %q has a table row with %d cells, expected %d", s.title, cellCount(row), width),
					Section:  s.title,
				})
				break
			}
		}
	}
	return issues
}

func voiceIssues(s section) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, line := range s.lines {
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		bullet := strings.TrimPrefix(line, "- ")
		for _, opener := range discouragedOpeners {
			if strings.HasPrefix(bullet, opener) {
				issues = append(issues, types.ValidationIssue{
					Gate:     GateContent,
					Severity: types.SeverityWarning,
					Check:    "imperative-voice",
					Details:  fmt.Sprintf("section %q: instructional text should use the imperative voice", s.title),
					Section:  s.title,
				})
				break
			}
		}
	}
	return issues
}

// elementGate checks that the category's focus section is present.
func elementGate(doc *types.ComposedDocument, sections []section) types.GateResult {
	var issues []types.ValidationIssue

	require := func(title string) {
		if findSection(sections, title) == nil {
			issues = append(issues, types.ValidationIssue{
				Gate:     GateElement,
				Severity: types.SeverityMajor,
				Check:    "category-focus-section",
				Details:  fmt.Sprintf("category %s requires a %q section", doc.Category, title),
				Section:  title,
			})
		}
	}

	switch {
	case doc.Category.IsAPILike():
		require("Endpoints & Contract")
	case doc.Category == types.CategoryUIComponent || doc.Category == types.CategoryUIPage:
		require("Props")
	case doc.Category == types.CategoryStore || doc.Category == types.CategoryContextProvider:
		require("State Ownership")
	}

	return gateResult(GateElement, issues)
}

// completionGate enforces the measured completion floor. It fails on
// its own merits regardless of the other gates.
func completionGate(doc *types.ComposedDocument) types.GateResult {
	var issues []types.ValidationIssue
	if doc.CompletionRate < CompletionFloor {
		issues = append(issues, types.ValidationIssue{
			Gate:     GateCompletion,
			Severity: types.SeverityCritical,
			Check:    "completion-floor",
			Details:  fmt.Sprintf("measured completion %d%% is below the %d%% floor", doc.CompletionRate, CompletionFloor),
		})
	}
	return gateResult(GateCompletion, issues)
}
