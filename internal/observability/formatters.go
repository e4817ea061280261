// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDetection outputs the detected category, confidence and alternates.
func (p *Printer) PrintDetection(det *types.DetectionResult) {
	if det == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category:    %s\n", det.Category))
	sb.WriteString(fmt.Sprintf("Confidence:  %d\n", det.Confidence))
	if det.TemplateMode {
		sb.WriteString("Mode:        template (no index record)\n")
	}
	if det.NeedsReview {
		sb.WriteString("Review:      low confidence, manual review advised\n")
	}

	if len(det.Alternates) > 0 {
		sb.WriteString("\nAlternates:\n")
		count := min(len(det.Alternates), maxItemsToShow)
		for i := 0; i < count; i++ {
			alt := det.Alternates[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", alt.Category, alt.Confidence))
		}
		if len(det.Alternates) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(det.Alternates)-maxItemsToShow))
		}
	}

	p.printBox("DETECTED CATEGORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelection outputs the selected modules with their rationale.
func (p *Printer) PrintSelection(sel *types.SelectionResult) {
	if sel == nil || len(sel.Modules) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Selected %d modules:\n\n", len(sel.Modules)))

	for i, id := range sel.Modules {
		sb.WriteString(fmt.Sprintf("• %s\n", id))
		if reason := sel.Rationale[id]; reason != "" {
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", reason))
		}
		if i < len(sel.Modules)-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\nEstimated completion: %d%%", sel.EstimatedCompletion))

	p.printBox("SELECTED MODULES", sb.String())
}

// PrintDocument outputs a short summary of the composed artifacts.
func (p *Printer) PrintDocument(doc *types.ComposedDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Element:     %s\n", doc.ElementName))
	sb.WriteString(fmt.Sprintf("Modules:     %d\n", len(doc.ModulesUsed)))
	sb.WriteString(fmt.Sprintf("Schema keys: %d\n", len(doc.Schema)))
	sb.WriteString(fmt.Sprintf("Completion:  %d%% (measured)\n", doc.CompletionRate))

	if len(doc.ReviewFlags) > 0 {
		sb.WriteString("\nNeeds manual input:\n")
		count := min(len(doc.ReviewFlags), maxItemsToShow)
		for i := 0; i < count; i++ {
			flag := doc.ReviewFlags[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", flag.Section, flag.Prompt))
		}
		if len(doc.ReviewFlags) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.ReviewFlags)-maxItemsToShow))
		}
	}

	if len(doc.DegradedModules) > 0 {
		sb.WriteString(fmt.Sprintf("\nDegraded modules: %s\n", strings.Join(doc.DegradedModules, ", ")))
	}

	p.printBox("COMPOSED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the gate results and the aggregate verdict.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(vr *types.ValidationResult) {
	if vr == nil {
		return
	}

	if len(vr.Issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ ALL GATES PASSED (score %d)", vr.Score))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d  Verdict: %s\n\n", vr.Score, vr.Verdict))

	for _, gate := range vr.Gates {
		mark := "✓"
		if !gate.Passed {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, gate.Gate))
		for _, issue := range gate.Issues {
			details := issue.Details
			if len(details) > 45 {
				details = details[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ [%s] %s\n", issue.Severity, details))
		}
	}

	p.printBox("VALIDATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
