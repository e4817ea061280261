package composition

import (
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// measureLines returns the completion rate of a text section: the share
// of relevant lines carrying a generated-content marker. Blank lines,
// markdown headings and table separator rows are not relevant lines.
func measureLines(text string) (marked, relevant int) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || isTableSeparator(trimmed) {
			continue
		}
		relevant++
		if strings.Contains(line, types.GenOpen) {
			marked++
		}
	}
	return marked, relevant
}

func isTableSeparator(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	rest := strings.Trim(line, "| ")
	for _, r := range rest {
		if r != '-' && r != ' ' && r != '|' && r != ':' {
			return false
		}
	}
	return rest != ""
}

// measureSchema returns the completion rate over schema leaves.
func measureSchema(schema map[string]types.SchemaValue) (generated, total int) {
	for _, v := range schema {
		total++
		if v.Generated {
			generated++
		}
	}
	return generated, total
}

// combineRates averages the per-section completion rates into one
// overall percentage. Sections without relevant content are skipped.
func combineRates(sections ...[2]int) int {
	var sum, n int
	for _, s := range sections {
		marked, relevant := s[0], s[1]
		if relevant == 0 {
			continue
		}
		sum += marked * 100 / relevant
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / n
}
