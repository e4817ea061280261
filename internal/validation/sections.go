package validation

import "strings"

// section is one narrative block under a "## " heading.
type section struct {
	title string
	lines []string
}

// splitSections parses a narrative into its preamble (the lines before
// the first heading, including the document header metadata) and its
// titled sections. Blank lines are dropped.
func splitSections(narrative string) (preamble []string, sections []section) {
	current := -1
	for _, line := range strings.Split(narrative, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			sections = append(sections, section{title: strings.TrimPrefix(trimmed, "## ")})
			current = len(sections) - 1
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "# ") {
			continue
		}
		if current < 0 {
			preamble = append(preamble, trimmed)
		} else {
			sections[current].lines = append(sections[current].lines, trimmed)
		}
	}
	return preamble, sections
}

func findSection(sections []section, title string) *section {
	for i := range sections {
		if sections[i].title == title {
			return &sections[i]
		}
	}
	return nil
}

// tableBlocks groups consecutive pipe-delimited lines of one section
// into tables.
func tableBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "|") {
			current = append(current, line)
		} else {
			flush()
		}
	}
	flush()
	return blocks
}

// cellCount returns the number of cells in one table row.
func cellCount(row string) int {
	trimmed := strings.Trim(row, "|")
	return len(strings.Split(trimmed, "|"))
}
