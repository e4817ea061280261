package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/docforge/internal/types"
)

func TestMeasureLines(t *testing.T) {
	text := "# Heading\n\n" +
		types.WrapGenerated("generated line") + "\n" +
		"manual line\n" +
		"| State | Owner |\n" +
		"| --- | --- |\n" +
		"| " + types.WrapGenerated("expanded") + " | this element |\n"

	marked, relevant := measureLines(text)
	// generated line, manual line, table header, table row; the heading,
	// the blank line and the separator row are skipped.
	assert.Equal(t, 4, relevant)
	assert.Equal(t, 2, marked)
}

func TestIsTableSeparator(t *testing.T) {
	assert.True(t, isTableSeparator("| --- | --- |"))
	assert.True(t, isTableSeparator("|:---|---:|"))
	assert.False(t, isTableSeparator("| State | Owner |"))
	assert.False(t, isTableSeparator("plain text"))
}

func TestMeasureSchema(t *testing.T) {
	schema := map[string]types.SchemaValue{
		"a": {Value: "x", Generated: true},
		"b": {Value: "[[MANUAL: fill me]]", Generated: false},
		"c": {Value: "", Generated: false},
	}
	generated, total := measureSchema(schema)
	assert.Equal(t, 1, generated)
	assert.Equal(t, 3, total)
}

func TestCombineRates(t *testing.T) {
	// Mean over sections that have relevant content.
	assert.Equal(t, 50, combineRates([2]int{1, 2}, [2]int{2, 4}))
	// Empty sections are skipped, not counted as zero.
	assert.Equal(t, 100, combineRates([2]int{3, 3}, [2]int{0, 0}))
	// Nothing measurable at all.
	assert.Equal(t, 0, combineRates([2]int{0, 0}))
}
