package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPriority_CoversAllCategories(t *testing.T) {
	seen := map[Category]bool{}
	for _, c := range CategoryPriority {
		assert.False(t, seen[c], "duplicate category %q in priority list", c)
		seen[c] = true
	}
	assert.Len(t, CategoryPriority, 22)
	assert.Equal(t, CategoryGeneric, CategoryPriority[len(CategoryPriority)-1],
		"generic must be the lowest-priority category")
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryUIComponent.IsValid())
	assert.True(t, CategoryGeneric.IsValid())
	assert.False(t, Category("widget").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestCategory_PriorityRank(t *testing.T) {
	// Hook is declared before ui-component, so it wins exact ties.
	assert.Less(t, CategoryHook.PriorityRank(), CategoryUIComponent.PriorityRank())
	assert.Equal(t, len(CategoryPriority), Category("bogus").PriorityRank())
}

func TestCategory_IsStateful(t *testing.T) {
	assert.True(t, CategoryStore.IsStateful())
	assert.True(t, CategoryUIComponent.IsStateful())
	assert.False(t, CategoryUtility.IsStateful())
	assert.False(t, CategoryGeneric.IsStateful())
}

func TestCategory_IsAPILike(t *testing.T) {
	assert.True(t, CategoryAPIClient.IsAPILike())
	assert.True(t, CategoryAPIRoute.IsAPILike())
	assert.False(t, CategoryUIComponent.IsAPILike())
}
