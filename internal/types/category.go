package types

// Category is one label from the closed classification set.
type Category string

// The closed category set. CategoryPriority below is the authoritative
// ordering; keep the two lists in sync.
const (
	CategoryUIComponent     Category = "ui-component"
	CategoryUIPage          Category = "ui-page"
	CategoryUILayout        Category = "ui-layout"
	CategoryHook            Category = "hook"
	CategoryContextProvider Category = "context-provider"
	CategoryStore           Category = "store"
	CategoryService         Category = "service"
	CategoryAPIClient       Category = "api-client"
	CategoryAPIRoute        Category = "api-route"
	CategoryMiddleware      Category = "middleware"
	CategoryEventEmitter    Category = "event-emitter"
	CategoryWorker          Category = "worker"
	CategoryDataModel       Category = "data-model"
	CategorySchemaDef       Category = "schema-def"
	CategoryDatabaseAccess  Category = "database-access"
	CategoryCLICommand      Category = "cli-command"
	CategoryConfig          Category = "config"
	CategoryUtility         Category = "utility"
	CategoryTestHelper      Category = "test-helper"
	CategoryTypeDef         Category = "type-def"
	CategoryConstants       Category = "constants"
	CategoryGeneric         Category = "generic"
)

// CategoryPriority is the fixed tie-break ordering: when two categories
// score identically, the one listed earlier wins. This is a declared
// ordering, not alphabetical.
var CategoryPriority = []Category{
	CategoryHook,
	CategoryContextProvider,
	CategoryStore,
	CategoryUIPage,
	CategoryUILayout,
	CategoryUIComponent,
	CategoryAPIRoute,
	CategoryAPIClient,
	CategoryMiddleware,
	CategoryService,
	CategoryEventEmitter,
	CategoryWorker,
	CategoryDatabaseAccess,
	CategoryDataModel,
	CategorySchemaDef,
	CategoryCLICommand,
	CategoryConfig,
	CategoryTestHelper,
	CategoryTypeDef,
	CategoryConstants,
	CategoryUtility,
	CategoryGeneric,
}

// priorityRank maps category -> position in CategoryPriority.
var priorityRank = func() map[Category]int {
	m := make(map[Category]int, len(CategoryPriority))
	for i, c := range CategoryPriority {
		m[c] = i
	}
	return m
}()

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	_, ok := priorityRank[c]
	return ok
}

// PriorityRank returns the tie-break rank of c (lower wins). Unknown
// categories rank last.
func (c Category) PriorityRank() int {
	if r, ok := priorityRank[c]; ok {
		return r
	}
	return len(CategoryPriority)
}

// statefulCategories are categories that imply owned mutable state; the
// structural validation gate requires a state-ownership table for them.
var statefulCategories = map[Category]bool{
	CategoryUIComponent:     true,
	CategoryUIPage:          true,
	CategoryHook:            true,
	CategoryContextProvider: true,
	CategoryStore:           true,
	CategoryWorker:          true,
}

// IsStateful reports whether the category implies stateful behavior.
func (c Category) IsStateful() bool {
	return statefulCategories[c]
}

// apiLikeCategories expose a remote or callable contract; the
// element-specific validation gate requires an endpoints/contract section.
var apiLikeCategories = map[Category]bool{
	CategoryAPIClient: true,
	CategoryAPIRoute:  true,
	CategoryService:   true,
}

// IsAPILike reports whether the category exposes a callable contract.
func (c Category) IsAPILike() bool {
	return apiLikeCategories[c]
}
