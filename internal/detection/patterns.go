package detection

import (
	"regexp"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// patternRule is one entry of the ranked filename/path convention table.
// Each matching rule contributes a base score for its category; when
// several rules hit the same category the strongest wins.
type patternRule struct {
	category types.Category
	score    int
	match    func(name, path, kind string) bool
	note     string
}

var (
	rePascalCase = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	reHookName   = regexp.MustCompile(`^use[A-Z]`)
	reAllCaps    = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

func nameSuffix(suffix string) func(name, path, kind string) bool {
	return func(name, _, _ string) bool { return strings.HasSuffix(name, suffix) }
}

func pathContains(fragment string) func(name, path, kind string) bool {
	return func(_, path, _ string) bool {
		return strings.Contains(strings.ToLower(path), fragment)
	}
}

func pathSuffix(suffix string) func(name, path, kind string) bool {
	return func(_, path, _ string) bool {
		return strings.HasSuffix(strings.ToLower(path), suffix)
	}
}

// patternTable is evaluated in order; order documents rule strength for
// readers but does not affect the outcome since each category keeps its
// best score.
var patternTable = []patternRule{
	{types.CategoryHook, 85, func(name, _, _ string) bool { return reHookName.MatchString(name) }, "use-prefixed name"},
	{types.CategoryTestHelper, 82, pathContains("testutil"), "testutil path"},
	{types.CategoryTestHelper, 80, func(_, path, _ string) bool {
		return strings.Contains(path, "_test.") || strings.Contains(strings.ToLower(path), "/__tests__/")
	}, "test file path"},
	{types.CategoryContextProvider, 80, nameSuffix("Provider"), "Provider-suffixed name"},
	{types.CategoryContextProvider, 76, nameSuffix("Context"), "Context-suffixed name"},
	{types.CategoryUILayout, 78, nameSuffix("Layout"), "Layout-suffixed name"},
	{types.CategoryMiddleware, 78, nameSuffix("Middleware"), "Middleware-suffixed name"},
	{types.CategoryMiddleware, 74, pathContains("/middleware/"), "middleware path"},
	{types.CategoryConfig, 76, func(name, _, _ string) bool {
		return strings.EqualFold(name, "config") || strings.EqualFold(name, "configuration")
	}, "config name"},
	{types.CategoryConfig, 72, pathContains(".config."), "config file path"},
	{types.CategoryStore, 76, nameSuffix("Store"), "Store-suffixed name"},
	{types.CategoryStore, 72, pathContains("/store"), "store path"},
	{types.CategoryUIPage, 76, nameSuffix("Page"), "Page-suffixed name"},
	{types.CategoryUIPage, 72, pathContains("/pages/"), "pages path"},
	{types.CategoryAPIRoute, 75, pathContains("/routes/"), "routes path"},
	{types.CategoryAPIRoute, 72, pathContains("/api/"), "api path"},
	{types.CategoryService, 75, nameSuffix("Service"), "Service-suffixed name"},
	{types.CategoryWorker, 75, nameSuffix("Worker"), "Worker-suffixed name"},
	{types.CategoryWorker, 70, pathContains("/workers/"), "workers path"},
	{types.CategoryUIComponent, 75, pathContains("/components/"), "components path"},
	{types.CategoryDatabaseAccess, 74, nameSuffix("Repository"), "Repository-suffixed name"},
	{types.CategoryDatabaseAccess, 70, pathContains("/db/"), "db path"},
	{types.CategoryDataModel, 72, nameSuffix("Model"), "Model-suffixed name"},
	{types.CategoryDataModel, 68, pathContains("/models/"), "models path"},
	{types.CategorySchemaDef, 72, nameSuffix("Schema"), "Schema-suffixed name"},
	{types.CategorySchemaDef, 68, pathContains("/schemas/"), "schemas path"},
	{types.CategoryEventEmitter, 72, nameSuffix("Emitter"), "Emitter-suffixed name"},
	{types.CategoryEventEmitter, 68, nameSuffix("Bus"), "Bus-suffixed name"},
	{types.CategoryCLICommand, 70, pathContains("/cmd/"), "cmd path"},
	{types.CategoryCLICommand, 68, pathContains("/commands/"), "commands path"},
	{types.CategoryAPIClient, 70, nameSuffix("Client"), "Client-suffixed name"},
	{types.CategoryTypeDef, 70, func(_, _, kind string) bool {
		return kind == "type" || kind == "interface"
	}, "type-like kind"},
	{types.CategoryTypeDef, 66, pathContains("/types/"), "types path"},
	{types.CategoryConstants, 70, func(name, _, _ string) bool { return reAllCaps.MatchString(name) }, "all-caps name"},
	{types.CategoryConstants, 66, pathContains("/constants/"), "constants path"},
	{types.CategoryUIComponent, 70, func(name, _, kind string) bool {
		return rePascalCase.MatchString(name) && (kind == "function" || kind == "class")
	}, "PascalCase function or class"},
	{types.CategoryUIComponent, 65, pathSuffix(".tsx"), "tsx file"},
	{types.CategoryUIComponent, 65, pathSuffix(".jsx"), "jsx file"},
	{types.CategoryUtility, 60, pathContains("/utils/"), "utils path"},
	{types.CategoryUtility, 60, pathContains("/helpers/"), "helpers path"},
}

// fallbackBaseScore is the base score assigned to the generic category
// when no filename/path convention matches at all.
const fallbackBaseScore = 50

// patternStage scores every category whose conventions match the
// signals. An empty result never escapes: with no match the generic
// fallback enters at fallbackBaseScore.
func patternStage(sig *types.ElementSignals) map[types.Category]int {
	scores := make(map[types.Category]int)
	for _, rule := range patternTable {
		if rule.match(sig.Name, sig.FilePath, sig.Kind) && rule.score > scores[rule.category] {
			scores[rule.category] = rule.score
		}
	}
	if len(scores) == 0 {
		scores[types.CategoryGeneric] = fallbackBaseScore
	}
	return scores
}
