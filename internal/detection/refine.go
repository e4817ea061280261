package detection

import (
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// boostRule adds a fixed corroboration boost (10-20) to a category that
// already scored in the pattern stage. Refinement is strictly monotonic:
// it never lowers a pattern-stage score.
type boostRule struct {
	category types.Category
	boost    int
	applies  func(sig *types.ElementSignals) bool
	note     string
}

func metaTrue(key string) func(*types.ElementSignals) bool {
	return func(sig *types.ElementSignals) bool { return sig.Metadata.Bool(key) }
}

func metaNonempty(key string) func(*types.ElementSignals) bool {
	return func(sig *types.ElementSignals) bool { return len(sig.Metadata.List(key)) > 0 }
}

func importsAny(fragments ...string) func(*types.ElementSignals) bool {
	return func(sig *types.ElementSignals) bool {
		for _, imp := range sig.Imports {
			lower := strings.ToLower(imp)
			for _, f := range fragments {
				if strings.Contains(lower, f) {
					return true
				}
			}
		}
		return false
	}
}

var boostTable = []boostRule{
	{types.CategoryUIComponent, 15, metaTrue(types.MetaHasInteractiveMarkup), "interactive markup present"},
	{types.CategoryUIComponent, 10, metaNonempty(types.MetaProps), "declared props"},
	{types.CategoryUIComponent, 10, metaNonempty(types.MetaEventHandlers), "event handlers present"},
	{types.CategoryUIPage, 12, metaTrue(types.MetaHasInteractiveMarkup), "interactive markup present"},
	{types.CategoryUILayout, 10, metaTrue(types.MetaHasInteractiveMarkup), "interactive markup present"},
	{types.CategoryHook, 15, metaNonempty(types.MetaStateVariables), "owns state variables"},
	{types.CategoryHook, 10, importsAny("react"), "react import"},
	{types.CategoryContextProvider, 15, metaNonempty(types.MetaStateVariables), "owns state variables"},
	{types.CategoryStore, 15, metaNonempty(types.MetaStateVariables), "owns state variables"},
	{types.CategoryStore, 10, metaNonempty("subscribers"), "declared subscribers"},
	{types.CategoryAPIClient, 15, metaNonempty(types.MetaRemoteCalls), "performs remote calls"},
	{types.CategoryAPIClient, 10, importsAny("http", "axios", "fetch"), "HTTP stack import"},
	{types.CategoryAPIRoute, 12, metaNonempty("endpoints"), "declared endpoints"},
	{types.CategoryService, 10, metaNonempty(types.MetaRemoteCalls), "performs remote calls"},
	{types.CategoryEventEmitter, 12, metaNonempty(types.MetaEventHandlers), "event handlers present"},
	{types.CategoryWorker, 10, metaTrue("isAsync"), "async execution"},
	{types.CategoryDatabaseAccess, 12, importsAny("sql", "pg", "sqlite", "mongo"), "database driver import"},
	{types.CategoryCLICommand, 10, importsAny("cobra", "flag", "argparse", "yargs", "commander"), "CLI framework import"},
	{types.CategoryTestHelper, 10, importsAny("testing", "jest", "vitest", "mocha"), "test framework import"},
}

// refineStage applies corroboration boosts to the pattern-stage scores,
// capped at 100. Boosts only strengthen categories that already matched
// a convention; they never introduce new candidates.
func refineStage(scores map[types.Category]int, sig *types.ElementSignals) map[types.Category]int {
	refined := make(map[types.Category]int, len(scores))
	for cat, score := range scores {
		refined[cat] = score
	}
	for _, rule := range boostTable {
		base, scored := refined[rule.category]
		if !scored || !rule.applies(sig) {
			continue
		}
		boosted := base + rule.boost
		if boosted > 100 {
			boosted = 100
		}
		refined[rule.category] = boosted
	}
	return refined
}
