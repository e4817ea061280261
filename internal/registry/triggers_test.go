package registry

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/docforge/internal/types"
)

func TestTrigger_Eval(t *testing.T) {
	sig := &types.ElementSignals{
		Name:    "FileTree",
		Kind:    "function",
		Imports: []string{"react", "node:http"},
		Exports: []string{"FileTree"},
		Metadata: types.Metadata{
			HasInteractiveMarkup: true,
			StateVariables:       []string{"expanded"},
			Extra:                map[string]any{"legacyFlag": false},
		},
	}

	tests := []struct {
		name    string
		trigger Trigger
		want    bool
	}{
		{"metadata-true fires", Trigger{Predicate: PredicateMetadataTrue, Arg: "hasInteractiveMarkup"}, true},
		{"metadata-true absent", Trigger{Predicate: PredicateMetadataTrue, Arg: "isAsync"}, false},
		{"metadata-present on false value", Trigger{Predicate: PredicateMetadataPresent, Arg: "legacyFlag"}, true},
		{"metadata-nonempty fires", Trigger{Predicate: PredicateMetadataNonempty, Arg: "stateVariables"}, true},
		{"metadata-nonempty empty", Trigger{Predicate: PredicateMetadataNonempty, Arg: "eventHandlers"}, false},
		{"import-contains case-insensitive", Trigger{Predicate: PredicateImportContains, Arg: "HTTP"}, true},
		{"import-contains miss", Trigger{Predicate: PredicateImportContains, Arg: "grpc"}, false},
		{"export-contains fires", Trigger{Predicate: PredicateExportContains, Arg: "filetree"}, true},
		{"kind-is fires", Trigger{Predicate: PredicateKindIs, Arg: "function"}, true},
		{"kind-is miss", Trigger{Predicate: PredicateKindIs, Arg: "class"}, false},
		{"unknown predicate never fires", Trigger{Predicate: "bogus", Arg: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.trigger.Eval(sig))
		})
	}
}

func TestTrigger_EvalNameMatches(t *testing.T) {
	trigger := Trigger{Predicate: PredicateNameMatches, Arg: "^use[A-Z]"}
	trigger.re = regexp.MustCompile(trigger.Arg)

	assert.True(t, trigger.Eval(&types.ElementSignals{Name: "useFileTree"}))
	assert.False(t, trigger.Eval(&types.ElementSignals{Name: "FileTree"}))
}

func TestTrigger_EvalNilSignals(t *testing.T) {
	trigger := Trigger{Predicate: PredicateKindIs, Arg: "function"}
	assert.False(t, trigger.Eval(nil))
}

func TestModule_FiredTrigger(t *testing.T) {
	m := &Module{
		Triggers: []Trigger{
			{Predicate: PredicateMetadataNonempty, Arg: "endpoints", Description: "element declares endpoints"},
			{Predicate: PredicateImportContains, Arg: "http", Description: "element imports an HTTP stack"},
		},
	}

	sig := &types.ElementSignals{Imports: []string{"net/http"}}
	fired := m.FiredTrigger(sig)
	assert.NotNil(t, fired)
	assert.Equal(t, "element imports an HTTP stack", fired.Description)

	assert.Nil(t, m.FiredTrigger(&types.ElementSignals{Name: "Plain"}))
}
