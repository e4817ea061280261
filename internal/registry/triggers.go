package registry

import (
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// Trigger predicate names. The vocabulary is closed so that registry
// entries stay machine-checkable.
const (
	PredicateMetadataTrue     = "metadata-true"
	PredicateMetadataPresent  = "metadata-present"
	PredicateMetadataNonempty = "metadata-nonempty"
	PredicateImportContains   = "import-contains"
	PredicateExportContains   = "export-contains"
	PredicateNameMatches      = "name-matches"
	PredicateKindIs           = "kind-is"
)

// Eval evaluates the trigger against the signals. Unknown predicates
// never fire; the loader rejects them before this point.
func (t *Trigger) Eval(sig *types.ElementSignals) bool {
	if sig == nil {
		return false
	}
	switch t.Predicate {
	case PredicateMetadataTrue:
		return sig.Metadata.Bool(t.Arg)
	case PredicateMetadataPresent:
		return sig.Metadata.Present(t.Arg)
	case PredicateMetadataNonempty:
		return len(sig.Metadata.List(t.Arg)) > 0
	case PredicateImportContains:
		return anyContains(sig.Imports, t.Arg)
	case PredicateExportContains:
		return anyContains(sig.Exports, t.Arg)
	case PredicateNameMatches:
		return t.re != nil && t.re.MatchString(sig.Name)
	case PredicateKindIs:
		return sig.Kind == t.Arg
	}
	return false
}

// FiredTrigger returns the first trigger that fires against the signals,
// or nil when none do.
func (m *Module) FiredTrigger(sig *types.ElementSignals) *Trigger {
	for i := range m.Triggers {
		if m.Triggers[i].Eval(sig) {
			return &m.Triggers[i]
		}
	}
	return nil
}

func anyContains(items []string, substr string) bool {
	needle := strings.ToLower(substr)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}
