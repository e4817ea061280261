package composition

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/types"
)

// GeneratorVersion is stamped into document provenance.
const GeneratorVersion = "0.3.0"

// Compose merges the selected modules into the three synchronized
// artifacts. The three outputs come from one extraction pass over one
// selection, so ModulesUsed is identical across them by construction.
//
// Composition is all-or-nothing: any fault other than an isolated
// extraction failure returns a nil document and an error, never partial
// artifacts. Given identical inputs the artifacts are byte-identical;
// the provenance timestamp lives outside the artifact texts.
func Compose(name string, det *types.DetectionResult, sel *types.SelectionResult, sig *types.ElementSignals, reg *registry.Registry) (*types.ComposedDocument, error) {
	var narrative strings.Builder
	narrative.WriteString("# " + name + "\n\n")
	narrative.WriteString(headerLine(det, sig))
	narrative.WriteString("## Summary\n\n")
	narrative.WriteString(summaryLine(name, det, sig))

	schema := make(map[string]types.SchemaValue)
	schemaOwner := make(map[string]string)
	var annotationBody []string
	var reviewFlags []types.ReviewFlag
	var degraded []string

	for _, id := range sel.Modules {
		m, ok := reg.Module(id)
		if !ok {
			return nil, &ComposeError{Module: id, Message: "module not present in registry"}
		}

		fields, extracted := m.Extract(sig)
		if !extracted {
			degraded = append(degraded, id)
			reviewFlags = append(reviewFlags, types.ReviewFlag{
				Module:  id,
				Section: m.Title,
				Prompt:  "Automatic extraction failed; fill this section in manually",
			})
		}

		body, err := renderFragment(m.NarrativeTemplate(), fields)
		if err != nil {
			return nil, &ComposeError{Module: id, Message: "narrative fragment failed", Cause: err}
		}
		narrative.WriteString("## " + m.Title + "\n\n")
		narrative.WriteString(strings.TrimSpace(body))
		narrative.WriteString("\n\n")

		// Schema keys merge by union; a collision between two modules is
		// a hard error naming both, not a silent overwrite.
		for _, key := range sortedSchemaKeys(m) {
			if owner, exists := schemaOwner[key]; exists {
				return nil, &CollisionError{Key: key, FirstModule: owner, SecondModule: id}
			}
			rendered, err := renderFragment(m.SchemaTemplates()[key], fields)
			if err != nil {
				return nil, &ComposeError{Module: id, Message: fmt.Sprintf("schema fragment %q failed", key), Cause: err}
			}
			schema[key] = types.SchemaValue{
				Value:     types.StripMarkers(strings.TrimSpace(rendered)),
				Generated: types.HasGenerated(rendered),
			}
			schemaOwner[key] = id
		}

		ann, err := renderFragment(m.AnnotationTemplate(), fields)
		if err != nil {
			return nil, &ComposeError{Module: id, Message: "annotation fragment failed", Cause: err}
		}
		if trimmed := strings.TrimSpace(ann); trimmed != "" {
			annotationBody = append(annotationBody, trimmed)
		}

		for _, p := range m.Placeholders {
			reviewFlags = append(reviewFlags, types.ReviewFlag{
				Module:  id,
				Section: p.Section,
				Prompt:  p.Prompt,
			})
		}
	}

	rawAnnotation := strings.Join(annotationBody, "\n")

	narrativeMarked, narrativeRelevant := measureLines(narrative.String())
	annotationMarked, annotationRelevant := measureLines(rawAnnotation)
	schemaGenerated, schemaTotal := measureSchema(schema)

	doc := &types.ComposedDocument{
		ElementName: name,
		Category:    det.Category,
		ModulesUsed: append([]string(nil), sel.Modules...),
		Narrative:   narrative.String(),
		Schema:      schema,
		Annotation:  frameAnnotation(name, rawAnnotation),
		CompletionRate: combineRates(
			[2]int{narrativeMarked, narrativeRelevant},
			[2]int{schemaGenerated, schemaTotal},
			[2]int{annotationMarked, annotationRelevant},
		),
		ReviewFlags:     reviewFlags,
		DegradedModules: degraded,
		Provenance: types.Provenance{
			GeneratedAt:      time.Now().UTC(),
			GeneratorVersion: GeneratorVersion,
		},
	}

	return doc, nil
}

// headerLine renders the document header metadata. The kind comes from
// the signals and is marker-wrapped; the category is a detector verdict,
// not extracted content, and stays unmarked.
func headerLine(det *types.DetectionResult, sig *types.ElementSignals) string {
	kind := "unknown"
	if sig != nil && sig.Kind != "" {
		kind = types.WrapGenerated(sig.Kind)
	}
	return fmt.Sprintf("**Kind:** %s · **Category:** %s · **Generator:** docforge v%s\n\n",
		kind, det.Category, GeneratorVersion)
}

func summaryLine(name string, det *types.DetectionResult, sig *types.ElementSignals) string {
	switch {
	case sig != nil && sig.FilePath != "":
		return types.WrapGenerated(fmt.Sprintf("%s is a %s declared in %s.", name, det.Category, sig.FilePath)) + "\n\n"
	case sig != nil:
		return types.WrapGenerated(fmt.Sprintf("%s is a %s.", name, det.Category)) + "\n\n"
	default:
		return types.ManualToken(fmt.Sprintf("Summarize what %s does", name)) + "\n\n"
	}
}

// frameAnnotation wraps the merged fragments into one comment block.
func frameAnnotation(name, body string) string {
	var sb strings.Builder
	sb.WriteString("// docforge:begin " + name + "\n")
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString("// " + line + "\n")
	}
	sb.WriteString("// docforge:end\n")
	return sb.String()
}

// sortedSchemaKeys keeps schema merging deterministic regardless of map
// iteration order.
func sortedSchemaKeys(m *registry.Module) []string {
	keys := make([]string, 0, len(m.SchemaTemplates()))
	for key := range m.SchemaTemplates() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
