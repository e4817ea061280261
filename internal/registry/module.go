package registry

import (
	"regexp"
	"text/template"

	"github.com/jonathan/docforge/internal/types"
)

// Kind distinguishes modules that always apply from trigger-driven ones.
type Kind string

// Module kinds.
const (
	KindUniversal   Kind = "universal"
	KindConditional Kind = "conditional"
)

// Trigger is one declarative predicate over element signals. A
// conditional module is selected when any of its triggers fires.
type Trigger struct {
	Predicate   string `yaml:"predicate" json:"predicate" validate:"required,oneof=metadata-true metadata-present metadata-nonempty import-contains export-contains name-matches kind-is"`
	Arg         string `yaml:"arg" json:"arg" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`

	// compiled pattern for name-matches, set during load.
	re *regexp.Regexp
}

// Field is one entry of a module's declarative extraction spec, mapping
// an output field name to a signal accessor.
type Field struct {
	Name      string `yaml:"name" json:"name" validate:"required"`
	Source    string `yaml:"source" json:"source" validate:"required,oneof=name kind file-path imports exports metadata"`
	Key       string `yaml:"key,omitempty" json:"key,omitempty"`
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty" validate:"omitempty,oneof=join count first"`
}

// Placeholder declares a spot in the module's output that always needs
// manual input, with the prompt shown to the documentation author.
type Placeholder struct {
	Section string `yaml:"section" json:"section" validate:"required"`
	Prompt  string `yaml:"prompt" json:"prompt" validate:"required"`
}

// Module is one documentation module: trigger predicates, an extraction
// spec, and three template fragments (narrative, schema, annotation).
// Modules never mutate signals.
type Module struct {
	ID           string        `yaml:"id" json:"id" validate:"required"`
	Kind         Kind          `yaml:"kind" json:"kind" validate:"required,oneof=universal conditional"`
	Title        string        `yaml:"title" json:"title" validate:"required"`
	AppliesTo    []string      `yaml:"applies_to,omitempty" json:"applies_to,omitempty"`
	Triggers     []Trigger     `yaml:"triggers,omitempty" json:"triggers,omitempty" validate:"dive"`
	AutoFillRate int           `yaml:"auto_fill_rate" json:"auto_fill_rate" validate:"min=0,max=100"`
	Fields       []Field       `yaml:"fields,omitempty" json:"fields,omitempty" validate:"dive"`
	Placeholders []Placeholder `yaml:"placeholders,omitempty" json:"placeholders,omitempty" validate:"dive"`

	// Template fragments. Narrative is a markdown section body, Schema
	// maps schema keys to value templates, Annotation is a comment-block
	// fragment.
	Narrative  string            `yaml:"narrative" json:"narrative" validate:"required"`
	Schema     map[string]string `yaml:"schema,omitempty" json:"schema,omitempty"`
	Annotation string            `yaml:"annotation" json:"annotation" validate:"required"`

	narrativeTmpl  *template.Template
	annotationTmpl *template.Template
	schemaTmpls    map[string]*template.Template
}

// AppliesToCategory reports whether the module may be selected for the
// given category. A module with no category restriction applies to all.
func (m *Module) AppliesToCategory(c types.Category) bool {
	if len(m.AppliesTo) == 0 {
		return true
	}
	for _, a := range m.AppliesTo {
		if types.Category(a) == c {
			return true
		}
	}
	return false
}

// NarrativeTemplate returns the parsed narrative fragment.
func (m *Module) NarrativeTemplate() *template.Template { return m.narrativeTmpl }

// AnnotationTemplate returns the parsed annotation fragment.
func (m *Module) AnnotationTemplate() *template.Template { return m.annotationTmpl }

// SchemaTemplates returns the parsed schema value templates keyed by
// schema key.
func (m *Module) SchemaTemplates() map[string]*template.Template { return m.schemaTmpls }
