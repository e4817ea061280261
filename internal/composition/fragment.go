package composition

import (
	"strings"
	"text/template"

	"github.com/jonathan/docforge/internal/types"
)

// fragmentData is the execution context for module template fragments.
// Extracted field values are exposed marker-wrapped so that every
// generated value is attributable in the final artifacts.
type fragmentData struct {
	fields map[string]string
}

// Field returns the marker-wrapped extracted value, or empty string when
// the field was not extracted. Templates guard optional content with Has.
func (d fragmentData) Field(name string) string {
	v := d.fields[name]
	if v == "" {
		return ""
	}
	return types.WrapGenerated(v)
}

// Has reports whether the field carries a value.
func (d fragmentData) Has(name string) bool {
	return d.fields[name] != ""
}

// renderFragment executes one parsed fragment against the field data.
func renderFragment(tmpl *template.Template, fields map[string]string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, fragmentData{fields: fields}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
