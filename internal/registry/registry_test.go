package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docforge/internal/schemas"
	"github.com/jonathan/docforge/internal/types"
)

// loadDefault loads the repo's shipped registry for tests.
func loadDefault(t *testing.T) *Registry {
	t.Helper()
	path := schemas.ResolveSchemaPath(DefaultPath)
	require.NotEmpty(t, path, "default registry not found relative to test dir")
	reg, err := Load(path)
	require.NoError(t, err)
	return reg
}

func TestLoad_DefaultRegistry(t *testing.T) {
	reg := loadDefault(t)

	assert.Equal(t, "1", reg.Version)
	assert.Len(t, reg.Universal(), 4)
	assert.Len(t, reg.Conditional(), 8)

	// Universal declaration order is the composition order.
	ids := make([]string, 0, 4)
	for _, m := range reg.Universal() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"architecture", "integration", "testing", "performance"}, ids)

	state, ok := reg.Module("state")
	require.True(t, ok)
	assert.Equal(t, KindConditional, state.Kind)
	assert.NotEmpty(t, state.Triggers)
	assert.NotNil(t, state.NarrativeTemplate())
	assert.NotNil(t, state.AnnotationTemplate())
	assert.Contains(t, state.SchemaTemplates(), "state_variables")

	_, ok = reg.Module("missing")
	assert.False(t, ok)
}

func loadRaw(t *testing.T, doc string) (*Registry, error) {
	t.Helper()
	schemaPath := schemas.ResolveSchemaPath(DefaultSchemaPath)
	require.NotEmpty(t, schemaPath)

	path := filepath.Join(t.TempDir(), "modules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return LoadWithSchema(path, schemaPath)
}

func TestLoad_RejectsMissingRequiredField(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: universal
    auto_fill_rate: 10
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "schema")
}

func TestLoad_RejectsConditionalWithoutTriggers(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: conditional
    title: Broken
    auto_fill_rate: 10
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "at least one trigger")
}

func TestLoad_RejectsUniversalWithTriggers(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: universal
    title: Broken
    auto_fill_rate: 10
    triggers:
      - predicate: kind-is
        arg: function
        description: kind is function
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "must not declare triggers")
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: twin
    kind: universal
    title: Twin A
    auto_fill_rate: 10
    narrative: "x"
    annotation: "x"
  - id: twin
    kind: universal
    title: Twin B
    auto_fill_rate: 10
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "duplicate module id")
}

func TestLoad_RejectsUnknownCategory(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: conditional
    title: Broken
    applies_to: [widget]
    auto_fill_rate: 10
    triggers:
      - predicate: kind-is
        arg: function
        description: kind is function
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "unknown category")
}

func TestLoad_RejectsInvalidRegexp(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: conditional
    title: Broken
    auto_fill_rate: 10
    triggers:
      - predicate: name-matches
        arg: "["
        description: broken pattern
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "name-matches pattern")
}

func TestLoad_RejectsBadTemplate(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: universal
    title: Broken
    auto_fill_rate: 10
    narrative: "{{.Field"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "narrative template")
}

func TestLoad_RejectsMetadataFieldWithoutKey(t *testing.T) {
	_, err := loadRaw(t, `
version: "1"
modules:
  - id: broken
    kind: universal
    title: Broken
    auto_fill_rate: 10
    fields:
      - name: stateVariables
        source: metadata
    narrative: "x"
    annotation: "x"
`)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "requires a key")
}

func TestModule_AppliesToCategory(t *testing.T) {
	reg := loadDefault(t)

	state, _ := reg.Module("state")
	assert.True(t, state.AppliesToCategory(types.CategoryUIComponent))
	assert.False(t, state.AppliesToCategory(types.CategoryUtility))

	// No restriction means the module applies everywhere.
	events, _ := reg.Module("events")
	assert.True(t, events.AppliesToCategory(types.CategoryUtility))
	assert.True(t, events.AppliesToCategory(types.CategoryGeneric))
}
