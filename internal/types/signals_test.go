package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_UnmarshalKnownAndExtraKeys(t *testing.T) {
	raw := `{
		"hasInteractiveMarkup": true,
		"stateVariables": ["expanded", "selectedPath"],
		"props": [{"name": "onSelect", "type": "func", "required": true}],
		"customFlag": true,
		"customList": ["a", "b"]
	}`

	var m Metadata
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.True(t, m.HasInteractiveMarkup)
	assert.Equal(t, []string{"expanded", "selectedPath"}, m.StateVariables)
	require.Len(t, m.Props, 1)
	assert.Equal(t, "onSelect", m.Props[0].Name)
	assert.True(t, m.Props[0].Required)

	// Unknown keys land in Extra without loss
	assert.Equal(t, true, m.Extra["customFlag"])
	assert.Equal(t, []any{"a", "b"}, m.Extra["customList"])
}

func TestMetadata_MarshalRoundTrip(t *testing.T) {
	m := Metadata{
		HasInteractiveMarkup: true,
		StateVariables:       []string{"count"},
		Extra:                map[string]any{"customFlag": true},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var back Metadata
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.HasInteractiveMarkup)
	assert.Equal(t, []string{"count"}, back.StateVariables)
	assert.Equal(t, true, back.Extra["customFlag"])
}

func TestMetadata_Bool(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		key  string
		want bool
	}{
		{"known key true", Metadata{HasInteractiveMarkup: true}, MetaHasInteractiveMarkup, true},
		{"known key false", Metadata{}, MetaHasInteractiveMarkup, false},
		{"extra key true", Metadata{Extra: map[string]any{"isAsync": true}}, "isAsync", true},
		{"extra key non-bool", Metadata{Extra: map[string]any{"isAsync": "yes"}}, "isAsync", false},
		{"absent key", Metadata{}, "isAsync", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.Bool(tt.key))
		})
	}
}

func TestMetadata_List(t *testing.T) {
	m := Metadata{
		StateVariables: []string{"expanded"},
		Props:          []Prop{{Name: "onSelect"}, {Name: "root"}},
		Extra:          map[string]any{"tags": []any{"x", "y"}},
	}

	assert.Equal(t, []string{"expanded"}, m.List(MetaStateVariables))
	assert.Equal(t, []string{"onSelect", "root"}, m.List(MetaProps))
	assert.Equal(t, []string{"x", "y"}, m.List("tags"))
	assert.Nil(t, m.List("missing"))
}

func TestMetadata_Present(t *testing.T) {
	m := Metadata{
		StateVariables: []string{"expanded"},
		Extra:          map[string]any{"customFlag": false},
	}

	assert.True(t, m.Present(MetaStateVariables))
	assert.False(t, m.Present(MetaEventHandlers))
	assert.True(t, m.Present("customFlag")) // present even if false
	assert.False(t, m.Present("missing"))
}

func TestElementSignals_JSONRoundTrip(t *testing.T) {
	sig := ElementSignals{
		Name:     "FileTree",
		Kind:     "function",
		FilePath: "src/components/FileTree.tsx",
		Imports:  []string{"react"},
		Metadata: Metadata{
			HasInteractiveMarkup: true,
			StateVariables:       []string{"expanded", "selectedPath"},
		},
	}

	data, err := json.Marshal(sig)
	require.NoError(t, err)

	var back ElementSignals
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sig.Name, back.Name)
	assert.Equal(t, sig.Metadata.StateVariables, back.Metadata.StateVariables)
}
