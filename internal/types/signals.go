// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// ElementSignals is the flat characteristic record for one code element,
// supplied by a characteristic provider. It is treated as immutable once
// produced; no pipeline stage mutates it.
type ElementSignals struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	FilePath string   `json:"filePath,omitempty"`
	Imports  []string `json:"imports,omitempty"`
	Exports  []string `json:"exports,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Prop describes one declared input of a UI element.
type Prop struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// Metadata carries the open-ended signal bag. Known, frequently inspected
// keys are lifted into typed fields; everything else round-trips through
// Extra so new signal types survive unmodified.
type Metadata struct {
	HasInteractiveMarkup bool
	StateVariables       []string
	EventHandlers        []string
	RemoteCalls          []string
	Hooks                []string
	Props                []Prop

	// Extra holds metadata keys this version does not model explicitly.
	Extra map[string]any
}

// Known metadata keys lifted into typed fields.
const (
	MetaHasInteractiveMarkup = "hasInteractiveMarkup"
	MetaStateVariables       = "stateVariables"
	MetaEventHandlers        = "eventHandlers"
	MetaRemoteCalls          = "remoteCalls"
	MetaHooks                = "hooks"
	MetaProps                = "props"
)

// Bool reports the boolean value stored under key, false when absent or
// not a boolean.
func (m Metadata) Bool(key string) bool {
	if key == MetaHasInteractiveMarkup {
		return m.HasInteractiveMarkup
	}
	if v, ok := m.Extra[key]; ok {
		b, _ := v.(bool)
		return b
	}
	return false
}

// List returns the string list stored under key. Props are reduced to
// their names. Unknown keys fall back to Extra; non-list values yield nil.
func (m Metadata) List(key string) []string {
	switch key {
	case MetaStateVariables:
		return m.StateVariables
	case MetaEventHandlers:
		return m.EventHandlers
	case MetaRemoteCalls:
		return m.RemoteCalls
	case MetaHooks:
		return m.Hooks
	case MetaProps:
		names := make([]string, 0, len(m.Props))
		for _, p := range m.Props {
			names = append(names, p.Name)
		}
		return names
	}
	v, ok := m.Extra[key]
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Present reports whether key carries a non-zero value.
func (m Metadata) Present(key string) bool {
	switch key {
	case MetaHasInteractiveMarkup:
		return m.HasInteractiveMarkup
	case MetaStateVariables:
		return len(m.StateVariables) > 0
	case MetaEventHandlers:
		return len(m.EventHandlers) > 0
	case MetaRemoteCalls:
		return len(m.RemoteCalls) > 0
	case MetaHooks:
		return len(m.Hooks) > 0
	case MetaProps:
		return len(m.Props) > 0
	}
	_, ok := m.Extra[key]
	return ok
}

// MarshalJSON flattens the typed fields and Extra into one JSON object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+6)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.HasInteractiveMarkup {
		out[MetaHasInteractiveMarkup] = true
	}
	if len(m.StateVariables) > 0 {
		out[MetaStateVariables] = m.StateVariables
	}
	if len(m.EventHandlers) > 0 {
		out[MetaEventHandlers] = m.EventHandlers
	}
	if len(m.RemoteCalls) > 0 {
		out[MetaRemoteCalls] = m.RemoteCalls
	}
	if len(m.Hooks) > 0 {
		out[MetaHooks] = m.Hooks
	}
	if len(m.Props) > 0 {
		out[MetaProps] = m.Props
	}
	return json.Marshal(out)
}

// UnmarshalJSON lifts known keys into typed fields and keeps the rest in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Metadata{}
	for key, msg := range raw {
		switch key {
		case MetaHasInteractiveMarkup:
			if err := json.Unmarshal(msg, &m.HasInteractiveMarkup); err != nil {
				return err
			}
		case MetaStateVariables:
			if err := json.Unmarshal(msg, &m.StateVariables); err != nil {
				return err
			}
		case MetaEventHandlers:
			if err := json.Unmarshal(msg, &m.EventHandlers); err != nil {
				return err
			}
		case MetaRemoteCalls:
			if err := json.Unmarshal(msg, &m.RemoteCalls); err != nil {
				return err
			}
		case MetaHooks:
			if err := json.Unmarshal(msg, &m.Hooks); err != nil {
				return err
			}
		case MetaProps:
			if err := json.Unmarshal(msg, &m.Props); err != nil {
				return err
			}
		default:
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return err
			}
			if m.Extra == nil {
				m.Extra = map[string]any{}
			}
			m.Extra[key] = v
		}
	}
	return nil
}
