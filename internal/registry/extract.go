package registry

import (
	"strconv"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// Field source names.
const (
	SourceName     = "name"
	SourceKind     = "kind"
	SourceFilePath = "file-path"
	SourceImports  = "imports"
	SourceExports  = "exports"
	SourceMetadata = "metadata"
)

// Extract runs the module's declarative field spec against the signals
// and returns the extracted field values. It is a pure function over its
// inputs and never propagates a fault: any internal failure degrades to
// an empty field set with ok=false, isolated to this module.
func (m *Module) Extract(sig *types.ElementSignals) (fields map[string]string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fields = map[string]string{}
			ok = false
		}
	}()

	fields = make(map[string]string, len(m.Fields))
	if sig == nil {
		return fields, true
	}

	for _, f := range m.Fields {
		value, found := extractField(f, sig)
		if found {
			fields[f.Name] = value
		}
	}
	return fields, true
}

func extractField(f Field, sig *types.ElementSignals) (string, bool) {
	switch f.Source {
	case SourceName:
		return nonEmpty(sig.Name)
	case SourceKind:
		return nonEmpty(sig.Kind)
	case SourceFilePath:
		return nonEmpty(sig.FilePath)
	case SourceImports:
		return transformList(sig.Imports, f.Transform)
	case SourceExports:
		return transformList(sig.Exports, f.Transform)
	case SourceMetadata:
		if b := sig.Metadata.Bool(f.Key); b {
			return "true", true
		}
		return transformList(sig.Metadata.List(f.Key), f.Transform)
	}
	return "", false
}

func transformList(items []string, transform string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	switch transform {
	case "count":
		return strconv.Itoa(len(items)), true
	case "first":
		return items[0], true
	default: // join
		return strings.Join(items, ", "), true
	}
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
