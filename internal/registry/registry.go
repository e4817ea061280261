package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"text/template"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/docforge/internal/schemas"
	"github.com/jonathan/docforge/internal/types"
)

// Default locations, resolved relative to the working directory like the
// JSON schemas the registry is checked against.
const (
	DefaultPath       = "registry/modules.yaml"
	DefaultSchemaPath = "schemas/module_registry.schema.json"
)

// Registry is the immutable set of documentation modules, in declaration
// order. Load it once at process start and pass it by reference; it is
// safe for concurrent use because nothing mutates it after loading.
type Registry struct {
	Version string
	Modules []*Module

	byID map[string]*Module
}

type rawRegistry struct {
	Version string    `yaml:"version" validate:"required"`
	Modules []*Module `yaml:"modules" validate:"required,min=1,dive"`
}

// Load reads and validates a registry document, resolving the schema
// from its default location.
func Load(path string) (*Registry, error) {
	schemaPath := schemas.ResolveSchemaPath(DefaultSchemaPath)
	if schemaPath == "" {
		return nil, &LoadError{Path: path, Message: "registry schema not found: " + DefaultSchemaPath}
	}
	return LoadWithSchema(path, schemaPath)
}

// LoadWithSchema reads a registry document and validates it in three
// phases: JSON Schema, struct tags, then semantic checks (unique ids,
// trigger vocabulary, template parse). Any failure is fatal; a partially
// valid registry never loads.
func LoadWithSchema(path, schemaPath string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read registry file", Cause: err}
	}

	// Phase 1: structural validation against the JSON Schema. The YAML
	// document is converted to JSON for the schema checker.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse registry YAML", Cause: err}
	}
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to convert registry to JSON", Cause: err}
	}
	if err := schemas.ValidateDocument(schemaPath, jsonDoc); err != nil {
		return nil, &LoadError{Path: path, Message: "registry does not match schema", Cause: err}
	}

	// Phase 2: decode and check struct constraints.
	var raw rawRegistry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode registry", Cause: err}
	}
	if err := validator.New().Struct(&raw); err != nil {
		return nil, &LoadError{Path: path, Message: "registry failed struct validation", Cause: err}
	}

	// Phase 3: semantic checks and template compilation.
	reg := &Registry{
		Version: raw.Version,
		Modules: raw.Modules,
		byID:    make(map[string]*Module, len(raw.Modules)),
	}
	for _, m := range raw.Modules {
		if _, dup := reg.byID[m.ID]; dup {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("duplicate module id %q", m.ID)}
		}
		if err := finalizeModule(m); err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("module %q", m.ID), Cause: err}
		}
		reg.byID[m.ID] = m
	}

	return reg, nil
}

// finalizeModule performs per-module semantic checks and compiles the
// trigger patterns and template fragments.
func finalizeModule(m *Module) error {
	switch m.Kind {
	case KindUniversal:
		if len(m.Triggers) > 0 {
			return fmt.Errorf("universal module must not declare triggers")
		}
	case KindConditional:
		if len(m.Triggers) == 0 {
			return fmt.Errorf("conditional module must declare at least one trigger")
		}
	}

	for _, a := range m.AppliesTo {
		if !types.Category(a).IsValid() {
			return fmt.Errorf("unknown category %q in applies_to", a)
		}
	}

	for i := range m.Triggers {
		t := &m.Triggers[i]
		if t.Predicate == PredicateNameMatches {
			re, err := regexp.Compile(t.Arg)
			if err != nil {
				return fmt.Errorf("invalid name-matches pattern %q: %w", t.Arg, err)
			}
			t.re = re
		}
	}

	for _, f := range m.Fields {
		if f.Source == SourceMetadata && f.Key == "" {
			return fmt.Errorf("field %q: metadata source requires a key", f.Name)
		}
	}

	var err error
	m.narrativeTmpl, err = parseFragment(m.ID+".narrative", m.Narrative)
	if err != nil {
		return fmt.Errorf("narrative template: %w", err)
	}
	m.annotationTmpl, err = parseFragment(m.ID+".annotation", m.Annotation)
	if err != nil {
		return fmt.Errorf("annotation template: %w", err)
	}
	m.schemaTmpls = make(map[string]*template.Template, len(m.Schema))
	for key, src := range m.Schema {
		tmpl, err := parseFragment(m.ID+".schema."+key, src)
		if err != nil {
			return fmt.Errorf("schema template %q: %w", key, err)
		}
		m.schemaTmpls[key] = tmpl
	}

	return nil
}

func parseFragment(name, src string) (*template.Template, error) {
	return template.New(name).
		Option("missingkey=zero").
		Funcs(template.FuncMap{"manual": types.ManualToken}).
		Parse(src)
}

// Module returns the module with the given id.
func (r *Registry) Module(id string) (*Module, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Universal returns the universal modules in declaration order.
func (r *Registry) Universal() []*Module {
	return r.byKind(KindUniversal)
}

// Conditional returns the conditional modules in declaration order,
// which is also their selection priority order.
func (r *Registry) Conditional() []*Module {
	return r.byKind(KindConditional)
}

func (r *Registry) byKind(kind Kind) []*Module {
	var out []*Module
	for _, m := range r.Modules {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
