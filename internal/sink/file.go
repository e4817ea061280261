package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/docforge/internal/types"
)

// FileSink writes the artifacts to <out>/<element>/ as three co-located
// files. It stages them in a temporary directory and publishes with a
// single rename, so a fault mid-write leaves no partial output.
type FileSink struct {
	out string
}

// NewFileSink creates a sink rooted at the output directory.
func NewFileSink(out string) *FileSink {
	return &FileSink{out: out}
}

// Persist writes narrative, schema and annotation for one element.
func (s *FileSink) Persist(ctx context.Context, elementName string, doc *types.ComposedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	staging, err := os.MkdirTemp(s.out, ".staging-"+elementName+"-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	schemaJSON, err := json.MarshalIndent(doc.Schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema artifact: %w", err)
	}

	files := map[string][]byte{
		elementName + ".md":             []byte(doc.Narrative),
		elementName + ".schema.json":    append(schemaJSON, '\n'),
		elementName + ".annotation.txt": []byte(doc.Annotation),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(staging, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to stage artifact %s: %w", name, err)
		}
	}

	target := filepath.Join(s.out, elementName)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to clear previous output: %w", err)
	}
	if err := os.Rename(staging, target); err != nil {
		return fmt.Errorf("failed to publish artifacts: %w", err)
	}
	return nil
}
