package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docforge/internal/types"
)

func sampleDoc() *types.ComposedDocument {
	return &types.ComposedDocument{
		ElementName: "FileTree",
		Category:    types.CategoryUIComponent,
		ModulesUsed: []string{"architecture"},
		Narrative:   "# FileTree\n\n## Summary\n\ncontent\n",
		Schema: map[string]types.SchemaValue{
			"source_path": {Value: "src/components/FileTree.tsx", Generated: true},
		},
		Annotation:     "// docforge:begin FileTree\n// @architecture\n// docforge:end\n",
		CompletionRate: 70,
	}
}

func TestFileSink_WritesThreeArtifacts(t *testing.T) {
	out := t.TempDir()
	doc := sampleDoc()

	err := NewFileSink(out).Persist(context.Background(), "FileTree", doc)
	require.NoError(t, err)

	dir := filepath.Join(out, "FileTree")

	narrative, err := os.ReadFile(filepath.Join(dir, "FileTree.md"))
	require.NoError(t, err)
	assert.Equal(t, doc.Narrative, string(narrative))

	annotation, err := os.ReadFile(filepath.Join(dir, "FileTree.annotation.txt"))
	require.NoError(t, err)
	assert.Equal(t, doc.Annotation, string(annotation))

	schemaBytes, err := os.ReadFile(filepath.Join(dir, "FileTree.schema.json"))
	require.NoError(t, err)
	var schema map[string]types.SchemaValue
	require.NoError(t, json.Unmarshal(schemaBytes, &schema))
	assert.Equal(t, doc.Schema, schema)
}

func TestFileSink_ReplacesPreviousOutput(t *testing.T) {
	out := t.TempDir()
	s := NewFileSink(out)

	require.NoError(t, s.Persist(context.Background(), "FileTree", sampleDoc()))

	updated := sampleDoc()
	updated.Narrative = "# FileTree\n\n## Summary\n\nrevised\n"
	require.NoError(t, s.Persist(context.Background(), "FileTree", updated))

	narrative, err := os.ReadFile(filepath.Join(out, "FileTree", "FileTree.md"))
	require.NoError(t, err)
	assert.Contains(t, string(narrative), "revised")
}

func TestFileSink_LeavesNoStagingResidue(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, NewFileSink(out).Persist(context.Background(), "FileTree", sampleDoc()))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "FileTree", entries[0].Name())
}

func TestFileSink_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := t.TempDir()
	err := NewFileSink(out).Persist(ctx, "FileTree", sampleDoc())
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(out, "FileTree"))
	assert.True(t, os.IsNotExist(statErr), "no artifacts may appear for a cancelled persist")
}
