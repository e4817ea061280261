package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docforge/internal/detection"
	"github.com/jonathan/docforge/internal/provider"
	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/schemas"
	"github.com/jonathan/docforge/internal/types"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	path := schemas.ResolveSchemaPath(registry.DefaultPath)
	require.NotEmpty(t, path)
	reg, err := registry.Load(path)
	require.NoError(t, err)
	return New(reg)
}

func fileTreeProvider() provider.Provider {
	return provider.NewStaticProvider(map[string]*types.ElementSignals{
		"FileTree": {
			Name:     "FileTree",
			Kind:     "function",
			FilePath: "src/components/FileTree.tsx",
			Imports:  []string{"react"},
			Exports:  []string{"FileTree"},
			Metadata: types.Metadata{
				HasInteractiveMarkup: true,
				StateVariables:       []string{"expanded", "selectedPath"},
				EventHandlers:        []string{"onClick"},
				Props:                []types.Prop{{Name: "onSelect"}},
			},
		},
	})
}

func TestGenerate_FileTreeEndToEnd(t *testing.T) {
	p := newPipeline(t)

	result := p.Generate(context.Background(), "FileTree", fileTreeProvider(), Options{})

	require.True(t, result.Success, "pipeline failed: %s", result.Error)
	require.NotNil(t, result.Document)

	assert.Equal(t, types.CategoryUIComponent, result.Detection.Category)
	assert.GreaterOrEqual(t, result.Detection.Confidence, 80)

	assert.Equal(t, result.Selection.Modules, result.ModulesUsed)
	assert.GreaterOrEqual(t, result.CompletionRate, 60)

	require.NotNil(t, result.Validation)
	assert.Equal(t, types.VerdictPass, result.Validation.Verdict)
	assert.NotEmpty(t, result.ReviewFlags)
}

func TestGenerate_EnvelopeCarriesStageResults(t *testing.T) {
	p := newPipeline(t)
	prov := fileTreeProvider()

	result := p.Generate(context.Background(), "FileTree", prov, Options{})
	require.True(t, result.Success, "pipeline failed: %s", result.Error)

	// The envelope must carry the same detection the later stages
	// consumed, not a copy from a different run.
	require.NotNil(t, result.Detection)
	sig, err := prov.Signals(context.Background(), "FileTree")
	require.NoError(t, err)
	det := detection.Detect(sig)
	assert.Equal(t, det, *result.Detection)

	require.NotNil(t, result.Selection)
	assert.Equal(t, result.Selection.Modules, result.Document.ModulesUsed)
}

func TestGenerate_TemplateModeOnMissingSignals(t *testing.T) {
	p := newPipeline(t)
	prov := provider.NewStaticProvider(nil)

	result := p.Generate(context.Background(), "MysteryWidget", prov, Options{})

	require.True(t, result.Success, "template mode is a degraded success, not a failure: %s", result.Error)
	require.NotNil(t, result.Document)

	assert.True(t, result.Detection.TemplateMode)
	assert.Equal(t, types.CategoryGeneric, result.Detection.Category)
	assert.Equal(t, 0, result.Detection.Confidence)

	// Universal modules only, skeleton-level completion, rejected by the
	// completion gate.
	assert.Equal(t, []string{"architecture", "integration", "testing", "performance"}, result.ModulesUsed)
	assert.Equal(t, 0, result.CompletionRate)
	assert.Equal(t, types.VerdictReject, result.Validation.Verdict)
}

func TestGenerate_StrictModeRejectsSkeleton(t *testing.T) {
	p := newPipeline(t)
	prov := provider.NewStaticProvider(nil)

	result := p.Generate(context.Background(), "MysteryWidget", prov, Options{Strict: true})

	assert.False(t, result.Success)
	assert.Nil(t, result.Document, "a strict-mode rejection must expose no artifacts")
	assert.NotEmpty(t, result.Error)
	assert.NotNil(t, result.Validation, "the advisory report is still returned")
}

type failingProvider struct{}

func (failingProvider) Signals(ctx context.Context, name string) (*types.ElementSignals, error) {
	return nil, errors.New("index unavailable")
}

func TestGenerate_ProviderFailure(t *testing.T) {
	p := newPipeline(t)

	result := p.Generate(context.Background(), "FileTree", failingProvider{}, Options{})

	assert.False(t, result.Success)
	assert.Nil(t, result.Document)
	assert.Contains(t, result.Error, "signal lookup failed")
}

func TestGenerate_ProgressEvents(t *testing.T) {
	p := newPipeline(t)

	var stages []string
	opts := Options{OnProgress: func(e ProgressEvent) {
		stages = append(stages, e.Stage)
	}}

	result := p.Generate(context.Background(), "FileTree", fileTreeProvider(), opts)
	require.True(t, result.Success)

	assert.Equal(t, []string{"signals", "detect", "select", "compose", "validate"}, stages)
}
