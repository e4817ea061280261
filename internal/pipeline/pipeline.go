// Package pipeline provides the high-level orchestration for document
// generation: detect, select, compose, validate.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/docforge/internal/composition"
	"github.com/jonathan/docforge/internal/detection"
	"github.com/jonathan/docforge/internal/provider"
	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/selection"
	"github.com/jonathan/docforge/internal/types"
	"github.com/jonathan/docforge/internal/validation"
)

// ProgressEvent is one progress update during a generation run.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Element string `json:"element"`
	Message string `json:"message"`
}

// ProgressCallback is called as generation advances through stages.
type ProgressCallback func(event ProgressEvent)

// Options holds per-run configuration.
type Options struct {
	// Strict turns a REJECT verdict into a failed run. Validation is
	// advisory otherwise.
	Strict bool

	OnProgress ProgressCallback
}

// Pipeline runs the four stages against one loaded registry. The
// registry is read-only after construction, so one Pipeline is safe for
// concurrent use.
type Pipeline struct {
	reg *registry.Registry
}

// New creates a pipeline over the given registry.
func New(reg *registry.Registry) *Pipeline {
	return &Pipeline{reg: reg}
}

// Registry exposes the loaded registry for read-only inspection.
func (p *Pipeline) Registry() *registry.Registry {
	return p.reg
}

func emit(opts Options, stage, element, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Element: element, Message: message})
	}
}

// Generate runs the full pipeline for one element and returns the
// result envelope. The envelope always comes back non-nil; a failed run
// has Success=false, no document and an error message.
func (p *Pipeline) Generate(ctx context.Context, name string, prov provider.Provider, opts Options) *types.GenerationResult {
	result := &types.GenerationResult{ElementName: name}

	sig, err := prov.Signals(ctx, name)
	switch {
	case errors.Is(err, provider.ErrNotFound):
		emit(opts, "signals", name, "no index record, falling back to template mode")
		sig = nil
	case err != nil:
		result.Error = fmt.Sprintf("signal lookup failed: %v", err)
		return result
	default:
		emit(opts, "signals", name, "loaded element signals")
	}

	det := detection.Detect(sig)
	result.Detection = &det
	emit(opts, "detect", name, fmt.Sprintf("category %s at confidence %d", det.Category, det.Confidence))

	sel := selection.Select(&det, sig, p.reg)
	result.Selection = sel
	emit(opts, "select", name, fmt.Sprintf("selected %d modules", len(sel.Modules)))

	doc, err := composition.Compose(name, &det, sel, sig, p.reg)
	if err != nil {
		result.Error = fmt.Sprintf("composition failed: %v", err)
		return result
	}
	emit(opts, "compose", name, fmt.Sprintf("composed artifacts at %d%% completion", doc.CompletionRate))

	vr := validation.Validate(doc)
	result.Validation = vr
	emit(opts, "validate", name, fmt.Sprintf("score %d, verdict %s", vr.Score, vr.Verdict))

	if opts.Strict && vr.Verdict == types.VerdictReject {
		result.Error = fmt.Sprintf("document rejected in strict mode: score %d", vr.Score)
		return result
	}

	result.Success = true
	result.Document = doc
	result.ModulesUsed = doc.ModulesUsed
	result.CompletionRate = doc.CompletionRate
	result.ReviewFlags = doc.ReviewFlags
	return result
}
