package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/docforge/internal/types"
)

// FileProvider reads signal records from a directory of JSON files, one
// file per element, named <element>.json.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a provider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Signals loads and decodes the element's record. A missing file maps
// to ErrNotFound so callers can fall back to template mode.
func (p *FileProvider) Signals(ctx context.Context, name string) (*types.ElementSignals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(name, `/\`) || name == "" || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid element name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(p.dir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read signals for %s: %w", name, err)
	}

	var sig types.ElementSignals
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, fmt.Errorf("failed to decode signals for %s: %w", name, err)
	}
	if sig.Name == "" {
		sig.Name = name
	}
	return &sig, nil
}
