package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/docforge/internal/config"
	"github.com/jonathan/docforge/internal/registry"
)

var batchCmd = &cobra.Command{
	Use:   "batch [elements...]",
	Short: "Generate documentation for many elements in parallel",
	Long: `Runs the generation pipeline for every named element, or for every signal record in the signals directory when no elements are given.

Elements are processed by a bounded worker pool; one failing element does not stop the others.`,
	RunE: runBatch,
}

var (
	batchConfigPath  string
	batchRegistry    string
	batchSchema      string
	batchSignals     string
	batchOut         string
	batchDatabaseURL string
	batchStrict      bool
	batchVerbose     bool
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	batchCmd.Flags().StringVarP(&batchRegistry, "registry", "r", "", "Path to the module registry YAML")
	batchCmd.Flags().StringVar(&batchSchema, "schema", "", "Path to the registry JSON schema (optional, bundled schema by default)")
	batchCmd.Flags().StringVarP(&batchSignals, "signals", "s", "", "Directory of element signal records")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output directory for composed artifacts")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "Treat a REJECT verdict as a hard failure")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print per-element stage information")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Parallel workers (default 4)")

	rootCmd.AddCommand(batchCmd)
}

func resolveBatchConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if batchConfigPath != "" {
		loaded, err := config.LoadConfig(batchConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("registry") {
		cfg.Registry = batchRegistry
	}
	if cmd.Flags().Changed("schema") {
		cfg.Schema = batchSchema
	}
	if cmd.Flags().Changed("signals") {
		cfg.Signals = batchSignals
	}
	if cmd.Flags().Changed("out") {
		cfg.Out = batchOut
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = batchDatabaseURL
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = batchStrict
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = batchVerbose
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = batchConcurrency
	}

	defaults := config.Config{
		Registry:    registry.DefaultPath,
		Signals:     "signals",
		Out:         "docs/generated",
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	return cfg.MergeWithDefaults(defaults), nil
}

// discoverElements lists the element names of every signal record in the
// signals directory.
func discoverElements(signalsDir string) ([]string, error) {
	entries, err := os.ReadDir(signalsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read signals directory: %w", err)
	}

	var elements []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		elements = append(elements, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(elements)
	return elements, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveBatchConfig(cmd)
	if err != nil {
		return err
	}

	elements := args
	if len(elements) == 0 {
		elements, err = discoverElements(cfg.Signals)
		if err != nil {
			return err
		}
	}
	if len(elements) == 0 {
		return fmt.Errorf("no elements to generate: pass element names or populate %s", filepath.Clean(cfg.Signals))
	}

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := a.options(cfg.Verbose, cfg.Strict)

	var mu sync.Mutex
	failed := map[string]string{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, element := range elements {
		g.Go(func() error {
			result := a.pipe.Generate(gctx, element, a.prov, opts)
			if !result.Success {
				mu.Lock()
				failed[element] = result.Error
				mu.Unlock()
				return nil
			}
			for _, s := range a.sinks {
				if err := s.Persist(gctx, element, result.Document); err != nil {
					mu.Lock()
					failed[element] = err.Error()
					mu.Unlock()
					return nil
				}
			}
			mu.Lock()
			fmt.Printf("✓ %s: %d%% completion, verdict %s\n",
				element, result.CompletionRate, result.Validation.Verdict)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(failed) > 0 {
		for element, reason := range failed {
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", element, reason)
		}
		return fmt.Errorf("%d of %d elements failed", len(failed), len(elements))
	}

	fmt.Printf("Generated %d elements\n", len(elements))
	return nil
}
