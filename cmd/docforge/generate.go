package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/docforge/internal/config"
	"github.com/jonathan/docforge/internal/db"
	"github.com/jonathan/docforge/internal/observability"
	"github.com/jonathan/docforge/internal/pipeline"
	"github.com/jonathan/docforge/internal/provider"
	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/schemas"
	"github.com/jonathan/docforge/internal/sink"
)

var generateCmd = &cobra.Command{
	Use:   "generate <element>",
	Short: "Generate documentation artifacts for one code element",
	Long: `Runs the full generation pipeline for a single element: category detection, module selection, artifact composition and validation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	genConfigPath  string
	genRegistry    string
	genSchema      string
	genSignals     string
	genOut         string
	genDatabaseURL string
	genStrict      bool
	genVerbose     bool
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCmd.Flags().StringVarP(&genRegistry, "registry", "r", "", "Path to the module registry YAML")
	generateCmd.Flags().StringVar(&genSchema, "schema", "", "Path to the registry JSON schema (optional, bundled schema by default)")
	generateCmd.Flags().StringVarP(&genSignals, "signals", "s", "", "Directory of element signal records")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Output directory for composed artifacts")
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	generateCmd.Flags().BoolVar(&genStrict, "strict", false, "Treat a REJECT verdict as a hard failure")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed stage information")

	rootCmd.AddCommand(generateCmd)
}

// resolveGenerateConfig merges the config file, CLI flags and defaults in
// priority order: flags win over the file, the file wins over defaults.
func resolveGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("registry") {
		cfg.Registry = genRegistry
	}
	if cmd.Flags().Changed("schema") {
		cfg.Schema = genSchema
	}
	if cmd.Flags().Changed("signals") {
		cfg.Signals = genSignals
	}
	if cmd.Flags().Changed("out") {
		cfg.Out = genOut
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = genStrict
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	defaults := config.Config{
		Registry:    registry.DefaultPath,
		Signals:     "signals",
		Out:         "docs/generated",
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	return cfg.MergeWithDefaults(defaults), nil
}

// app bundles the wired pipeline, signal provider and sinks for one
// invocation.
type app struct {
	pipe     *pipeline.Pipeline
	prov     provider.Provider
	sinks    []sink.Sink
	database *db.DB
}

func buildApp(ctx context.Context, cfg config.Config) (*app, error) {
	regPath := schemas.ResolveSchemaPath(cfg.Registry)
	if regPath == "" {
		return nil, fmt.Errorf("module registry not found: %s", cfg.Registry)
	}

	var reg *registry.Registry
	var err error
	if cfg.Schema != "" {
		schemaPath := schemas.ResolveSchemaPath(cfg.Schema)
		if schemaPath == "" {
			return nil, fmt.Errorf("registry schema not found: %s", cfg.Schema)
		}
		reg, err = registry.LoadWithSchema(regPath, schemaPath)
	} else {
		reg, err = registry.Load(regPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load module registry: %w", err)
	}

	a := &app{
		pipe: pipeline.New(reg),
		prov: provider.NewFileProvider(cfg.Signals),
	}

	if cfg.Out != "" {
		a.sinks = append(a.sinks, sink.NewFileSink(cfg.Out))
	}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.database = database
		a.sinks = append(a.sinks, sink.NewPostgresSink(database))
	}
	return a, nil
}

func (a *app) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

func (a *app) options(verbose bool, strict bool) pipeline.Options {
	opts := pipeline.Options{Strict: strict}
	if verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "→ [%s] %s: %s\n", e.Stage, e.Element, e.Message)
		}
	}
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	element := args[0]

	cfg, err := resolveGenerateConfig(cmd)
	if err != nil {
		return err
	}

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.pipe.Generate(ctx, element, a.prov, a.options(cfg.Verbose, cfg.Strict))

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintDetection(result.Detection)
		printer.PrintSelection(result.Selection)
		printer.PrintDocument(result.Document)
	}
	printer.PrintValidation(result.Validation)

	if !result.Success {
		return errors.New(result.Error)
	}

	for _, s := range a.sinks {
		if err := s.Persist(ctx, element, result.Document); err != nil {
			return err
		}
	}

	fmt.Printf("Generated %s: %d modules, %d%% completion, verdict %s\n",
		element, len(result.ModulesUsed), result.CompletionRate, result.Validation.Verdict)
	return nil
}
