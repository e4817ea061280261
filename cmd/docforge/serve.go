package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/docforge/internal/config"
	"github.com/jonathan/docforge/internal/server"
)

var (
	servePort     int
	serveRegistry string
	serveSchema   string
	serveSignals  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the generation pipeline, inspecting the module registry and querying persisted runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveRegistry, "registry", "r", "", "Path to the module registry YAML")
	serveCmd.Flags().StringVar(&serveSchema, "schema", "", "Path to the registry JSON schema (optional, bundled schema by default)")
	serveCmd.Flags().StringVarP(&serveSignals, "signals", "s", "signals", "Directory of element signal records")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hashKeyCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// API key hash is required; without it neither credential path can
	// authenticate a request.
	apiKeyHash := os.Getenv("API_KEY_HASH")
	if apiKeyHash == "" {
		return fmt.Errorf("API_KEY_HASH environment variable is required (see the hash-key command)")
	}

	cfg := server.Config{
		Port:         servePort,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RegistryPath: serveRegistry,
		SchemaPath:   serveSchema,
		SignalsDir:   serveSignals,
		APIKeyHash:   apiKeyHash,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <key>",
	Short: "Hash an API key for use as API_KEY_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		keys, err := config.NewAPIKeyConfig()
		if err != nil {
			return err
		}
		hash, err := keys.HashKey(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}
