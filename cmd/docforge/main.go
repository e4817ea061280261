// Package main provides the entry point for the docforge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docforge",
	Short: "Modular reference documentation generator",
	Long:  "Docforge generates reference documentation for code elements by detecting the element category, selecting documentation modules from a registry, composing narrative, schema and annotation artifacts, and validating the result through quality gates.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
