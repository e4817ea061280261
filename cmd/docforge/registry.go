package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/schemas"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and validate the module registry",
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the module registry against its JSON schema",
	RunE:  runRegistryValidate,
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered documentation modules",
	RunE:  runRegistryList,
}

var registryPath string

func init() {
	registryCmd.PersistentFlags().StringVarP(&registryPath, "registry", "r", registry.DefaultPath, "Path to the module registry YAML")
	registryCmd.AddCommand(registryValidateCmd)
	registryCmd.AddCommand(registryListCmd)
	rootCmd.AddCommand(registryCmd)
}

func loadRegistryCmd() (*registry.Registry, error) {
	path := schemas.ResolveSchemaPath(registryPath)
	if path == "" {
		return nil, fmt.Errorf("module registry not found: %s", registryPath)
	}
	reg, err := registry.Load(path)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func runRegistryValidate(_ *cobra.Command, _ []string) error {
	reg, err := loadRegistryCmd()
	if err != nil {
		return err
	}

	fmt.Printf("Registry OK: %d modules (%d universal, %d conditional)\n",
		len(reg.Modules), len(reg.Universal()), len(reg.Conditional()))
	return nil
}

func runRegistryList(_ *cobra.Command, _ []string) error {
	reg, err := loadRegistryCmd()
	if err != nil {
		return err
	}

	fmt.Printf("%-16s %-12s %-28s %s\n", "ID", "KIND", "TITLE", "AUTO-FILL")
	for _, m := range reg.Modules {
		fmt.Printf("%-16s %-12s %-28s %d%%\n", m.ID, m.Kind, m.Title, m.AutoFillRate)
		if len(m.AppliesTo) > 0 {
			fmt.Printf("%-16s   applies to: %s\n", "", strings.Join(m.AppliesTo, ", "))
		}
	}
	return nil
}
