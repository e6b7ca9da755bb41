package main

import (
	"os"

	"github.com/spf13/cobra"
)

var flagCatalog string

var rootCmd = &cobra.Command{
	Use:          "tripctl",
	Short:        "Trip planner operator CLI",
	Long:         "Run session store migrations, browse the activity catalog and preview trip plans.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", os.Getenv("CATALOG_PATH"), "TOML activity catalog (builtin when empty)")
}
