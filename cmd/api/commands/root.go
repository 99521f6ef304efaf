package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	devMode bool
)

// rootCmd representa el comando base
var rootCmd = &cobra.Command{
	Use:   "vetco",
	Short: "VETCO - farm animal health management backend",
	Long: `VETCO is the backend for the farm animal health platform:
role-based accounts (farmer, vet, admin), animal records, health
records per animal, profiles with avatar upload, and per-role
dashboards.

Auth and file storage are delegated to a Supabase project (GoTrue and
Storage); data lives in Postgres or, without DB_DSN, in memory for
local development.`,
}

// Execute corre el comando raíz
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Dev mode: skip Supabase auth, accept X-Debug-User-ID")
}
