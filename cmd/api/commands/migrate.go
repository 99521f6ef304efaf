package commands

import (
	"fmt"
	"os"

	"vetco/internal/adapters/storage/postgres"
	"vetco/internal/migrations"

	"github.com/spf13/cobra"
)

var migrateDSN string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Long: `Apply the embedded schema migrations (tables, indexes and the
row-level security policies) against the target Postgres database.

The serve command runs the same migrations at startup; this command is
for applying them from CI or against a database the server does not
own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVar(&migrateDSN, "db", "", "Database connection URL (defaults to DB_DSN)")
}

func runMigrate() error {
	dsn := migrateDSN
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		return fmt.Errorf("--db flag or DB_DSN is required")
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	fmt.Println("migrations applied")
	return nil
}
