package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/cli"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

var (
	flagStore      string
	flagDSN        string
	flagSQLitePath string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the session store schema",
	Long:  "Apply, roll back or inspect migrations for the postgres or sqlite session store.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE:  runMigrateDown,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	Args:  cobra.NoArgs,
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Session store: postgres or sqlite")
	migrateCmd.PersistentFlags().StringVar(&flagDSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string")
	migrateCmd.PersistentFlags().StringVar(&flagSQLitePath, "sqlite-path", "tripplanner.db", "SQLite database file")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

// openStore opens the selected SQL store. Open already applies pending
// migrations, so up only reports what that did.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	if flagStore != "postgres" && flagStore != "sqlite" {
		return nil, fmt.Errorf("--store must be postgres or sqlite, got %q", flagStore)
	}
	if flagStore == "postgres" && flagDSN == "" {
		return nil, fmt.Errorf("--dsn or DATABASE_URL is required for the postgres store")
	}
	return store.Open(cmd.Context(), store.Options{
		Kind:        flagStore,
		DatabaseURL: flagDSN,
		SQLitePath:  flagSQLitePath,
	})
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	statuses, err := s.Status(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s store is at version %d\n", s.Kind(), latestApplied(statuses))
	return nil
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	version, err := s.Down(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rolled back migration %d\n", version)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	statuses, err := s.Status(cmd.Context())
	if err != nil {
		return err
	}

	t := cli.Table{
		Title:      "Migrations (" + s.Kind() + ")",
		Headers:    []string{"Version", "File", "State"},
		RightAlign: map[int]bool{0: true},
	}
	for _, st := range statuses {
		state := "pending"
		if st.Applied {
			state = "applied"
		}
		t.Rows = append(t.Rows, []string{fmt.Sprint(st.Version), st.Path, state})
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(t))
	return nil
}

func latestApplied(statuses []store.MigrationStatus) int64 {
	var v int64
	for _, st := range statuses {
		if st.Applied && st.Version > v {
			v = st.Version
		}
	}
	return v
}
