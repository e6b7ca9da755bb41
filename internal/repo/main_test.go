package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/trip-planner/backend/internal/store"
)

// TestMain brings the Postgres test database up to the latest schema through
// the same store.Open path the server uses. Without TEST_DATABASE_URL the
// Postgres cases skip and the memory and SQLite cases run on their own.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	s, err := store.Open(context.Background(), store.Options{Kind: "postgres", DatabaseURL: dsn})
	if err != nil {
		log.Fatalf("TestMain: migrate test database: %v", err)
	}
	s.Close()

	os.Exit(m.Run())
}
