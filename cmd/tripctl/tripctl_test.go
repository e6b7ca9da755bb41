package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes rootCmd with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		flagPrefs, flagQuery, flagCategory = nil, "", "all"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// ---- catalog ----

func TestCatalog_Preferences(t *testing.T) {
	out, err := run(t, "catalog", "--prefs", "food")

	require.NoError(t, err)
	assert.Contains(t, out, "Le Jules Verne")
	assert.Contains(t, out, "Categories: dining")
}

func TestCatalog_UnknownPreference(t *testing.T) {
	_, err := run(t, "catalog", "--prefs", "skiing")

	assert.ErrorContains(t, err, "unknown preference")
}

func TestCatalog_NoMatch(t *testing.T) {
	out, err := run(t, "catalog", "--query", "submarine")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching activities.")
}

// ---- plan ----

func TestPlan_PrintsItineraryAndBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[trip]
name = "Weekend"
destination = "paris"
start = "2025-04-01"
end = "2025-04-02"
budget = "500"

[[activity]]
id = "f1"
day = 2
`), 0o600))

	out, err := run(t, "plan", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Weekend")
	assert.Contains(t, out, "Le Jules Verne")
	assert.Contains(t, out, "12:00")
	assert.Contains(t, out, "$350.00 remaining")
}

// ---- migrate ----

func TestMigrate_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trips.db")

	out, err := run(t, "migrate", "up", "--store", "sqlite", "--sqlite-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite store is at version 1")

	out, err = run(t, "migrate", "status", "--store", "sqlite", "--sqlite-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "00001_create_sessions.sql")
	assert.Contains(t, out, "applied")
}

func TestMigrate_RejectsMemoryStore(t *testing.T) {
	_, err := run(t, "migrate", "status", "--store", "memory")

	assert.ErrorContains(t, err, "--store must be postgres or sqlite")
}
