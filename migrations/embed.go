// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API from the server, tripctl and tests.
// The schema is written in the common subset of Postgres and SQLite.
package migrations

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
// Pass this to goose.NewProvider instead of relying on
// a filesystem path at runtime.
//
//go:embed *.sql
var FS embed.FS

// Dialect maps a store name from configuration to its goose dialect.
func Dialect(store string) (goose.Dialect, error) {
	switch store {
	case "postgres":
		return goose.DialectPostgres, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("migrations.Dialect: no migrations for store %q", store)
	}
}
