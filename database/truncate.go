package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/webfolio/api/metal/env"
)

// Truncate empties every schema table so a local database can be reseeded.
// It refuses to run against production.
type Truncate struct {
	db  *Connection
	env *env.Environment
}

func MakeTruncate(db *Connection, environment *env.Environment) *Truncate {
	return &Truncate{
		db:  db,
		env: environment,
	}
}

// Execute walks the schema tables dependents-first and empties each one.
// Missing tables are skipped; every failed table is reported.
func (t Truncate) Execute() error {
	if t.env.App.IsProduction() {
		return fmt.Errorf("refusing to truncate the production database")
	}

	db := t.db.Sql()
	tables := GetSchemaTables()

	var errs []error

	for i := len(tables) - 1; i >= 0; i-- {
		table := tables[i]

		if !db.Migrator().HasTable(table) {
			slog.Warn("skipped a missing table", "table", table)
			continue
		}

		if err := db.Exec(t.statementFor(table)).Error; err != nil {
			errs = append(errs, fmt.Errorf("issue truncating table [%s]: %w", table, err))
			continue
		}

		slog.Info("truncated table", "table", table)
	}

	return errors.Join(errs...)
}

// statementFor picks the wipe statement per driver. Postgres resets the
// identity sequences too; other drivers fall back to a plain delete.
func (t Truncate) statementFor(table string) string {
	if t.db.Sql().Dialector.Name() == DriverName {
		return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table)
	}

	return fmt.Sprintf("DELETE FROM %s;", table)
}
