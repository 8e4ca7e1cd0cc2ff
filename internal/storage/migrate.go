package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending migration to the database at dbPath.
// Running it against an up-to-date file is a no-op.
func RunMigrations(dbPath string) error {
	// Create a separate connection for migrations to avoid interfering with the main connection
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	if err := upgradeLegacyClients(migrateDB); err != nil {
		return err
	}

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// legacyClientColumns were added to clients after the first phone release.
var legacyClientColumns = []struct {
	name string
	ddl  string
}{
	{"daily_rate", `ALTER TABLE clients ADD COLUMN daily_rate REAL DEFAULT 0`},
	{"days_worked", `ALTER TABLE clients ADD COLUMN days_worked INTEGER DEFAULT 0`},
}

// upgradeLegacyClients adds the columns missing from a clients table created
// by an older release. It runs ahead of the versioned migrations because
// migration 1 leaves an existing table untouched.
func upgradeLegacyClients(db *sql.DB) error {
	rows, err := db.Query(`SELECT name FROM pragma_table_info('clients')`)
	if err != nil {
		return fmt.Errorf("inspect clients table: %w", err)
	}
	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("inspect clients table: %w", err)
		}
		have[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect clients table: %w", err)
	}
	if len(have) == 0 {
		return nil
	}

	for _, col := range legacyClientColumns {
		if have[col.name] {
			continue
		}
		if _, err := db.Exec(col.ddl); err != nil {
			return fmt.Errorf("add clients.%s: %w", col.name, err)
		}
	}
	return nil
}

// SchemaVersion reports the migration version recorded in the database.
func SchemaVersion(dbPath string) (uint, bool, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, false, fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return 0, false, fmt.Errorf("create sqlite driver: %w", err)
	}
	version, dirty, err := driver.Version()
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	if version < 0 {
		return 0, false, nil
	}
	return uint(version), dirty, nil
}
