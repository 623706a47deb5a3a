package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func RunMigrations(dbPath string) error {
	// Create a separate connection for migrations to avoid interfering with the main connection
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

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

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// reconcileDateColumn upgrades ledgers created before the date column
// existed. It inspects the live column set, adds the column when missing,
// and backfills rows with a null or blank date to today so every persisted
// record satisfies the date-required invariant. Safe to run on every open.
func reconcileDateColumn(ctx context.Context, db *sql.DB, today string) error {
	hasDate, err := columnExists(ctx, db, "expenses", "date")
	if err != nil {
		return fmt.Errorf("inspect expenses columns: %w", err)
	}

	if !hasDate {
		if _, err := db.ExecContext(ctx, `ALTER TABLE expenses ADD COLUMN date TEXT`); err != nil {
			return fmt.Errorf("add date column: %w", err)
		}
		slog.InfoContext(ctx, "Added date column to expenses table")
	}

	res, err := db.ExecContext(ctx,
		`UPDATE expenses SET date = ? WHERE date IS NULL OR trim(date) = ''`, today)
	if err != nil {
		return fmt.Errorf("backfill dates: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.InfoContext(ctx, "Backfilled empty expense dates", "rows", n, "date", today)
	}

	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
