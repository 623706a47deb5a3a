// Package storage owns the durable expenses relation: schema creation,
// in-place migration of pre-existing ledgers, and row-level CRUD.
package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"libretto/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db  *sql.DB
	loc *time.Location
}

// NewSQLiteRepository opens (creating if needed) the ledger database at
// dbPath, applies migrations and reconciles legacy schemas. The location
// determines the calendar date used when backfilling legacy rows.
func NewSQLiteRepository(dbPath string, loc *time.Location) (*SQLiteRepository, error) {
	if loc == nil {
		loc = time.Local
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, storageErr("create db directory", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storageErr("open sqlite database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageErr("ping database", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, storageErr("run migrations", err)
	}

	today := core.Today(time.Now(), loc)
	if err := reconcileDateColumn(context.Background(), db, today); err != nil {
		db.Close()
		return nil, storageErr("reconcile schema", err)
	}

	return &SQLiteRepository{db: db, loc: loc}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListAll returns every record ordered by id descending, most recently
// created first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, note, date FROM expenses ORDER BY id DESC`)
	if err != nil {
		return nil, storageErr("list expenses", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			rec  core.Record
			note sql.NullString
			date sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Amount.Cents, &rec.Category, &note, &date); err != nil {
			return nil, storageErr("scan expense row", err)
		}
		rec.Note = note.String
		rec.Date = date.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate expense rows", err)
	}

	return records, nil
}

// Insert persists a new row and returns the generated id. Validation is the
// caller's job; the store writes what it is given.
func (r *SQLiteRepository) Insert(ctx context.Context, rec core.Record) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, category, note, date) VALUES (?, ?, ?, ?)`,
		rec.Amount.Cents, rec.Category, nullIfEmpty(rec.Note), rec.Date)
	if err != nil {
		return 0, storageErr("insert expense", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("read generated id", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category,
		"date", rec.Date)

	return id, nil
}

// Update overwrites all mutable fields of the row matching id. Missing ids
// are a no-op, not an error.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, rec core.Record) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, category = ?, note = ?, date = ? WHERE id = ?`,
		rec.Amount.Cents, rec.Category, nullIfEmpty(rec.Note), rec.Date, id)
	if err != nil {
		return storageErr("update expense", err)
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "amount_cents", rec.Amount.Cents)
	return nil
}

// Delete removes the row matching id. Missing ids are a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete expense", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
