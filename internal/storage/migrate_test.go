package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"libretto/internal/core"
)

// createLegacyDB builds a database the way installs created before the date
// column existed would look: same table, no date column, no migration state.
func createLegacyDB(t *testing.T, dbPath string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		amount NUMERIC NOT NULL,
		category TEXT NOT NULL,
		note TEXT
	)`)
	if err != nil {
		t.Fatalf("create legacy table: %v", err)
	}

	for _, cat := range []string{"Food", "Books"} {
		if _, err := db.Exec(
			`INSERT INTO expenses (amount, category) VALUES (?, ?)`, 500, cat); err != nil {
			t.Fatalf("seed legacy row: %v", err)
		}
	}
}

func TestLegacyDateColumnMigration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	createLegacyDB(t, dbPath)

	repo, err := NewSQLiteRepository(dbPath, time.UTC)
	if err != nil {
		t.Fatalf("open repository over legacy db: %v", err)
	}
	defer repo.Close()

	records, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list after migration: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 migrated rows, got %d", len(records))
	}

	today := core.Today(time.Now(), time.UTC)
	for _, r := range records {
		if r.Date != today {
			t.Fatalf("expected legacy row backfilled to %q, got %q", today, r.Date)
		}
	}
}

func TestMigrationIdempotence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	createLegacyDB(t, dbPath)

	// Open three times; the column must be added exactly once and reopening
	// an already-migrated ledger must be a no-op.
	for i := 0; i < 3; i++ {
		repo, err := NewSQLiteRepository(dbPath, time.UTC)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		repo.Close()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	dateCols := 0
	rows, err := db.Query(`PRAGMA table_info(expenses)`)
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, ctype      string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if name == "date" {
			dateCols++
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate: %v", err)
	}
	if dateCols != 1 {
		t.Fatalf("expected exactly one date column, got %d", dateCols)
	}
}

func TestBackfillLeavesExistingDatesAlone(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	repo, err := NewSQLiteRepository(dbPath, time.UTC)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id, err := repo.Insert(context.Background(), core.Record{
		Amount: core.Money{Cents: 100}, Category: "Food", Date: "2020-05-05",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	repo.Close()

	repo, err = NewSQLiteRepository(dbPath, time.UTC)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	records, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != id || records[0].Date != "2020-05-05" {
		t.Fatalf("historical date must survive reopen, got %+v", records)
	}
}
