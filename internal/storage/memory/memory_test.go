package memory

import (
	"context"
	"testing"

	"libretto/internal/core"
)

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		id, err := s.Insert(ctx, core.Record{Amount: core.Money{Cents: 100}, Category: "x"})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id <= last {
			t.Fatalf("expected increasing ids, got %d after %d", id, last)
		}
		last = id
	}
}

func TestListAllDescending(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, cat := range []string{"a", "b", "c"} {
		if _, err := s.Insert(ctx, core.Record{Amount: core.Money{Cents: 100}, Category: cat}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 || records[0].Category != "c" || records[2].Category != "a" {
		t.Fatalf("expected newest first, got %+v", records)
	}
}

func TestUpdateAndDeleteNoOpOnMissing(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Update(ctx, 42, core.Record{Amount: core.Money{Cents: 1}, Category: "x"}); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if err := s.Delete(ctx, 42); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d", len(records))
	}
}
