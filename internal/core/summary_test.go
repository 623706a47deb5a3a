package core

import "testing"

func TestSummarize(t *testing.T) {
	records := []Record{
		{Category: "Food", Amount: Money{Cents: 1000}},
		{Category: "Food", Amount: Money{Cents: 500}},
		{Category: "Books", Amount: Money{Cents: 2000}},
	}
	s := Summarize(records)

	if s.Total.Cents != 3500 {
		t.Fatalf("expected total 3500, got %d", s.Total.Cents)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(s.ByCategory))
	}
	if s.ByCategory[0].Label != "Food" || s.ByCategory[0].Amount.Cents != 1500 {
		t.Fatalf("expected Food:1500 first, got %+v", s.ByCategory[0])
	}
	if s.ByCategory[1].Label != "Books" || s.ByCategory[1].Amount.Cents != 2000 {
		t.Fatalf("expected Books:2000 second, got %+v", s.ByCategory[1])
	}
}

func TestSummarizeUncategorized(t *testing.T) {
	records := []Record{
		{Category: "", Amount: Money{Cents: 100}},
		{Category: "Food", Amount: Money{Cents: 200}},
		{Category: "", Amount: Money{Cents: 300}},
	}
	s := Summarize(records)

	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(s.ByCategory))
	}
	if s.ByCategory[0].Label != Uncategorized || s.ByCategory[0].Amount.Cents != 400 {
		t.Fatalf("expected Uncategorized:400 first, got %+v", s.ByCategory[0])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 || len(s.ByCategory) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}
