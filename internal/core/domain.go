package core

import (
	"errors"
	"strings"
)

type (
	Money struct {
		Cents int64
	}

	// Record is a single persisted expense row.
	Record struct {
		ID       int64
		Amount   Money
		Category string
		Note     string // empty means absent
		Date     string // canonical YYYY-MM-DD; free text is tolerated but excluded from date filters
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

// Uncategorized is the bucket label for records whose category is blank.
const Uncategorized = "Uncategorized"

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
