// Package services holds the ledger engine: the in-memory working set,
// the add/edit session state machine, and the filter and aggregation
// pipeline the UI and chart collaborators read from.
package services

import (
	"context"
	"strings"
	"time"

	"libretto/internal/core"
	applog "libretto/internal/log"
)

// Draft holds the raw text fields a user is composing, for either a new
// or an edited record. It is never persisted.
type Draft struct {
	Amount   string
	Category string
	Note     string
	Date     string
}

// Engine orchestrates store calls and derives the views the collaborators
// consume. It expects a single logical caller: mutations must not be
// interleaved, matching the store's single-writer model.
type Engine struct {
	store Store
	log   *applog.Logger
	loc   *time.Location
	now   func() time.Time

	records   []core.Record
	filter    core.FilterMode
	draft     Draft
	editingID int64 // 0 means idle
}

type Option func(*Engine)

// WithLocation fixes the time zone used for "today" defaults and the
// week/month window boundaries.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithClock injects the evaluation moment, keeping filter behavior
// deterministic in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(logger *applog.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		loc:    time.Local,
		now:    time.Now,
		filter: core.FilterAll,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentEngine)
	}
	e.draft = e.emptyDraft()
	return e
}

func (e *Engine) today() string {
	return core.Today(e.now(), e.loc)
}

func (e *Engine) emptyDraft() Draft {
	return Draft{Date: e.today()}
}

// Refresh replaces the working set wholesale from the store. The store is
// the sole source of truth; there is no incremental patching.
func (e *Engine) Refresh(ctx context.Context) error {
	records, err := e.store.ListAll(ctx)
	if err != nil {
		return err
	}
	e.records = records
	return nil
}

// SubmitDraft commits the draft: an insert while idle, an update of the
// active record while editing. It returns false without touching the store
// when validation rejects the draft; the draft is left as typed so the
// caller can correct and resubmit.
func (e *Engine) SubmitDraft(ctx context.Context) (bool, error) {
	cents, err := core.ParseDecimalToCents(e.draft.Amount)
	if err != nil {
		e.log.DebugContext(ctx, "Draft rejected: invalid amount", applog.FieldError, err)
		return false, nil
	}

	category := strings.TrimSpace(e.draft.Category)
	if category == "" {
		e.log.DebugContext(ctx, "Draft rejected: empty category")
		return false, nil
	}

	rec := core.Record{
		Amount:   core.Money{Cents: cents},
		Category: category,
		Note:     strings.TrimSpace(e.draft.Note),
		Date:     e.draft.Date,
	}
	if rec.Date = strings.TrimSpace(rec.Date); rec.Date == "" {
		rec.Date = e.today()
	}

	if e.editingID != 0 {
		if err := e.store.Update(ctx, e.editingID, rec); err != nil {
			return false, err
		}
		e.log.InfoContext(ctx, "Record updated", applog.FieldExpenseID, e.editingID)
	} else {
		id, err := e.store.Insert(ctx, rec)
		if err != nil {
			return false, err
		}
		e.log.InfoContext(ctx, "Record added", applog.FieldExpenseID, id)
	}

	e.editingID = 0
	e.draft = e.emptyDraft()
	if err := e.Refresh(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// BeginEdit targets an existing record: the session moves to editing and
// the draft is repopulated from the record's fields. Ids absent from the
// working set are ignored, which defends against stale UI references.
func (e *Engine) BeginEdit(id int64) bool {
	for _, r := range e.records {
		if r.ID != id {
			continue
		}
		e.editingID = id
		e.draft = Draft{
			Amount:   r.Amount.Format(),
			Category: r.Category,
			Note:     r.Note,
			Date:     r.Date,
		}
		if strings.TrimSpace(e.draft.Date) == "" {
			e.draft.Date = e.today()
		}
		return true
	}
	return false
}

// CancelEdit discards the draft and returns to idle without any store call.
func (e *Engine) CancelEdit() {
	e.editingID = 0
	e.draft = e.emptyDraft()
}

// DeleteRecord removes the record and reloads the working set. Deleting the
// active edit target also resets the session, so the draft never references
// a record that no longer exists.
func (e *Engine) DeleteRecord(ctx context.Context, id int64) error {
	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}
	if e.editingID == id {
		e.CancelEdit()
	}
	e.log.InfoContext(ctx, "Record deleted", applog.FieldExpenseID, id)
	return e.Refresh(ctx)
}

// SetFilter switches the active time window. Unknown modes are ignored.
func (e *Engine) SetFilter(mode core.FilterMode) {
	if !mode.Valid() {
		return
	}
	e.filter = mode
}

func (e *Engine) Filter() core.FilterMode {
	return e.filter
}

// Editing returns the active edit target, if any.
func (e *Engine) Editing() (int64, bool) {
	return e.editingID, e.editingID != 0
}

func (e *Engine) Draft() Draft {
	return e.draft
}

// SetDraft replaces the draft fields; the UI collaborator writes through
// here as the user types.
func (e *Engine) SetDraft(d Draft) {
	e.draft = d
}

// WorkingSet returns the full in-memory record cache, newest first.
func (e *Engine) WorkingSet() []core.Record {
	return e.records
}

// FilteredView derives the records passing the active filter at the current
// moment, preserving working-set order.
func (e *Engine) FilteredView() []core.Record {
	return e.filter.Filter(e.records, e.now().In(e.loc))
}

// Totals recomputes the aggregate over the filtered view on every call.
func (e *Engine) Totals() core.Summary {
	return core.Summarize(e.FilteredView())
}

// ChartSeries exposes the per-category totals as an ordered (label, value)
// sequence for the chart collaborator.
func (e *Engine) ChartSeries() []core.CategoryAmount {
	return e.Totals().ByCategory
}
