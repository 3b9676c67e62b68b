package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedNow is 2025-03-14 09:30 in UTC-7, which is still the 14th locally
var fixedNow = time.Date(2025, 3, 14, 16, 30, 0, 0, time.UTC)

func testClock() Clock {
	return Clock{
		Now:      func() time.Time { return fixedNow },
		Location: time.FixedZone("PDT", -7*60*60),
	}
}

// mockRecordRepository is an in-memory RecordRepository keyed by idOf
type mockRecordRepository[T any] struct {
	rows    []T
	idOf    func(*T) string
	listErr error
}

func newMockRecordRepository[T any](idOf func(*T) string, rows ...T) *mockRecordRepository[T] {
	return &mockRecordRepository[T]{rows: rows, idOf: idOf}
}

func (m *mockRecordRepository[T]) List(ctx context.Context) ([]T, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]T, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockRecordRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	for i := range m.rows {
		if m.idOf(&m.rows[i]) == id {
			rec := m.rows[i]
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRecordRepository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	m.rows = append(m.rows, *rec)
	out := *rec
	return &out, nil
}

func (m *mockRecordRepository[T]) Update(ctx context.Context, rec *T) (*T, error) {
	for i := range m.rows {
		if m.idOf(&m.rows[i]) == m.idOf(rec) {
			m.rows[i] = *rec
			out := *rec
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRecordRepository[T]) Delete(ctx context.Context, id string) error {
	for i := range m.rows {
		if m.idOf(&m.rows[i]) == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newMockPlanRepository(rows ...models.PlanItem) *mockRecordRepository[models.PlanItem] {
	return newMockRecordRepository(func(p *models.PlanItem) string { return p.ID }, rows...)
}

func newMockTodoRepository(rows ...models.Todo) *mockRecordRepository[models.Todo] {
	return newMockRecordRepository(func(t *models.Todo) string { return t.ID }, rows...)
}

func newMockWorkoutRepository(rows ...models.Workout) *mockRecordRepository[models.Workout] {
	return newMockRecordRepository(func(w *models.Workout) string { return w.ID }, rows...)
}

func newMockReflectionRepository(rows ...models.Reflection) *mockRecordRepository[models.Reflection] {
	return newMockRecordRepository(func(r *models.Reflection) string { return r.ID }, rows...)
}

func newMockInboxRepository(rows ...models.InboxItem) *mockRecordRepository[models.InboxItem] {
	return newMockRecordRepository(func(i *models.InboxItem) string { return i.ID }, rows...)
}

// mockSignalRepository is an in-memory SignalRepository
type mockSignalRepository struct {
	entries     []models.MetricEntry
	upsertCalls int
	listErr     error
}

func (m *mockSignalRepository) List(ctx context.Context) ([]models.MetricEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.MetricEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *mockSignalRepository) Upsert(ctx context.Context, entry models.MetricEntry) error {
	m.upsertCalls++
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.Date != entry.Date || e.Metric != entry.Metric {
			kept = append(kept, e)
		}
	}
	m.entries = append(kept, entry)
	return nil
}

func (m *mockSignalRepository) Delete(ctx context.Context, date, metric string) error {
	for i, e := range m.entries {
		if e.Date == date && e.Metric == metric {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var errDiskFull = errors.New("disk full")

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool     { return &b }
