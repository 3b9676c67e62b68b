package repository

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

type signalRepository struct {
	table *csvTable[models.MetricEntry]
}

// NewSignalRepository creates a signal repository over dir/signals.csv
func NewSignalRepository(dir string) SignalRepository {
	return &signalRepository{table: signalTable(dir)}
}

func (r *signalRepository) List(ctx context.Context) ([]models.MetricEntry, error) {
	return r.table.readAll(ctx)
}

func (r *signalRepository) Upsert(ctx context.Context, entry models.MetricEntry) error {
	entries, err := r.table.readAll(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Date != entry.Date || e.Metric != entry.Metric {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entry)

	if err := r.table.writeAll(ctx, kept); err != nil {
		return fmt.Errorf("failed to log signal: %w", err)
	}
	return nil
}

func (r *signalRepository) Delete(ctx context.Context, date, metric string) error {
	entries, err := r.table.readAll(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Date != date || e.Metric != metric {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return ErrNotFound
	}

	if err := r.table.writeAll(ctx, kept); err != nil {
		return fmt.Errorf("failed to delete signal: %w", err)
	}
	return nil
}
