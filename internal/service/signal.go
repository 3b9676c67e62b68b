package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/repository"
)

type signalService struct {
	repo  repository.SignalRepository
	clock Clock
}

// NewSignalService creates a new signal service
func NewSignalService(repo repository.SignalRepository, clock Clock) SignalService {
	return &signalService{repo: repo, clock: clock}
}

func (s *signalService) List(ctx context.Context, from, to string) ([]models.MetricEntry, error) {
	if err := checkDate("from", from); err != nil {
		return nil, err
	}
	if err := checkDate("to", to); err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}

	result := make([]models.MetricEntry, 0, len(entries))
	for _, e := range entries {
		if inRange(e.Date, from, to) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

// Log records a signal, replacing any value already logged for the same
// date and metric. The date defaults to today.
func (s *signalService) Log(ctx context.Context, req *models.LogSignalRequest) (*models.MetricEntry, error) {
	entry := models.MetricEntry{
		Date:   req.Date,
		Metric: strings.TrimSpace(req.Metric),
		Value:  strings.TrimSpace(req.Value),
		Notes:  req.Notes,
	}
	if entry.Date == "" {
		entry.Date = insight.FormatDate(s.clock.Today())
	}

	if err := insight.ValidateEntry(entry); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("signal logged",
		logger.String("date", entry.Date),
		logger.String("metric", entry.Metric),
	)
	return &entry, nil
}

func (s *signalService) Delete(ctx context.Context, date, metric string) error {
	if date == "" {
		return &DateError{Field: "date"}
	}
	if err := checkDate("date", date); err != nil {
		return err
	}
	return s.repo.Delete(ctx, date, metric)
}
