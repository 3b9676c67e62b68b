package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/repository"
	"golang.org/x/sync/errgroup"
)

type insightService struct {
	signalRepo repository.SignalRepository
	planRepo   repository.PlanRepository
	todoRepo   repository.TodoRepository
	clock      Clock
	settings   atomic.Pointer[insight.Settings]
}

// NewInsightService creates a new insight service
func NewInsightService(
	signalRepo repository.SignalRepository,
	planRepo repository.PlanRepository,
	todoRepo repository.TodoRepository,
	settings insight.Settings,
	clock Clock,
) InsightService {
	s := &insightService{
		signalRepo: signalRepo,
		planRepo:   planRepo,
		todoRepo:   todoRepo,
		clock:      clock,
	}
	s.settings.Store(&settings)
	return s
}

func (s *insightService) Settings() insight.Settings {
	return *s.settings.Load()
}

func (s *insightService) UpdateSettings(settings insight.Settings) {
	s.settings.Store(&settings)
}

// insightInputs is everything one computation reads from disk
type insightInputs struct {
	signals []models.MetricEntry
	plan    []models.PlanItem
	todos   []models.Todo
}

// load reads the tables concurrently. Todos are only read for the hub.
func (s *insightService) load(ctx context.Context, day time.Time, withTodos bool) (*insightInputs, error) {
	var in insightInputs
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		signals, err := s.signalRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load signals: %w", err)
		}
		in.signals = signals
		return nil
	})
	g.Go(func() error {
		plan, err := planForDay(ctx, s.planRepo, insight.FormatDate(day))
		if err != nil {
			return err
		}
		in.plan = plan
		return nil
	})
	if withTodos {
		g.Go(func() error {
			todos, err := s.todoRepo.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to load todos: %w", err)
			}
			in.todos = todos
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Report computes the insight report for a day (empty = today)
func (s *insightService) Report(ctx context.Context, date string, features insight.Features) (*models.InsightReport, error) {
	day, err := s.clock.ParseDay(date)
	if err != nil {
		return nil, err
	}
	in, err := s.load(ctx, day, false)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, in, day, features)
}

func (s *insightService) compute(ctx context.Context, in *insightInputs, day time.Time, features insight.Features) (*models.InsightReport, error) {
	start := time.Now()
	engine := insight.New(s.Settings(), features)

	report, err := engine.Compute(in.signals, in.plan, day)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("insight computed",
		logger.String("as_of", report.AsOf),
		logger.Int("signals", len(in.signals)),
		logger.Int("patterns", len(report.Patterns)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// Hub builds the home view: today's checklist, the minimal report and the
// open todo count.
func (s *insightService) Hub(ctx context.Context, date string) (*models.HubResponse, error) {
	day, err := s.clock.ParseDay(date)
	if err != nil {
		return nil, err
	}
	in, err := s.load(ctx, day, true)
	if err != nil {
		return nil, err
	}
	report, err := s.compute(ctx, in, day, insight.HubFeatures())
	if err != nil {
		return nil, err
	}

	settings := s.Settings()
	openTodos := 0
	for _, t := range in.todos {
		if !t.Done {
			openTodos++
		}
	}

	return &models.HubResponse{
		Date:       report.AsOf,
		ResetDay:   report.ResetDay,
		Checklist:  BuildChecklist(in.signals, settings, report.AsOf),
		Streaks:    report.Streaks,
		Weight:     report.Weight,
		Patterns:   report.Patterns,
		Insight:    report.Insight,
		TodaysPlan: report.TodaysPlan,
		OpenTodos:  openTodos,
	}, nil
}

// BuildChecklist reports each tracked metric's state on date: true for
// "1", false for any other logged value, null when nothing was logged.
func BuildChecklist(signals []models.MetricEntry, settings insight.Settings, date string) []models.HubSignal {
	today := make(map[string]string)
	for _, e := range signals {
		if e.Date == date {
			today[e.Metric] = e.Value
		}
	}

	metrics := append(append([]string{}, settings.BuildHabits...), settings.AvoidMetrics...)
	seen := make(map[string]bool, len(metrics))
	checklist := make([]models.HubSignal, 0, len(metrics))
	for _, m := range metrics {
		if seen[m] {
			continue
		}
		seen[m] = true

		item := models.HubSignal{Metric: m, Label: settings.Label(m)}
		if v, ok := today[m]; ok {
			item.Done = models.BoolValue(v == "1")
		}
		checklist = append(checklist, item)
	}
	return checklist
}
