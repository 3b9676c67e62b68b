package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/repository"
)

// summaryWindowDays is the trailing window for weekly workout counts
const summaryWindowDays = 7

type workoutService struct {
	repo  repository.WorkoutRepository
	clock Clock
}

// NewWorkoutService creates a new workout service
func NewWorkoutService(repo repository.WorkoutRepository, clock Clock) WorkoutService {
	return &workoutService{repo: repo, clock: clock}
}

func (s *workoutService) List(ctx context.Context, from, to string) ([]models.Workout, error) {
	if err := checkDate("from", from); err != nil {
		return nil, err
	}
	if err := checkDate("to", to); err != nil {
		return nil, err
	}

	workouts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	result := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if inRange(w.Date, from, to) {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

func (s *workoutService) Create(ctx context.Context, req *models.CreateWorkoutRequest) (*models.Workout, error) {
	if err := checkDate("date", req.Date); err != nil {
		return nil, err
	}
	w := &models.Workout{
		ID:       NewID(),
		Date:     req.Date,
		Type:     strings.ToLower(strings.TrimSpace(req.Type)),
		Exercise: strings.TrimSpace(req.Exercise),
		Sets:     req.Sets,
		Reps:     req.Reps,
		Weight:   req.Weight,
		Notes:    req.Notes,
	}
	return s.repo.Create(ctx, w)
}

func (s *workoutService) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Summary counts training days in the trailing week and tracks the latest
// working weight per exercise.
func (s *workoutService) Summary(ctx context.Context, date string) (*models.WorkoutSummary, error) {
	day, err := s.clock.ParseDay(date)
	if err != nil {
		return nil, err
	}
	workouts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return SummarizeWorkouts(workouts, day), nil
}

// SummarizeWorkouts builds the summary as of a day. Rows after asOf are
// ignored.
func SummarizeWorkouts(workouts []models.Workout, asOf time.Time) *models.WorkoutSummary {
	today := insight.FormatDate(asOf)
	from := insight.FormatDate(asOf.AddDate(0, 0, -(summaryWindowDays - 1)))

	sessionDays := make(map[string]bool)
	typeDays := make(map[[2]string]bool)
	summary := &models.WorkoutSummary{
		AsOf:          today,
		TypeCounts:    make(map[string]int),
		ExerciseBests: make([]models.ExerciseBest, 0),
	}

	bests := make(map[string]*models.ExerciseBest)
	exerciseDays := make(map[[2]string]bool)

	for _, w := range workouts {
		if w.Date > today {
			continue
		}

		if w.Date >= from {
			sessionDays[w.Date] = true
			if w.Type != "" && !typeDays[[2]string{w.Date, w.Type}] {
				typeDays[[2]string{w.Date, w.Type}] = true
				summary.TypeCounts[w.Type]++
			}
		}

		if w.Exercise == "" {
			continue
		}
		key := strings.ToLower(w.Exercise)
		b, ok := bests[key]
		if !ok {
			b = &models.ExerciseBest{Exercise: w.Exercise}
			bests[key] = b
		}
		if !exerciseDays[[2]string{key, w.Date}] {
			exerciseDays[[2]string{key, w.Date}] = true
			b.Sessions++
		}
		switch {
		case w.Date > b.LastDate:
			b.LastDate, b.LastWeight = w.Date, w.Weight
		case w.Date == b.LastDate && w.Weight > b.LastWeight:
			b.LastWeight = w.Weight
		}
	}

	summary.SessionsWeek = len(sessionDays)
	for _, b := range bests {
		summary.ExerciseBests = append(summary.ExerciseBests, *b)
	}
	sort.Slice(summary.ExerciseBests, func(i, j int) bool {
		return strings.ToLower(summary.ExerciseBests[i].Exercise) < strings.ToLower(summary.ExerciseBests[j].Exercise)
	})
	return summary
}
