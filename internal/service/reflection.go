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

const (
	defaultReflectionDomain = "general"
	recentChangesLimit      = 3
)

type reflectionService struct {
	repo  repository.ReflectionRepository
	clock Clock
}

// NewReflectionService creates a new reflection service
func NewReflectionService(repo repository.ReflectionRepository, clock Clock) ReflectionService {
	return &reflectionService{repo: repo, clock: clock}
}

// List returns reflections newest first. limit <= 0 returns all.
func (s *reflectionService) List(ctx context.Context, limit int) ([]models.Reflection, error) {
	reflections, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}

	result := newestFirst(reflections)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *reflectionService) Create(ctx context.Context, req *models.CreateReflectionRequest) (*models.Reflection, error) {
	if err := checkDate("date", req.Date); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &models.Reflection{
		ID:     NewID(),
		Date:   req.Date,
		Domain: strings.TrimSpace(req.Domain),
		Win:    req.Win,
		Lesson: req.Lesson,
		Change: req.Change,
	})
}

func (s *reflectionService) Insights(ctx context.Context, date string) (*models.ReflectionInsights, error) {
	day, err := s.clock.ParseDay(date)
	if err != nil {
		return nil, err
	}
	reflections, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}
	return SummarizeReflections(reflections, day), nil
}

// newestFirst sorts by date descending; same-day rows keep reverse file
// order so the latest write comes first.
func newestFirst(reflections []models.Reflection) []models.Reflection {
	result := make([]models.Reflection, len(reflections))
	for i, r := range reflections {
		result[len(reflections)-1-i] = r
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}

// SummarizeReflections computes journal stats as of a day. The streak
// counts consecutive reflection days ending today, or yesterday when today
// has no entry yet.
func SummarizeReflections(reflections []models.Reflection, asOf time.Time) *models.ReflectionInsights {
	today := insight.FormatDate(asOf)
	weekFrom := insight.FormatDate(asOf.AddDate(0, 0, -6))

	visible := make([]models.Reflection, 0, len(reflections))
	for _, r := range reflections {
		if r.Date <= today {
			visible = append(visible, r)
		}
	}

	out := &models.ReflectionInsights{
		AsOf:          today,
		Total:         len(visible),
		ByDomain:      make([]models.DomainCount, 0),
		RecentChanges: make([]string, 0, recentChangesLimit),
	}

	days := make(map[string]bool)
	domains := make(map[string]int)
	for _, r := range visible {
		days[r.Date] = true
		if r.Date >= weekFrom {
			out.Last7Days++
		}
		domain := strings.ToLower(r.Domain)
		if domain == "" {
			domain = defaultReflectionDomain
		}
		domains[domain]++
	}

	cursor := asOf
	if !days[today] {
		cursor = asOf.AddDate(0, 0, -1)
	}
	for days[insight.FormatDate(cursor)] {
		out.Streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	for d, n := range domains {
		out.ByDomain = append(out.ByDomain, models.DomainCount{Domain: d, Count: n})
	}
	sort.Slice(out.ByDomain, func(i, j int) bool {
		if out.ByDomain[i].Count != out.ByDomain[j].Count {
			return out.ByDomain[i].Count > out.ByDomain[j].Count
		}
		return out.ByDomain[i].Domain < out.ByDomain[j].Domain
	})

	for _, r := range newestFirst(visible) {
		if len(out.RecentChanges) == recentChangesLimit {
			break
		}
		if c := strings.TrimSpace(r.Change); c != "" {
			out.RecentChanges = append(out.RecentChanges, c)
		}
	}

	return out
}
