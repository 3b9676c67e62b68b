package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/repository"
)

type planService struct {
	repo  repository.PlanRepository
	clock Clock
}

// NewPlanService creates a new plan service
func NewPlanService(repo repository.PlanRepository, clock Clock) PlanService {
	return &planService{repo: repo, clock: clock}
}

// ListDay returns the day's items ordered by start time. Untimed items
// sort last.
func (s *planService) ListDay(ctx context.Context, date string) ([]models.PlanItem, error) {
	day, err := s.clock.ParseDay(date)
	if err != nil {
		return nil, err
	}
	return planForDay(ctx, s.repo, insight.FormatDate(day))
}

func planForDay(ctx context.Context, repo repository.PlanRepository, date string) ([]models.PlanItem, error) {
	items, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan: %w", err)
	}

	result := make([]models.PlanItem, 0)
	for _, item := range items {
		if item.Date == date {
			result = append(result, item)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Start, result[j].Start
		if (a == "") != (b == "") {
			return b == ""
		}
		return a < b
	})
	return result, nil
}

func (s *planService) Create(ctx context.Context, req *models.CreatePlanItemRequest) (*models.PlanItem, error) {
	if err := checkDate("date", req.Date); err != nil {
		return nil, err
	}
	item := &models.PlanItem{
		ID:    NewID(),
		Date:  req.Date,
		Start: req.Start,
		End:   req.End,
		Item:  req.Item,
		Done:  "0",
		Notes: req.Notes,
	}
	return s.repo.Create(ctx, item)
}

func (s *planService) Update(ctx context.Context, id string, req *models.UpdatePlanItemRequest) (*models.PlanItem, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Start != nil {
		item.Start = *req.Start
	}
	if req.End != nil {
		item.End = *req.End
	}
	if req.Item != nil {
		item.Item = *req.Item
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.Done != nil {
		item.Done = "0"
		if *req.Done {
			item.Done = "1"
		}
	}

	return s.repo.Update(ctx, item)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
