package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/JonnyWalker81/lifedash/internal/repository"
)

type todoService struct {
	repo  repository.TodoRepository
	clock Clock
}

// NewTodoService creates a new todo service
func NewTodoService(repo repository.TodoRepository, clock Clock) TodoService {
	return &todoService{repo: repo, clock: clock}
}

// List returns open todos oldest first, followed by completed ones when
// includeDone is set.
func (s *todoService) List(ctx context.Context, includeDone bool) ([]models.Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	result := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if includeDone || !t.Done {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Done != result[j].Done {
			return !result[i].Done
		}
		return result[i].Created.Before(result[j].Created)
	})
	return result, nil
}

func (s *todoService) Create(ctx context.Context, req *models.CreateTodoRequest) (*models.Todo, error) {
	return s.repo.Create(ctx, newTodo(s.clock, req.Text, req.Domain))
}

func newTodo(clock Clock, text string, domain *string) *models.Todo {
	todo := &models.Todo{
		ID:      NewID(),
		Text:    strings.TrimSpace(text),
		Created: clock.now().UTC(),
	}
	if domain != nil && *domain != "" {
		d := *domain
		todo.Domain = &d
	}
	return todo
}

func (s *todoService) Update(ctx context.Context, id string, req *models.UpdateTodoRequest) (*models.Todo, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		todo.Text = strings.TrimSpace(*req.Text)
	}
	// absent leaves the domain alone, null clears it
	if req.Domain.Set {
		todo.Domain = req.Domain.ToPtr()
	}
	if req.Done != nil && *req.Done != todo.Done {
		todo.Done = *req.Done
		if todo.Done {
			now := s.clock.now().UTC()
			todo.Completed = &now
		} else {
			todo.Completed = nil
		}
	}

	return s.repo.Update(ctx, todo)
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
