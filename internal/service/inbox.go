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

// Route targets for inbox captures
const (
	RouteTodo       = "todo"
	RouteReflection = "reflection"
)

// Capture prefixes that route immediately
var capturePrefixes = []struct {
	prefix string
	target string
}{
	{"todo:", RouteTodo},
	{"reflect:", RouteReflection},
}

type inboxService struct {
	inboxRepo      repository.InboxRepository
	todoRepo       repository.TodoRepository
	reflectionRepo repository.ReflectionRepository
	clock          Clock
}

// NewInboxService creates a new inbox service
func NewInboxService(
	inboxRepo repository.InboxRepository,
	todoRepo repository.TodoRepository,
	reflectionRepo repository.ReflectionRepository,
	clock Clock,
) InboxService {
	return &inboxService{
		inboxRepo:      inboxRepo,
		todoRepo:       todoRepo,
		reflectionRepo: reflectionRepo,
		clock:          clock,
	}
}

// List returns captures newest first, optionally filtered by status
func (s *inboxService) List(ctx context.Context, status string) ([]models.InboxItem, error) {
	items, err := s.inboxRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}

	result := make([]models.InboxItem, 0, len(items))
	for _, item := range items {
		if status == "" || string(item.Status) == status {
			result = append(result, item)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Captured.After(result[j].Captured)
	})
	return result, nil
}

// Capture stores a quick note. Text starting with "todo:" or "reflect:"
// is routed on the spot.
func (s *inboxService) Capture(ctx context.Context, req *models.CaptureRequest) (*models.InboxItem, error) {
	text := strings.TrimSpace(req.Text)
	source := req.Source
	if source == "" {
		source = "api"
	}

	item := &models.InboxItem{
		ID:       NewID(),
		Captured: s.clock.now().UTC(),
		Text:     text,
		Source:   source,
		Status:   models.InboxStatusPending,
	}

	target, body := splitPrefix(text)
	if target != "" && body != "" {
		item.Text = body
		routedTo, err := s.deliver(ctx, target, body)
		if err != nil {
			return nil, err
		}
		item.Status = models.InboxStatusRouted
		item.RoutedTo = routedTo
	}

	created, err := s.inboxRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("inbox capture",
		logger.String("id", created.ID),
		logger.String("status", string(created.Status)),
		logger.String("routed_to", created.RoutedTo),
	)
	return created, nil
}

func splitPrefix(text string) (target, body string) {
	lower := strings.ToLower(text)
	for _, p := range capturePrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.target, strings.TrimSpace(text[len(p.prefix):])
		}
	}
	return "", text
}

// Route turns a pending capture into a todo or a reflection
func (s *inboxService) Route(ctx context.Context, id string, req *models.RouteInboxRequest) (*models.InboxItem, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	item, err := s.inboxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status != models.InboxStatusPending {
		return nil, fmt.Errorf("%w: item is %s", ErrAlreadyRouted, item.Status)
	}

	routedTo, err := s.deliver(ctx, req.Target, item.Text)
	if err != nil {
		return nil, err
	}
	item.Status = models.InboxStatusRouted
	item.RoutedTo = routedTo

	return s.inboxRepo.Update(ctx, item)
}

// deliver creates the target record and returns "<target>:<id>"
func (s *inboxService) deliver(ctx context.Context, target, text string) (string, error) {
	switch target {
	case RouteTodo:
		todo, err := s.todoRepo.Create(ctx, newTodo(s.clock, text, nil))
		if err != nil {
			return "", fmt.Errorf("failed to route to todo: %w", err)
		}
		return RouteTodo + ":" + todo.ID, nil
	case RouteReflection:
		r, err := s.reflectionRepo.Create(ctx, &models.Reflection{
			ID:     NewID(),
			Date:   insight.FormatDate(s.clock.Today()),
			Lesson: text,
		})
		if err != nil {
			return "", fmt.Errorf("failed to route to reflection: %w", err)
		}
		return RouteReflection + ":" + r.ID, nil
	default:
		return "", fmt.Errorf("%w: unknown target %q", ErrInvalidRoute, target)
	}
}
