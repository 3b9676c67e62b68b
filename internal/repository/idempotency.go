package repository

import (
	"context"
	"sync"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/models"
)

// DefaultIdempotencyTTL is how long a cached response can be replayed
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves an existing idempotency record if it exists
	Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error)

	// Store saves a new idempotency record
	Store(ctx context.Context, key, route string, responseBody []byte, statusCode int) error
}

type idempotencyKey struct {
	key   string
	route string
}

// memoryIdempotencyRepository keeps records in process memory. Replays do
// not survive a restart.
type memoryIdempotencyRepository struct {
	mu      sync.Mutex
	records map[idempotencyKey]models.IdempotencyKey
	ttl     time.Duration
	now     func() time.Time
}

// NewIdempotencyRepository creates an in-memory idempotency repository
func NewIdempotencyRepository(ttl time.Duration) IdempotencyRepository {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &memoryIdempotencyRepository{
		records: make(map[idempotencyKey]models.IdempotencyKey),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *memoryIdempotencyRepository) Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idempotencyKey{key: key, route: route}
	rec, ok := r.records[k]
	if !ok {
		return nil, nil // Not found - this is not an error
	}
	if r.now().Sub(rec.CreatedAt) > r.ttl {
		delete(r.records, k)
		return nil, nil
	}
	return &rec, nil
}

func (r *memoryIdempotencyRepository) Store(ctx context.Context, key, route string, responseBody []byte, statusCode int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, rec := range r.records {
		if now.Sub(rec.CreatedAt) > r.ttl {
			delete(r.records, k)
		}
	}

	body := make([]byte, len(responseBody))
	copy(body, responseBody)
	r.records[idempotencyKey{key: key, route: route}] = models.IdempotencyKey{
		Key:          key,
		Route:        route,
		ResponseBody: body,
		StatusCode:   statusCode,
		CreatedAt:    now,
	}
	return nil
}
