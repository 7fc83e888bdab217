package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/karantec/minutos-storefront/internal/domain"
	apperrors "github.com/karantec/minutos-storefront/pkg/errors"
)

const keyPrefix = "checkout:session:"

// SessionRepository implements repository.SessionRepository using Redis.
// Every write refreshes the TTL, so a session dies only after the user has
// been idle for the full window.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Create stores a new checkout session with the configured TTL.
func (r *SessionRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	return r.set(ctx, session)
}

// GetByID retrieves a checkout session by id.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("checkout session", id)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Update replaces a checkout session and refreshes its TTL.
func (r *SessionRepository) Update(ctx context.Context, session *domain.CheckoutSession) error {
	return r.set(ctx, session)
}

// Delete discards a checkout session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (r *SessionRepository) set(ctx context.Context, session *domain.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}
