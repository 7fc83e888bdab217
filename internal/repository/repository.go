package repository

import (
	"context"

	"github.com/karantec/minutos-storefront/internal/domain"
)

// SessionRepository defines the interface for checkout session persistence.
// Sessions are ephemeral; the store is expected to expire them on its own.
type SessionRepository interface {
	// Create inserts a new checkout session.
	Create(ctx context.Context, session *domain.CheckoutSession) error

	// GetByID retrieves a checkout session by its identifier.
	GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error)

	// Update replaces an existing checkout session.
	Update(ctx context.Context, session *domain.CheckoutSession) error

	// Delete discards a checkout session.
	Delete(ctx context.Context, id string) error
}
