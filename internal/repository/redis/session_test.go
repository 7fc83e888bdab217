package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karantec/minutos-storefront/internal/domain"
	apperrors "github.com/karantec/minutos-storefront/pkg/errors"
)

func newTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionRepository(client, 30*time.Minute), mr
}

func testSession() *domain.CheckoutSession {
	now := time.Now().UTC()
	return &domain.CheckoutSession{
		ID:     "cs-1",
		UserID: "user-1",
		Step:   domain.StepVendorSelection,
		CartLines: []domain.CartLine{
			{ProductID: "p1", Name: "Milk", Quantity: 2, UnitPrice: 100},
		},
		Summary:   domain.Summarize([]domain.CartLine{{ProductID: "p1", Quantity: 2, UnitPrice: 100}}),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, "cs-1")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Step, got.Step)
	assert.Equal(t, int64(200), got.Summary.Total)
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSessionRepository_Update(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	session := testSession()
	require.NoError(t, repo.Create(ctx, session))

	session.Step = domain.StepAddressSelection
	session.VendorID = "v1"
	require.NoError(t, repo.Update(ctx, session))

	got, err := repo.GetByID(ctx, "cs-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepAddressSelection, got.Step)
	assert.Equal(t, "v1", got.VendorID)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSession()))
	require.NoError(t, repo.Delete(ctx, "cs-1"))

	_, err := repo.GetByID(ctx, "cs-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSessionRepository_TTLExpiry(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSession()))

	mr.FastForward(31 * time.Minute)

	_, err := repo.GetByID(ctx, "cs-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
