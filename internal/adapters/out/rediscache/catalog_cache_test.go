package rediscache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealroute/internal/adapters/out/rediscache"
	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
)

type MockCatalogDirectory struct{ mock.Mock }

func (m *MockCatalogDirectory) BranchesForRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*catalog.Branch, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Branch), args.Error(1)
}

func (m *MockCatalogDirectory) CheckAvailability(
	ctx context.Context,
	branchID kernel.UUID,
	lines []catalog.MenuLine,
) (bool, error) {
	args := m.Called(ctx, branchID, lines)
	return args.Bool(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// An unreachable Redis must degrade the cache to a pass-through, never fail
// the catalog read.
func Test_CachedCatalogDirectory_degrades_without_redis(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()

	location, err := kernel.NewLocation(43.6532, -79.3832)
	require.NoError(t, err)
	branch, err := catalog.NewBranch(kernel.NewUUID(), restaurantID, location, true, 0)
	require.NoError(t, err)

	inner := new(MockCatalogDirectory)
	inner.On("BranchesForRestaurant", ctx, restaurantID).
		Return([]*catalog.Branch{branch}, nil).Twice()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})
	cached := rediscache.NewCachedCatalogDirectory(inner, client, time.Minute, discardLogger())

	for range 2 {
		branches, err := cached.BranchesForRestaurant(ctx, restaurantID)
		require.NoError(t, err)
		require.Len(t, branches, 1)
		assert.True(t, branches[0].ID().IsEqual(branch.ID()))
	}

	inner.AssertExpectations(t)
}

func Test_CachedCatalogDirectory_availability_passes_through(t *testing.T) {
	ctx := t.Context()
	branchID := kernel.NewUUID()
	line, err := catalog.NewMenuLine(kernel.NewUUID(), 2)
	require.NoError(t, err)

	inner := new(MockCatalogDirectory)
	inner.On("CheckAvailability", ctx, branchID, []catalog.MenuLine{line}).
		Return(false, nil).Once()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	cached := rediscache.NewCachedCatalogDirectory(inner, client, time.Minute, discardLogger())

	available, err := cached.CheckAvailability(ctx, branchID, []catalog.MenuLine{line})

	require.NoError(t, err)
	assert.False(t, available)
	inner.AssertExpectations(t)
}
