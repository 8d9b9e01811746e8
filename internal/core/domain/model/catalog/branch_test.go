package catalog_test

import (
	"testing"

	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	location, err := kernel.NewLocation(43.6532, -79.3832)
	require.NoError(t, err)

	t.Run("creates_valid_branch", func(t *testing.T) {
		id := kernel.NewUUID()
		restaurantID := kernel.NewUUID()

		b, err := catalog.NewBranch(id, restaurantID, location, true, 12.5)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.True(t, id.IsEqual(b.ID()))
		assert.True(t, restaurantID.IsEqual(b.RestaurantID()))
		assert.True(t, b.Active())
		assert.True(t, b.HasKnownLocation())
		assert.InDelta(t, 12.5, b.OperatingRadiusKm(), 1e-9)
	})

	t.Run("allows_unknown_location", func(t *testing.T) {
		var unknown kernel.Location

		b, err := catalog.NewBranch(kernel.NewUUID(), kernel.NewUUID(), unknown, true, 0)

		require.NoError(t, err)
		assert.False(t, b.HasKnownLocation())
		require.Error(t, b.Location().Validate())
	})

	t.Run("rejects_unconstructed_ids", func(t *testing.T) {
		var zero kernel.UUID

		_, err := catalog.NewBranch(zero, kernel.NewUUID(), location, true, 0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = catalog.NewBranch(kernel.NewUUID(), zero, location, true, 0)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_negative_radius", func(t *testing.T) {
		_, err := catalog.NewBranch(kernel.NewUUID(), kernel.NewUUID(), location, true, -1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMenuLine(t *testing.T) {
	t.Run("creates_valid_menu_line", func(t *testing.T) {
		itemID := kernel.NewUUID()

		line, err := catalog.NewMenuLine(itemID, 3)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.True(t, itemID.IsEqual(line.CatalogItemID()))
		assert.Equal(t, 3, line.Quantity())
	})

	t.Run("rejects_quantity_below_one", func(t *testing.T) {
		for _, q := range []int{0, -1} {
			_, err := catalog.NewMenuLine(kernel.NewUUID(), q)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("rejects_unconstructed_item_id", func(t *testing.T) {
		var zero kernel.UUID

		_, err := catalog.NewMenuLine(zero, 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var line catalog.MenuLine
		require.Error(t, line.Validate())
	})
}
