package order_test

import (
	"testing"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines(t *testing.T) []order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), "Margherita", 1, 9.5, 0, nil)
	require.NoError(t, err)
	return []order.Line{line}
}

func testLocation(t *testing.T) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(43.6532, -79.3832)
	require.NoError(t, err)
	return loc
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	branchID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		&branchID,
		testLines(t),
		testLocation(t),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_in_new_status", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.New, o.Status())
		require.NoError(t, o.Validate())
		require.NotNil(t, o.BranchID())
	})

	t.Run("branch_may_be_unassigned", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, testLines(t), testLocation(t), time.Now(),
		)

		require.NoError(t, err)
		assert.Nil(t, o.BranchID())
	})

	t.Run("requires_at_least_one_line", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, nil, testLocation(t), time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_known_customer_location", func(t *testing.T) {
		var unknown kernel.Location

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, testLines(t), unknown, time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_valid_identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := order.NewOrder(
			kernel.NewUUID(), zero, kernel.NewUUID(),
			nil, testLines(t), testLocation(t), time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_CreationRecord(t *testing.T) {
	o := newTestOrder(t)

	record, err := o.CreationRecord()

	require.NoError(t, err)
	assert.Nil(t, record.Previous())
	assert.Equal(t, order.New, record.Next())
	assert.True(t, o.ID().IsEqual(record.OrderID()))
	assert.Equal(t, o.CreatedAt(), record.OccurredAt())
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("full_walk_produces_five_records", func(t *testing.T) {
		o := newTestOrder(t)
		walk := []order.Status{
			order.Processing, order.Confirmed, order.InPreparation, order.Ready, order.Completed,
		}

		var records []order.TransitionRecord
		for _, next := range walk {
			rec, err := o.TransitionTo(next, "", time.Now())
			require.NoError(t, err)
			records = append(records, rec)
		}

		require.Len(t, records, 5)
		previous := order.New
		for i, rec := range records {
			require.NotNil(t, rec.Previous())
			assert.Equal(t, previous, *rec.Previous(), "record %d", i)
			assert.Equal(t, walk[i], rec.Next(), "record %d", i)
			previous = walk[i]
		}
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("illegal_transition_leaves_order_unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.TransitionTo(order.Ready, "", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.New, o.Status())
	})

	t.Run("records_carry_notes", func(t *testing.T) {
		o := newTestOrder(t)

		rec, err := o.TransitionTo(order.Processing, "picked up by kitchen queue", time.Now())

		require.NoError(t, err)
		assert.Equal(t, "picked up by kitchen queue", rec.Notes())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels_new_order", func(t *testing.T) {
		o := newTestOrder(t)

		rec, err := o.Cancel("customer changed their mind", time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.Cancelled, rec.Next())
	})

	t.Run("completed_order_cannot_be_cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		for _, next := range []order.Status{
			order.Processing, order.Confirmed, order.InPreparation, order.Ready, order.Completed,
		} {
			_, err := o.TransitionTo(next, "", time.Now())
			require.NoError(t, err)
		}

		_, err := o.Cancel("too late", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("cancelled_order_stays_cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Cancel("first", time.Now())
		require.NoError(t, err)

		_, err = o.TransitionTo(order.Processing, "", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = o.Cancel("second", time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Total(t *testing.T) {
	lineA, err := order.NewLine(kernel.NewUUID(), "Margherita", 2, 10, 0.5, nil)
	require.NoError(t, err)
	lineB, err := order.NewLine(kernel.NewUUID(), "Garlic Bread", 1, 4, 0, nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, []order.Line{lineA, lineB}, testLocation(t), time.Now(),
	)
	require.NoError(t, err)

	assert.InDelta(t, 24.5, o.Total(), 1e-9)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_arbitrary_status", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, testLines(t), testLocation(t), time.Now(), order.Ready,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, testLines(t), testLocation(t), time.Now(), order.Status(42),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}
