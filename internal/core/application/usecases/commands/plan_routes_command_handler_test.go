package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

func mustReadyOrder(
	restaurantID, branchID kernel.UUID,
	customerLocation kernel.Location,
) *order.Order {
	result, err := order.RestoreOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		restaurantID,
		&branchID,
		[]order.Line{mustLine("Pad Thai", 1, 13.5)},
		customerLocation,
		time.Now().UTC(),
		order.Ready,
	)
	if err != nil {
		panic(err)
	}
	return result
}

func Test_PlanRoutesCommandHandler_groups_orders_per_branch(t *testing.T) {
	restaurantID := kernel.NewUUID()
	branch := mustBranch(restaurantID, mustLocation(43.6532, -79.3832), true)

	north := mustReadyOrder(restaurantID, branch.ID(), mustLocation(43.70, -79.38))
	near := mustReadyOrder(restaurantID, branch.ID(), mustLocation(43.6550, -79.3840))
	mid := mustReadyOrder(restaurantID, branch.ID(), mustLocation(43.6700, -79.3850))

	ledger := new(MockOrderLedger)
	catalogDirectory := new(MockCatalogDirectory)
	ledger.On("ListByStatus", mock.Anything, order.Ready).
		Return([]*order.Order{north, near, mid}, nil).Once()
	catalogDirectory.On("BranchesForRestaurant", mock.Anything, restaurantID).
		Return([]*catalog.Branch{branch}, nil).Once()

	handler := commands.NewPlanRoutesCommandHandler(ledger, catalogDirectory)
	cmd := commands.NewPlanRoutesCommand()

	routes, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.Len(t, routes, 1)
	route := routes[0]
	assert.True(t, route.BranchID.IsEqual(branch.ID()))
	assert.Len(t, route.OrderIDs, 3)

	// The tour starts at the branch and walks outward: near, then mid, then
	// the northernmost stop.
	require.Len(t, route.Stops, 4)
	assert.Equal(t, branch.Location(), route.Stops[0])
	assert.Equal(t, near.CustomerLocation(), route.Stops[1])
	assert.Equal(t, mid.CustomerLocation(), route.Stops[2])
	assert.Equal(t, north.CustomerLocation(), route.Stops[3])
	assert.Greater(t, route.DistanceKm, 0.0)

	ledger.AssertExpectations(t)
	catalogDirectory.AssertExpectations(t)
}

func Test_PlanRoutesCommandHandler_no_ready_orders(t *testing.T) {
	ledger := new(MockOrderLedger)
	catalogDirectory := new(MockCatalogDirectory)
	ledger.On("ListByStatus", mock.Anything, order.Ready).
		Return([]*order.Order{}, nil).Once()

	handler := commands.NewPlanRoutesCommandHandler(ledger, catalogDirectory)
	cmd := commands.NewPlanRoutesCommand()

	routes, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrNoReadyOrders)
	assert.Nil(t, routes)
	catalogDirectory.AssertNotCalled(t, "BranchesForRestaurant", mock.Anything, mock.Anything)
}

func Test_PlanRoutesCommandHandler_skips_branches_without_location(t *testing.T) {
	restaurantID := kernel.NewUUID()
	hidden, err := catalog.NewBranch(kernel.NewUUID(), restaurantID, kernel.Location{}, true, 0)
	require.NoError(t, err)

	ready := mustReadyOrder(restaurantID, hidden.ID(), mustLocation(43.66, -79.39))

	ledger := new(MockOrderLedger)
	catalogDirectory := new(MockCatalogDirectory)
	ledger.On("ListByStatus", mock.Anything, order.Ready).
		Return([]*order.Order{ready}, nil).Once()
	catalogDirectory.On("BranchesForRestaurant", mock.Anything, restaurantID).
		Return([]*catalog.Branch{hidden}, nil).Once()

	handler := commands.NewPlanRoutesCommandHandler(ledger, catalogDirectory)
	cmd := commands.NewPlanRoutesCommand()

	routes, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrNoReadyOrders)
	assert.Nil(t, routes)
}

func Test_PlanRoutesCommandHandler_ledger_failure(t *testing.T) {
	ledger := new(MockOrderLedger)
	catalogDirectory := new(MockCatalogDirectory)
	ledger.On("ListByStatus", mock.Anything, order.Ready).
		Return(nil, errs.NewRemoteUnavailableError(
			"postgres", errors.New("connection refused"))).Once()

	handler := commands.NewPlanRoutesCommandHandler(ledger, catalogDirectory)
	cmd := commands.NewPlanRoutesCommand()

	routes, err := handler.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.Nil(t, routes)
	assert.NotErrorIs(t, err, commands.ErrNoReadyOrders)
}
