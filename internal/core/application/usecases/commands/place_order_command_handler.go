package commands

import (
	"context"
	"errors"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
)

// PlaceOrderCommandHandler runs the order placement workflow: a fixed
// sequence of collaborator calls with fail-fast semantics. Any failing step
// aborts the workflow immediately; no later step runs and no compensation is
// needed because the order is only created at the very last step.
//
// The sequence is:
//
//  1. validate the customer against the customer directory
//  2. fetch the restaurant's branches from the catalog
//  3. pick the nearest eligible branch for the delivery location
//  4. check item availability at that branch
//  5. create the order in the ledger
//
// Every error is returned as a *failure.Failure so callers can branch on
// the failure kind.
type PlaceOrderCommandHandler struct {
	customers ports.CustomerDirectory
	catalog   ports.CatalogDirectory
	ledger    ports.OrderLedger
	publisher ports.OrderEventPublisher
	selector  services.BranchSelector
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// The publisher may be nil, in which case no status events are emitted.
func NewPlaceOrderCommandHandler(
	customers ports.CustomerDirectory,
	catalogDirectory ports.CatalogDirectory,
	ledger ports.OrderLedger,
	publisher ports.OrderEventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		customers: customers,
		catalog:   catalogDirectory,
		ledger:    ledger,
		publisher: publisher,
		selector:  services.NewBranchSelector(),
	}
}

// Handle processes the order placement command. On success the created order
// is returned in status NEW; on any failure the returned error is a
// *failure.Failure describing the first step that failed.
func (h *PlaceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd PlaceOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, failure.Wrap(failure.KindInvalidInput, err)
	}

	valid, err := h.customers.Validate(ctx, cmd.CustomerID())
	if err != nil {
		return nil, failure.From(err)
	}
	if !valid {
		return nil, failure.New(
			failure.KindInvalidCustomer,
			"customer %s is not allowed to place orders", cmd.CustomerID(),
		)
	}

	branches, err := h.catalog.BranchesForRestaurant(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, failure.From(err)
	}
	if len(branches) == 0 {
		return nil, failure.New(
			failure.KindNoBranches,
			"restaurant %s has no branches", cmd.RestaurantID(),
		)
	}

	branch, err := h.selector.Nearest(cmd.CustomerLocation(), branches, true, cmd.MaxDistanceKm())
	if err != nil {
		if errors.Is(err, services.ErrNoBranchFound) {
			return nil, failure.New(
				failure.KindNoEligibleBranch,
				"no eligible branch for restaurant %s", cmd.RestaurantID(),
			)
		}
		return nil, failure.From(err)
	}

	menuLines, err := menuLinesFromOrderLines(cmd.Lines())
	if err != nil {
		return nil, failure.From(err)
	}

	available, err := h.catalog.CheckAvailability(ctx, branch.ID(), menuLines)
	if err != nil {
		return nil, failure.From(err)
	}
	if !available {
		return nil, failure.New(
			failure.KindItemsUnavailable,
			"branch %s cannot fulfill the requested lines", branch.ID(),
		)
	}

	created, err := h.ledger.Create(
		ctx,
		cmd.CustomerID(),
		cmd.RestaurantID(),
		branch.ID(),
		cmd.Lines(),
		cmd.CustomerLocation(),
	)
	if err != nil {
		return nil, failure.From(err)
	}

	h.publishCreation(ctx, created)

	return created, nil
}

// publishCreation emits the creation record as a status event. Publication
// is best-effort and never fails the placement.
func (h *PlaceOrderCommandHandler) publishCreation(ctx context.Context, created *order.Order) {
	if h.publisher == nil {
		return
	}

	record, err := created.CreationRecord()
	if err != nil {
		return
	}

	_ = h.publisher.PublishStatusChanged(ctx, record)
}

func menuLinesFromOrderLines(lines []order.Line) ([]catalog.MenuLine, error) {
	menuLines := make([]catalog.MenuLine, 0, len(lines))
	for _, line := range lines {
		menuLine, err := catalog.NewMenuLine(line.CatalogItemID(), line.Quantity())
		if err != nil {
			return nil, err
		}
		menuLines = append(menuLines, menuLine)
	}
	return menuLines, nil
}
