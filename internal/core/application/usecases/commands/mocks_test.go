package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) Validate(ctx context.Context, customerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

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

type MockOrderLedger struct{ mock.Mock }

func (m *MockOrderLedger) Create(
	ctx context.Context,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	branchID kernel.UUID,
	lines []order.Line,
	customerLocation kernel.Location,
) (*order.Order, error) {
	args := m.Called(ctx, customerID, restaurantID, branchID, lines, customerLocation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderLedger) UpdateStatus(
	ctx context.Context,
	orderID kernel.UUID,
	status order.Status,
	notes string,
) (*order.Order, order.TransitionRecord, error) {
	args := m.Called(ctx, orderID, status, notes)
	if args.Get(0) == nil {
		return nil, order.TransitionRecord{}, args.Error(2)
	}
	return args.Get(0).(*order.Order), args.Get(1).(order.TransitionRecord), args.Error(2)
}

func (m *MockOrderLedger) Cancel(
	ctx context.Context,
	orderID kernel.UUID,
	notes string,
) (*order.Order, order.TransitionRecord, error) {
	args := m.Called(ctx, orderID, notes)
	if args.Get(0) == nil {
		return nil, order.TransitionRecord{}, args.Error(2)
	}
	return args.Get(0).(*order.Order), args.Get(1).(order.TransitionRecord), args.Error(2)
}

func (m *MockOrderLedger) History(
	ctx context.Context,
	orderID kernel.UUID,
) ([]order.TransitionRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.TransitionRecord), args.Error(1)
}

func (m *MockOrderLedger) ListByStatus(
	ctx context.Context,
	status order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishStatusChanged(
	ctx context.Context,
	record order.TransitionRecord,
) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func mustLocation(latitude, longitude float64) kernel.Location {
	location, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		panic(err)
	}
	return location
}

func mustLine(name string, quantity int, unitPrice float64) order.Line {
	line, err := order.NewLine(kernel.NewUUID(), name, quantity, unitPrice, 0, nil)
	if err != nil {
		panic(err)
	}
	return line
}

func mustBranch(restaurantID kernel.UUID, location kernel.Location, active bool) *catalog.Branch {
	branch, err := catalog.NewBranch(kernel.NewUUID(), restaurantID, location, active, 0)
	if err != nil {
		panic(err)
	}
	return branch
}

func mustOrder(customerID, restaurantID, branchID kernel.UUID, lines []order.Line) *order.Order {
	result, err := order.NewOrder(
		kernel.NewUUID(),
		customerID,
		restaurantID,
		&branchID,
		lines,
		mustLocation(43.6532, -79.3832),
		time.Now().UTC(),
	)
	if err != nil {
		panic(err)
	}
	return result
}
