package postgres

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"
)

// GormOrderLedger implements the order ledger on top of the unit of work.
// It is the single writer of order rows and their transition history: every
// status change goes through the aggregate's state machine and is persisted
// with a compare-and-set on the previous status, so concurrent transitions on
// one order are serialized by the database and the losing racer is rejected
// with a transition conflict.
type GormOrderLedger struct {
	uowFactory ports.UnitOfWorkFactory
	clock      func() time.Time
}

// NewGormOrderLedger creates a ledger backed by the given unit of work
// factory.
func NewGormOrderLedger(uowFactory ports.UnitOfWorkFactory) *GormOrderLedger {
	return &GormOrderLedger{
		uowFactory: uowFactory,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new order in status NEW together with its creation
// record, atomically.
func (l *GormOrderLedger) Create(
	ctx context.Context,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	branchID kernel.UUID,
	lines []order.Line,
	customerLocation kernel.Location,
) (*order.Order, error) {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, restaurantID, &branchID,
		lines, customerLocation, l.clock())
	if err != nil {
		return nil, err
	}

	creationRecord, err := aggregate.CreationRecord()
	if err != nil {
		return nil, err
	}

	uow := l.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	if err = repo.Add(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = repo.AddTransition(ctx, creationRecord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// UpdateStatus applies one guarded lifecycle transition. The aggregate
// decides whether the move is legal; the compare-and-set write decides who
// wins when two transitions race.
func (l *GormOrderLedger) UpdateStatus(
	ctx context.Context,
	orderID kernel.UUID,
	status order.Status,
	notes string,
) (*order.Order, order.TransitionRecord, error) {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.TransitionRecord{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, order.TransitionRecord{}, err
	}

	expected := aggregate.Status()
	record, err := aggregate.TransitionTo(status, notes, l.clock())
	if err != nil {
		return nil, order.TransitionRecord{}, err
	}

	if err = repo.UpdateWithExpectedStatus(ctx, aggregate, expected); err != nil {
		return nil, order.TransitionRecord{}, err
	}
	if err = repo.AddTransition(ctx, record); err != nil {
		return nil, order.TransitionRecord{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.TransitionRecord{}, err
	}

	return aggregate, record, nil
}

// Cancel moves the order to CANCELLED under the same transition rules as any
// other status change.
func (l *GormOrderLedger) Cancel(
	ctx context.Context,
	orderID kernel.UUID,
	notes string,
) (*order.Order, order.TransitionRecord, error) {
	return l.UpdateStatus(ctx, orderID, order.Cancelled, notes)
}

// History returns the order's transition records in application order. An
// unknown order fails with errs.ObjectNotFoundError.
func (l *GormOrderLedger) History(
	ctx context.Context,
	orderID kernel.UUID,
) ([]order.TransitionRecord, error) {
	repo := l.uowFactory.Create().OrderRepository()

	if _, err := repo.Get(ctx, orderID); err != nil {
		return nil, err
	}

	return repo.GetTransitions(ctx, orderID)
}

// ListByStatus returns all orders currently in the given status.
func (l *GormOrderLedger) ListByStatus(
	ctx context.Context,
	status order.Status,
) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	return l.uowFactory.Create().OrderRepository().GetAllInStatus(ctx, status)
}
