package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

func statusRecord(orderID kernel.UUID, previous, next order.Status) order.TransitionRecord {
	record, err := order.NewTransitionRecord(orderID, &previous, next, time.Now().UTC(), "")
	if err != nil {
		panic(err)
	}
	return record
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	branchID := kernel.NewUUID()
	updated := mustOrder(customerID, restaurantID, branchID, []order.Line{mustLine("Bibimbap", 1, 13)})
	record := statusRecord(updated.ID(), order.New, order.Processing)

	ledger := new(MockOrderLedger)
	publisher := new(MockOrderEventPublisher)
	mock.InOrder(
		ledger.On("UpdateStatus", ctx, updated.ID(), order.Processing, "accepted by operator").
			Return(updated, record, nil).Once(),
		publisher.On("PublishStatusChanged", ctx, record).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateOrderStatusCommand(updated.ID(), order.Processing, "accepted by operator")
	require.NoError(t, err)

	h := commands.NewUpdateOrderStatusCommandHandler(ledger, publisher)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.IsEqual(updated))
	ledger.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	ledger := new(MockOrderLedger)
	ledger.On("UpdateStatus", ctx, orderID, order.Ready, "").
		Return(nil, order.TransitionRecord{}, errs.NewInvalidTransitionError("NEW", "READY")).
		Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Ready, "")
	require.NoError(t, err)

	h := commands.NewUpdateOrderStatusCommandHandler(ledger, nil)
	_, err = h.Handle(ctx, cmd)

	requireFailureKind(t, err, failure.KindInvalidTransition)
}

func TestUpdateOrderStatusCommandHandler_Handle_TransitionConflict(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	ledger := new(MockOrderLedger)
	ledger.On("UpdateStatus", ctx, orderID, order.Confirmed, "").
		Return(nil, order.TransitionRecord{}, errs.NewTransitionConflictError(orderID.String(), "PROCESSING")).
		Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Confirmed, "")
	require.NoError(t, err)

	h := commands.NewUpdateOrderStatusCommandHandler(ledger, nil)
	_, err = h.Handle(ctx, cmd)

	requireFailureKind(t, err, failure.KindTransitionConflict)
}

func TestNewUpdateOrderStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Unknown, "")

	require.Error(t, err)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	h := commands.NewUpdateOrderStatusCommandHandler(new(MockOrderLedger), nil)

	_, err := h.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

	requireFailureKind(t, err, failure.KindInvalidInput)
}
