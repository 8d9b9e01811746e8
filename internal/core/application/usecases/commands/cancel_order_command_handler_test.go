package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealroute/internal/core/application/failure"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cancelled := mustOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Line{mustLine("Poke Bowl", 1, 14)})
	record := statusRecord(cancelled.ID(), order.Processing, order.Cancelled)

	ledger := new(MockOrderLedger)
	publisher := new(MockOrderEventPublisher)
	mock.InOrder(
		ledger.On("Cancel", ctx, cancelled.ID(), "customer changed their mind").
			Return(cancelled, record, nil).Once(),
		publisher.On("PublishStatusChanged", ctx, record).Return(nil).Once(),
	)

	cmd, err := commands.NewCancelOrderCommand(cancelled.ID(), "customer changed their mind")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(ledger, publisher)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.IsEqual(cancelled))
	ledger.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	ledger := new(MockOrderLedger)
	ledger.On("Cancel", ctx, orderID, "").
		Return(nil, order.TransitionRecord{}, errs.NewInvalidTransitionError("COMPLETED", "CANCELLED")).
		Once()

	cmd, err := commands.NewCancelOrderCommand(orderID, "")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(ledger, nil)
	_, err = h.Handle(ctx, cmd)

	requireFailureKind(t, err, failure.KindInvalidTransition)
}

func TestCancelOrderCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	ledger := new(MockOrderLedger)
	ledger.On("Cancel", ctx, orderID, "").
		Return(nil, order.TransitionRecord{}, errs.NewObjectNotFoundError("orderID", orderID.String())).
		Once()

	cmd, err := commands.NewCancelOrderCommand(orderID, "")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(ledger, nil)
	_, err = h.Handle(ctx, cmd)

	requireFailureKind(t, err, failure.KindNotFound)
}
