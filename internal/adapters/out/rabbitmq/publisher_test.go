package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mealroute/internal/adapters/out/rabbitmq"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

type MockConnection struct{ mock.Mock }

func (m *MockConnection) Channel() (rabbitmq.Channel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(rabbitmq.Channel), args.Error(1)
}

func (m *MockConnection) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockChannel struct{ mock.Mock }

func (m *MockChannel) ExchangeDeclare(
	name, kind string,
	durable, autoDelete, internal, noWait bool,
	args amqp.Table,
) error {
	mockArgs := m.Called(name, kind, durable, autoDelete, internal, noWait, args)
	return mockArgs.Error(0)
}

func (m *MockChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func Test_Publisher_publishes_persistent_json_event(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	previous := order.InPreparation
	occurredAt := time.Date(2026, 6, 2, 18, 30, 0, 0, time.UTC)
	record, err := order.NewTransitionRecord(orderID, &previous, order.Ready, occurredAt, "ready for pickup")
	require.NoError(t, err)

	channel := new(MockChannel)
	conn := new(MockConnection)
	mock.InOrder(
		conn.On("Channel").Return(channel, nil).Once(),
		channel.On("ExchangeDeclare",
			"order_status_topic", "topic", true, false, false, false, amqp.Table(nil)).
			Return(nil).Once(),
		channel.On("PublishWithContext",
			ctx, "order_status_topic", "orders.status.READY", false, false,
			mock.AnythingOfType("amqp091.Publishing")).
			Return(nil).Once(),
		channel.On("Close").Return(nil).Once(),
	)

	publisher := rabbitmq.NewPublisher(conn)
	err = publisher.PublishStatusChanged(ctx, record)

	require.NoError(t, err)
	conn.AssertExpectations(t)
	channel.AssertExpectations(t)

	publishing := channel.Calls[1].Arguments.Get(5).(amqp.Publishing)
	assert.Equal(t, amqp.Persistent, publishing.DeliveryMode)
	assert.Equal(t, "application/json", publishing.ContentType)

	var msg rabbitmq.StatusChangedMessage
	require.NoError(t, json.Unmarshal(publishing.Body, &msg))
	assert.Equal(t, orderID.String(), msg.OrderID)
	require.NotNil(t, msg.Previous)
	assert.Equal(t, "IN_PREPARATION", *msg.Previous)
	assert.Equal(t, "READY", msg.Next)
	assert.Equal(t, "ready for pickup", msg.Notes)
	assert.True(t, occurredAt.Equal(msg.OccurredAt))
}

func Test_Publisher_channel_error_is_returned(t *testing.T) {
	orderID := kernel.NewUUID()
	record, err := order.NewTransitionRecord(orderID, nil, order.New, time.Now().UTC(), "")
	require.NoError(t, err)

	conn := new(MockConnection)
	conn.On("Channel").Return(nil, errors.New("connection closed")).Once()

	publisher := rabbitmq.NewPublisher(conn)
	err = publisher.PublishStatusChanged(t.Context(), record)

	require.Error(t, err)
}
