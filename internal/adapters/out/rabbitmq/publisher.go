// Package rabbitmq publishes order status events to a RabbitMQ topic
// exchange. Consumers (tracking screens, notification services) bind with
// routing keys like "orders.status.READY" to follow specific statuses, or
// "orders.status.#" to follow them all.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"mealroute/internal/core/domain/model/order"
)

const (
	statusExchange   = "order_status_topic"
	routingKeyPrefix = "orders.status"
)

// Connection is the subset of an AMQP connection the publisher needs,
// narrow enough to fake in tests.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

// Channel is the subset of an AMQP channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	Close() error
}

// Dial connects to RabbitMQ at the given URL and wraps the connection for
// the publisher.
func Dial(url string) (Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return &amqpConnection{conn: conn}, nil
}

type amqpConnection struct {
	conn *amqp.Connection
}

func (c *amqpConnection) Channel() (Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return ch, nil
}

func (c *amqpConnection) Close() error {
	if c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}

// StatusChangedMessage is the wire format of one status event.
type StatusChangedMessage struct {
	OrderID    string    `json:"orderId"`
	Previous   *string   `json:"previous"`
	Next       string    `json:"next"`
	OccurredAt time.Time `json:"occurredAt"`
	Notes      string    `json:"notes,omitempty"`
}

// Publisher implements the order event publisher over AMQP.
type Publisher struct {
	conn Connection
}

// NewPublisher creates a publisher over the given connection.
func NewPublisher(conn Connection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishStatusChanged emits one persistent JSON event for the transition.
func (p *Publisher) PublishStatusChanged(ctx context.Context, record order.TransitionRecord) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(statusExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	msg := StatusChangedMessage{
		OrderID:    record.OrderID().String(),
		Next:       record.Next().String(),
		OccurredAt: record.OccurredAt(),
		Notes:      record.Notes(),
	}
	if previous := record.Previous(); previous != nil {
		name := previous.String()
		msg.Previous = &name
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	routingKey := fmt.Sprintf("%s.%s", routingKeyPrefix, msg.Next)
	err = ch.PublishWithContext(ctx, statusExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
