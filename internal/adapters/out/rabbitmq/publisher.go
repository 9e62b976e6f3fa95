// Package rabbitmq relays domain events to a RabbitMQ topic exchange so
// external consumers (analytics, customer-facing push channels) can follow
// order progress. The relay subscribes to the in-process event bus and
// republishes each event with its name as the routing key.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange domain events are published to.
const DefaultExchange = "orders_topic"

// Config holds the broker connection settings.
type Config struct {
	URL      string
	Exchange string
}

// Publisher publishes domain events to RabbitMQ with publisher confirms.
// Publish is serialized with a mutex so confirms match their publications.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger

	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// Dial connects to the broker, opens a confirmed channel, and declares the
// topic exchange.
func Dial(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: cfg.Exchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
		acks:     acks,
	}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Ping reports whether the connection is still open.
func (p *Publisher) Ping() error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// eventEnvelope is the wire form of a relayed domain event.
type eventEnvelope struct {
	Name        string    `json:"name"`
	OrderID     string    `json:"order_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Status      string    `json:"status,omitempty"`
	ItemID      string    `json:"item_id,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	PackageType string    `json:"package_type,omitempty"`
}

// Publish sends one event and waits for the broker's ack. The OTP code is
// deliberately not relayed; it reaches the customer only through the inbox.
func (p *Publisher) Publish(ctx context.Context, event order.Event) error {
	body, err := json.Marshal(eventEnvelope{
		Name:        event.Name,
		OrderID:     event.OrderID.String(),
		ActorID:     event.ActorID,
		OccurredAt:  event.OccurredAt,
		Status:      event.Status,
		ItemID:      event.ItemID,
		Reason:      event.Reason,
		PackageType: event.PackageType,
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(
		ctx,
		p.exchange,
		event.Name,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	); err != nil {
		return err
	}

	select {
	case conf := <-p.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register subscribes the relay to every event on the in-process bus and
// returns the unsubscribe function. Relay failures are logged; internal
// delivery already happened and is not rolled back.
func (p *Publisher) Register(bus ports.EventBus) func() {
	return bus.Subscribe(ports.TopicAllEvents, func(event order.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.logger.Warn("failed to relay event to broker",
				"event", event.Name, "orderId", event.OrderID.String(), "error", err)
		}
	})
}
