package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes order events to NATS subjects.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the given NATS URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("embla-server"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// PublishOrderCreated publishes to orders.created.
func (p *NATSPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	return p.publish(SubjectOrderCreated, event)
}

// PublishOrderPaid publishes to orders.paid.
func (p *NATSPublisher) PublishOrderPaid(ctx context.Context, event OrderPaid) error {
	return p.publish(SubjectOrderPaid, event)
}

// PublishOrderDelivered publishes to orders.delivered.
func (p *NATSPublisher) PublishOrderDelivered(ctx context.Context, event OrderDelivered) error {
	return p.publish(SubjectOrderDelivered, event)
}

// Close drains buffered messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

func (p *NATSPublisher) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
