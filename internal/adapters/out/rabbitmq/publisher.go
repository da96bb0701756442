// Package rabbitmq publishes pickup lifecycle events to a topic exchange.
//
// Every audit log committed by a unit of work becomes one persistent message
// with routing key "pickup.<new status>", for example "pickup.assigned" or
// "pickup.paid_pending_pickup". Publishing waits for the broker confirm.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ewaste/internal/core/domain/model/pickup"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange lifecycle events go to.
const DefaultExchange = "pickup_events"

// LogEvent is the JSON body of a lifecycle message.
type LogEvent struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	WorkerID    string    `json:"worker_id"`
	OldStatus   string    `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
	CollectedKg *float64  `json:"collected_kg,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// NewLogEvent maps an audit log to its message body.
func NewLogEvent(l *pickup.Log) LogEvent {
	return LogEvent{
		ID:          l.ID().String(),
		RequestID:   l.RequestID().String(),
		WorkerID:    l.WorkerID().String(),
		OldStatus:   l.OldStatus().String(),
		NewStatus:   l.NewStatus().String(),
		Timestamp:   l.Timestamp().UTC(),
		CollectedKg: l.CollectedKg(),
		Notes:       l.Notes(),
	}
}

// RoutingKey returns "pickup.<status>" with the status lower-cased and
// non-alphanumeric runs folded into underscores.
func RoutingKey(status pickup.Status) string {
	var b strings.Builder
	b.WriteString("pickup.")
	sep := false
	for _, r := range strings.ToLower(status.String()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if sep && b.Len() > len("pickup.") {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}
	return b.String()
}

// Publisher implements ports.EventPublisher over one AMQP channel in confirm
// mode. Publishes are serialized so each confirm matches its message.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	acks     <-chan amqp.Confirmation
	exchange string

	mu sync.Mutex
}

// Dial connects to url, declares exchange as a durable topic exchange and
// enables publisher confirms. An empty exchange selects DefaultExchange.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{conn: conn, ch: ch, acks: acks, exchange: exchange}, nil
}

// Ping reports whether the connection is still open.
func (p *Publisher) Ping() error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishLogs sends one message per log in order and stops at the first failure.
func (p *Publisher) PublishLogs(ctx context.Context, logs []*pickup.Log) error {
	for _, l := range logs {
		body, err := json.Marshal(NewLogEvent(l))
		if err != nil {
			return fmt.Errorf("encode log %s: %w", l.ID(), err)
		}
		if err := p.publish(ctx, RoutingKey(l.NewStatus()), l.ID().String(), body); err != nil {
			return fmt.Errorf("publish log %s: %w", l.ID(), err)
		}
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, key, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return err
	}

	select {
	case conf, ok := <-p.acks:
		if !ok {
			return errors.New("confirm channel closed")
		}
		if !conf.Ack {
			return errors.New("publish NACK from broker")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func NewNopPublisher() NopPublisher { return NopPublisher{} }

func (NopPublisher) PublishLogs(context.Context, []*pickup.Log) error { return nil }
