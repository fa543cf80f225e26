package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jamshidbekman/rivojbot/internal/lead"
)

// EventLeadCaptured is the event type published for every lead.
const EventLeadCaptured = "lead.captured"

// Publisher is satisfied by *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// LeadEvent is the JSON body published to the broker.
type LeadEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Lead       lead.Lead `json:"lead"`
}

// AMQPDestination publishes lead events for downstream CRM consumers.
type AMQPDestination struct {
	pub        Publisher
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewAMQPDestination(pub Publisher, exchange, routingKey string) *AMQPDestination {
	if routingKey == "" {
		routingKey = EventLeadCaptured
	}
	return &AMQPDestination{pub: pub, exchange: exchange, routingKey: routingKey, now: time.Now}
}

func (d *AMQPDestination) Name() string { return "amqp" }

func (d *AMQPDestination) Deliver(ctx context.Context, l lead.Lead) error {
	ev := LeadEvent{
		ID:         uuid.NewString(),
		Type:       EventLeadCaptured,
		OccurredAt: d.now().UTC(),
		Lead:       l,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("amqp: encode event: %w", err)
	}
	err = d.pub.PublishWithContext(ctx, d.exchange, d.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp: publish: %w", err)
	}
	return nil
}

// Broker owns the connection and channel used by AMQPDestination.
type Broker struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// DialBroker connects to url and declares exchange as a durable topic
// exchange.
func DialBroker(url, exchange string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: open channel: %w", err)
	}
	if exchange != "" {
		if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("amqp: declare exchange %q: %w", exchange, err)
		}
	}
	return &Broker{Conn: conn, Ch: ch}, nil
}

// Close releases the channel and connection.
func (b *Broker) Close() error {
	if b == nil {
		return nil
	}
	if b.Ch != nil {
		_ = b.Ch.Close()
	}
	if b.Conn != nil {
		return b.Conn.Close()
	}
	return nil
}
