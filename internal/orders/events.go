package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
)

const (
	EventOrderCreated = "OrderCreated"
	EventVersion      = 1
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload carries the full order so the admin feed can show it
// without another query.
type OrderCreatedPayload struct {
	Order Order `json:"order"`
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header) error
}

// KafkaNotifier publishes OrderCreated envelopes on TopicOrderCreated.
type KafkaNotifier struct {
	Producer Publisher
	Service  string
}

type traceKey struct{}

// WithTrace attaches a request id that ends up as the envelope trace id.
func WithTrace(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func (n *KafkaNotifier) OrderCreated(ctx context.Context, o Order) error {
	ev := NewOrderCreated(n.Service, o)
	if id, ok := ctx.Value(traceKey{}).(string); ok {
		ev.TraceID = id
	}
	return n.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkax.EventHeaders(EventOrderCreated, EventVersion)...)
}

func NewOrderCreated(service string, o Order) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  EventVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      service,
		CorrelationID: o.ID,
		Payload:       kafkax.MustMarshal(OrderCreatedPayload{Order: o}),
	}
}

// DecodeOrderCreated reads an envelope; ok is false for other event types.
func DecodeOrderCreated(b []byte) (env Envelope, o Order, ok bool, err error) {
	if err = json.Unmarshal(b, &env); err != nil {
		return env, o, false, err
	}
	if env.EventType != EventOrderCreated {
		return env, o, false, nil
	}
	p, err := kafkax.UnwrapPayload[OrderCreatedPayload](env.Payload)
	if err != nil {
		return env, o, false, err
	}
	return env, p.Order, true, nil
}
