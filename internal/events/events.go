package events

import (
	"context"
	"encoding/json"
	"time"

	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// Subjects the engine publishes on
const (
	SubjectAutoBid     = "auction.autobid"
	SubjectOrderCreate = "auction.order.created"
	SubjectOrderStatus = "auction.order.status"
)

// Publisher is the notification surface of the engine. Calls never fail the
// caller: delivery problems are logged and dropped.
type Publisher interface {
	AutoBidTriggered(ctx context.Context, event model.AutoBidEvent)
	OrderCreated(ctx context.Context, order model.Order)
	OrderStatusChanged(ctx context.Context, order model.Order)
}

// Sink delivers an encoded message to a transport. key groups messages of
// the same listing so ordered transports keep them in sequence.
type Sink interface {
	Publish(ctx context.Context, subject, key string, payload []byte) error
}

// Envelope is the wire format of every published message
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// Bus encodes domain events and hands them to a Sink
type Bus struct {
	sink Sink
	now  func() time.Time
}

// NewBus creates a Publisher backed by sink
func NewBus(sink Sink) *Bus {
	return &Bus{sink: sink, now: time.Now}
}

// AutoBidTriggered implements Publisher
func (b *Bus) AutoBidTriggered(ctx context.Context, event model.AutoBidEvent) {
	b.publish(ctx, SubjectAutoBid, event.ListingID, event)
}

// OrderCreated implements Publisher
func (b *Bus) OrderCreated(ctx context.Context, order model.Order) {
	b.publish(ctx, SubjectOrderCreate, order.ListingID, order)
}

// OrderStatusChanged implements Publisher
func (b *Bus) OrderStatusChanged(ctx context.Context, order model.Order) {
	b.publish(ctx, SubjectOrderStatus, order.ListingID, order)
}

func (b *Bus) publish(ctx context.Context, subject, key string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		utils.Error("Failed to encode event", map[string]any{"subject": subject, "key": key, "error": err.Error()})
		return
	}
	payload, err := json.Marshal(Envelope{Type: subject, OccurredAt: b.now().UTC(), Data: raw})
	if err != nil {
		utils.Error("Failed to encode event envelope", map[string]any{"subject": subject, "key": key, "error": err.Error()})
		return
	}
	if err := b.sink.Publish(ctx, subject, key, payload); err != nil {
		utils.Warn("Failed to publish event", map[string]any{"subject": subject, "key": key, "error": err.Error()})
	}
}

// Nop discards every event
type Nop struct{}

func (Nop) AutoBidTriggered(context.Context, model.AutoBidEvent) {}
func (Nop) OrderCreated(context.Context, model.Order)            {}
func (Nop) OrderStatusChanged(context.Context, model.Order)      {}
