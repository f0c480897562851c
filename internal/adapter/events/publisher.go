package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

const EventOrderCreated = "OrderCreated"

// Envelope wraps every order event published to the stream.
type Envelope struct {
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

// OrderCreatedPayload carries the order snapshot downstream consumers need.
type OrderCreatedPayload struct {
	OrderID       int64   `json:"order_id"`
	ProductID     int64   `json:"product_id"`
	BuyerEmail    string  `json:"buyer_email"`
	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
}

// Publisher emits order lifecycle events. Publishing is best-effort; the
// order write is the source of truth.
type Publisher interface {
	OrderCreated(ctx context.Context, order *model.Order)
}

// KafkaPublisher writes events to a kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher builds a publisher over the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

// OrderCreated publishes an OrderCreated envelope keyed by order id.
func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *model.Order) {
	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:       order.ID,
		ProductID:     order.ProductID,
		BuyerEmail:    order.BuyerEmail,
		Quantity:      order.Quantity,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
	})
	if err != nil {
		p.logger.Error("marshal order event", slog.String("error", err.Error()))
		return
	}

	value, err := json.Marshal(Envelope{
		EventType:  EventOrderCreated,
		OccurredAt: time.Now(),
		Producer:   "garmentshop",
		Payload:    payload,
	})
	if err != nil {
		p.logger.Error("marshal event envelope", slog.String("error", err.Error()))
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish order event", slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
	}
}

// Close flushes and releases the kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *model.Order) {}
