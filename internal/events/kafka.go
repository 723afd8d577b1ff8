package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/config"
	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	logger *slog.Logger
	writer messageWriter
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *kafkaPublisher {
	return newKafkaPublisher(logger, &kafka.Writer{
		Addr:  kafka.TCP(cfg.Brokers...),
		Topic: cfg.Topic,
		// события одного заказа попадают в одну партицию и сохраняют порядок
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newKafkaPublisher(logger *slog.Logger, writer messageWriter) *kafkaPublisher {
	return &kafkaPublisher{
		logger: logger.With(slog.String("component", "events")),
		writer: writer,
	}
}

type eventMessage struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	OrderID        int64           `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	StoreID        int64           `json:"store_id"`
	UserID         int64           `json:"user_id"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt entities.OrderEvent) error {
	value, err := json.Marshal(eventMessage{
		ID:             evt.ID,
		Type:           string(evt.Type),
		OrderID:        evt.OrderID,
		OrderNumber:    evt.OrderNumber,
		StoreID:        evt.StoreID,
		UserID:         evt.UserID,
		Status:         evt.Status.Label(),
		PreviousStatus: previousLabel(evt.PreviousStatus),
		TotalAmount:    evt.TotalAmount,
		OccurredAt:     evt.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.OrderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
			{Key: "event_id", Value: []byte(evt.ID)},
		},
	}

	// В библиотеке уже есть retry
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	p.logger.Debug("event published", slog.String("type", string(evt.Type)), slog.Int64("order_id", evt.OrderID))
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

func previousLabel(s entities.Status) string {
	if s == "" {
		return ""
	}
	return s.Label()
}

// NopPublisher используется, когда Kafka выключена.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entities.OrderEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
