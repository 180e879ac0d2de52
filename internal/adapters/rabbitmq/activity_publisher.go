package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher - часть rabbitmq_producer.Publisher, нужная адаптеру.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

const publishTimeout = 5 * time.Second

// ActivityPublisherAdapter публикует события активности в topic-обменник.
// Ключ маршрутизации - тип события (auth.login, wishlist.synced, ...).
type ActivityPublisherAdapter struct {
	producer MessagePublisher
}

func NewActivityPublisherAdapter(producer MessagePublisher) (*ActivityPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ActivityPublisherAdapter{producer: producer}, nil
}

func (a *ActivityPublisherAdapter) Publish(ctx context.Context, event domain.ActivityEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ActivityPublisherAdapter",
		"routing_key": event.Type,
	})

	if event.Type == "" {
		return fmt.Errorf("rabbitmq adapter: event type cannot be empty")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Headers:      amqp.Table{},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, event.Type, msg); err != nil {
		adapterLogger.Error("Failed to publish activity event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", event.Type, err)
	}
	adapterLogger.Debug("Activity event published", port.Fields{"message_id": msg.MessageId})
	return nil
}

// NoopActivityPublisher используется, когда события выключены в конфиге.
type NoopActivityPublisher struct{}

func (NoopActivityPublisher) Publish(ctx context.Context, event domain.ActivityEvent) error {
	return nil
}
