package usecase

import (
	"context"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
)

// publishActivity отправляет событие; сбой брокера не влияет на действие пользователя.
func publishActivity(ctx context.Context, publisher port.ActivityPublisherPort, eventType string, visitor domain.Visitor, payload map[string]any) {
	if publisher == nil {
		return
	}
	event := domain.ActivityEvent{
		Type:       eventType,
		VisitorID:  visitor.ID,
		UserID:     visitor.UserID(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to publish activity event", port.Fields{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
