package port

import (
	"context"
	"rental-bff/internal/core/domain"
)

// ActivityPublisherPort отправляет события активности во внешний брокер.
type ActivityPublisherPort interface {
	Publish(ctx context.Context, event domain.ActivityEvent) error
}
