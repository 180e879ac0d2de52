package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий активности, которые уходят в брокер.
const (
	ActivityLogin          = "auth.login"
	ActivityLogout         = "auth.logout"
	ActivityWishlistSynced = "wishlist.synced"
	ActivityBookingCreated = "booking.created"
)

// ActivityEvent - событие для аналитики и соседних сервисов.
type ActivityEvent struct {
	Type       string         `json:"type"`
	VisitorID  uuid.UUID      `json:"visitor_id"`
	UserID     string         `json:"user_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}
