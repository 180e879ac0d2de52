package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeProducer struct {
	routingKeys []string
	messages    []amqp.Publishing
	err         error
}

func (f *fakeProducer) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	f.routingKeys = append(f.routingKeys, routingKey)
	f.messages = append(f.messages, msg)
	return f.err
}

func TestActivityPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	adapter, err := NewActivityPublisherAdapter(producer)
	if err != nil {
		t.Fatal(err)
	}

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-9")
	visitorID := uuid.New()
	event := domain.ActivityEvent{Type: domain.ActivityLogin, VisitorID: visitorID, UserID: "42"}
	if err := adapter.Publish(ctx, event); err != nil {
		t.Fatal(err)
	}

	if len(producer.routingKeys) != 1 || producer.routingKeys[0] != domain.ActivityLogin {
		t.Fatalf("routing keys = %v", producer.routingKeys)
	}
	msg := producer.messages[0]
	if msg.Headers["x-trace-id"] != "trace-9" || msg.DeliveryMode != amqp.Persistent || msg.MessageId == "" {
		t.Errorf("unexpected message metadata: %+v", msg)
	}
	var decoded domain.ActivityEvent
	if err := json.Unmarshal(msg.Body, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.UserID != "42" || decoded.VisitorID != visitorID || decoded.OccurredAt.IsZero() {
		t.Errorf("unexpected body %+v", decoded)
	}
}

func TestActivityPublisher_Errors(t *testing.T) {
	if _, err := NewActivityPublisherAdapter(nil); err == nil {
		t.Error("expected error for nil producer")
	}

	adapter, _ := NewActivityPublisherAdapter(&fakeProducer{err: errors.New("channel closed")})
	if err := adapter.Publish(context.Background(), domain.ActivityEvent{Type: domain.ActivityLogout}); err == nil {
		t.Error("expected publish error to be returned")
	}
	if err := adapter.Publish(context.Background(), domain.ActivityEvent{}); err == nil {
		t.Error("expected error for empty type")
	}
}

func TestToFields(t *testing.T) {
	fields := toFields("exchange", "activity", 42, "skipped", "dangling")
	if len(fields) != 1 || fields["exchange"] != "activity" {
		t.Errorf("unexpected fields %v", fields)
	}
}
