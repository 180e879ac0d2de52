package contextkeys

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestVisitorIDFromContext(t *testing.T) {
	if got := VisitorIDFromContext(context.Background()); got != uuid.Nil {
		t.Errorf("empty context = %s, want uuid.Nil", got)
	}

	id := uuid.New()
	if got := VisitorIDFromContext(ContextWithVisitorID(context.Background(), id)); got != id {
		t.Errorf("got %s, want %s", got, id)
	}
}
