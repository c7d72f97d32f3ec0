package output

import (
	"context"

	"github.com/sfvc/calendario-nodo/internal/domain/entities"
)

// EventAnnouncer publishes a one-shot notification for a freshly created
// event. Implementations must not retry.
type EventAnnouncer interface {
	AnnounceEventCreated(ctx context.Context, event *entities.Event) error
}
