package port

import (
	"context"
	"photo-ingest/internal/core/domain"
)

// EventPublisher is an interface to define an event publisher (kafka, nats, ...)
type EventPublisher interface {
	PublishPhotoStored(ctx context.Context, event domain.PhotoStoredEvent) error
	Close() error
}
