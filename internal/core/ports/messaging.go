package ports

import (
	"context"

	"github.com/midas-hq/midas/internal/core/domain"
)

// MessageDeduper guards against double-queuing of the same message id.
type MessageDeduper interface {
	// Reserve atomically claims id, returning false when it was already
	// claimed within the dedup window.
	Reserve(ctx context.Context, id string) (bool, error)
}

// MessageQueue hands accepted messages to the delivery workers.
type MessageQueue interface {
	Enqueue(msg domain.Message)
}

// Provider delivers one message over its channel. Real third-party
// integrations (WhatsApp Business, email) live behind this port.
type Provider interface {
	Deliver(ctx context.Context, msg domain.Message) error
}

// MessagingService accepts outbound messages for asynchronous delivery.
type MessagingService interface {
	Enqueue(ctx context.Context, msg domain.Message) (*domain.Message, error)
}
