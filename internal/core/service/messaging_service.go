package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/midas-hq/midas/internal/api/metrics"
	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// MessagingService accepts outbound notifications, deduplicates them, and
// hands them to the delivery dispatcher. Delivery itself is asynchronous.
type MessagingService struct {
	dedup ports.MessageDeduper
	queue ports.MessageQueue
}

func NewMessagingService(dedup ports.MessageDeduper, queue ports.MessageQueue) *MessagingService {
	return &MessagingService{dedup: dedup, queue: queue}
}

// Enqueue validates the channel, claims the message id, and queues the
// message. A client-supplied id that was already claimed comes back as
// domain.ErrDuplicateMessage so retried sends stay idempotent.
func (s *MessagingService) Enqueue(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	if msg.Channel != domain.ChannelWhatsApp && msg.Channel != domain.ChannelEmail {
		return nil, domain.ErrUnknownChannel
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.QueuedAt = time.Now().UTC()

	fresh, err := s.dedup.Reserve(ctx, msg.ID)
	if err != nil {
		return nil, err
	}
	if !fresh {
		metrics.MessagesDedupTotal.WithLabelValues("hit").Inc()
		return nil, domain.ErrDuplicateMessage
	}
	metrics.MessagesDedupTotal.WithLabelValues("miss").Inc()

	s.queue.Enqueue(msg)
	metrics.MessagesQueuedTotal.WithLabelValues(string(msg.Channel)).Inc()
	return &msg, nil
}
