package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// MessageDedup provides idempotency checks for outbound messages backed by
// Redis. Key format: msg:<message_id>
type MessageDedup struct {
	client *redis.Client
}

// NewMessageDedup creates a MessageDedup wrapping the given Redis client.
func NewMessageDedup(client *redis.Client) *MessageDedup {
	return &MessageDedup{client: client}
}

// Reserve atomically claims a message id via SETNX. It returns false when
// the id was already claimed within the dedup window, so concurrent sends of
// the same id resolve to exactly one accepted message.
func (d *MessageDedup) Reserve(ctx context.Context, id string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(id), "1", dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedup reserve: %w", err)
	}
	return ok, nil
}

func (d *MessageDedup) key(id string) string {
	return "msg:" + id
}
