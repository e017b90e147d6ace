package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "dedup:message:"

// dedupClient is the slice of the go-redis client MessageDedup needs.
type dedupClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// MessageDedup claims contact-message fingerprints in Redis so a repeated
// submission within the window is recognised.
// Key format: dedup:message:<fingerprint>
type MessageDedup struct {
	client dedupClient
	window time.Duration
}

// NewMessageDedup creates a MessageDedup wrapping the given Redis client.
func NewMessageDedup(client dedupClient, window time.Duration) *MessageDedup {
	return &MessageDedup{client: client, window: window}
}

// Claim returns true when fingerprint had not been seen within the window.
func (d *MessageDedup) Claim(ctx context.Context, fingerprint string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupKeyPrefix+fingerprint, "1", d.window).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

// Release deletes the claim on fingerprint. Missing keys are not an error.
func (d *MessageDedup) Release(ctx context.Context, fingerprint string) error {
	if err := d.client.Del(ctx, dedupKeyPrefix+fingerprint).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}
