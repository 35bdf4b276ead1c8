package redis

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-service/internal/domain/ports/repository"
)

var _ repository.DedupeCache = (*DedupeCache)(nil)

// DedupeCache remembers webhook deliveries so redeliveries can be short
// circuited before touching the database. It is advisory: the tracker's
// order_id keyed upsert stays idempotent even when redis is cold or down.
type DedupeCache struct {
	cli RedisClient
	ttl time.Duration
}

func NewDedupeCache(cli RedisClient, ttl time.Duration) *DedupeCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DedupeCache{cli: cli, ttl: ttl}
}

// MarkSeen records the delivery key and reports whether this was its first
// appearance.
func (d *DedupeCache) MarkSeen(ctx context.Context, orderID, eventType string) (bool, error) {
	key := fmt.Sprintf("webhook:seen:%s:%s", orderID, eventType)
	return d.cli.SetNX(ctx, key, 1, d.ttl)
}
