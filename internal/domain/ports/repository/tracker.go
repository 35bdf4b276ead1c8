package repository

import (
	"context"
	"time"

	"payment-gateway-service/internal/domain/model"
)

// TransactionTracker is the best-effort audit/persistence sink for order
// state. Upsert is keyed by order id and must be safe under concurrent
// writers; it is the sole synchronization point between the webhook and
// browser-callback paths.
type TransactionTracker interface {
	Upsert(ctx context.Context, txn *model.TransactionRecord) error
	FindByOrderID(ctx context.Context, orderID string) (*model.TransactionRecord, error)
	ListPendingOlderThan(ctx context.Context, olderThan time.Time, limit int) ([]*model.TransactionRecord, error)
}

// SecurityEventRepository appends audit records. Append-only; there is no
// update or delete surface.
type SecurityEventRepository interface {
	Append(ctx context.Context, ev *model.SecurityEvent) error
}

// DedupeCache remembers recently processed webhook deliveries. Advisory only:
// the tracker upsert remains the idempotency barrier when the cache is cold
// or unavailable.
type DedupeCache interface {
	// MarkSeen returns true if this delivery key was recorded for the first time.
	MarkSeen(ctx context.Context, orderID, eventType string) (bool, error)
}
