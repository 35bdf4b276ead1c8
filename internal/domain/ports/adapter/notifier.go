package adapter

import (
	"context"

	"payment-gateway-service/internal/domain/model"
)

// Notifier is the outbound notification collaborator. The contract is
// deliberately narrow: notify with the order id and its outcome. Delivery
// failures are the caller's problem to swallow, not the notifier's.
type Notifier interface {
	Notify(ctx context.Context, orderID string, outcome model.NormalizedStatus) error
}
