package notify

import (
	"context"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*LogNotifier)(nil)

// LogNotifier fulfils the notification contract by logging the outcome. The
// real notification center is an external collaborator; deployments that run
// one replace this with their own adapter.
type LogNotifier struct {
	logger *zerolog.Logger
}

func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, orderID string, outcome model.NormalizedStatus) error {
	n.logger.Info().Str("order_id", orderID).Str("outcome", string(outcome)).Msg("payment notification")
	return nil
}
