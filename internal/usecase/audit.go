package usecase

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/repository"
	"payment-gateway-service/internal/infra/metrics"
)

// AuditSink is the single choke point for tracker and security-log writes.
// Every error is caught here, logged and swallowed: payment-critical control
// flow must never depend on audit logging succeeding. Implementing the
// isolation once, centrally, guarantees it structurally instead of by
// convention at each call site.
type AuditSink struct {
	tracker repository.TransactionTracker
	events  repository.SecurityEventRepository
	logger  *zerolog.Logger
}

func NewAuditSink(tracker repository.TransactionTracker, events repository.SecurityEventRepository, logger *zerolog.Logger) *AuditSink {
	return &AuditSink{tracker: tracker, events: events, logger: logger}
}

// Track upserts the order's tracking record, best effort.
func (a *AuditSink) Track(ctx context.Context, t *model.TransactionRecord) {
	if a.tracker == nil {
		return
	}
	if err := a.tracker.Upsert(ctx, t); err != nil {
		metrics.IncAuditSinkError("tracker")
		a.logger.Warn().Err(err).Str("order_id", t.OrderID).Msg("tracking write failed, continuing")
	}
}

// Record appends a security event, best effort.
func (a *AuditSink) Record(ctx context.Context, orderID, eventType string, severity model.Severity, payload map[string]interface{}) {
	if a.events == nil {
		return
	}
	ev := &model.SecurityEvent{
		ID:        ulid.Make().String(),
		OrderID:   orderID,
		Type:      eventType,
		Severity:  severity,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := a.events.Append(ctx, ev); err != nil {
		metrics.IncAuditSinkError("security_events")
		a.logger.Warn().Err(err).Str("order_id", orderID).Str("event_type", eventType).Msg("security event write failed, continuing")
	}
}
