package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
	"payment-gateway-service/internal/domain/ports/repository"
	"payment-gateway-service/internal/infra/metrics"
)

var _ WebhookUseCase = (*webhookUC)(nil)

// WebhookUseCase processes server-to-server gateway notifications.
//
// The gateway delivers at least once, so the same order_id + event_type pair
// may arrive repeatedly; every side effect is an upsert keyed by order id.
// Once the signature verifies, the gateway always gets an acknowledgement;
// downstream failures are swallowed, never surfaced as a retry signal.
type WebhookUseCase interface {
	Process(ctx context.Context, payload []byte) error
}

type webhookUC struct {
	verifier adapter.SignatureVerifier
	notifier adapter.Notifier
	dedupe   repository.DedupeCache
	audit    *AuditSink
	logger   *zerolog.Logger
}

func NewWebhookUseCase(verifier adapter.SignatureVerifier, notifier adapter.Notifier, dedupe repository.DedupeCache, audit *AuditSink, logger *zerolog.Logger) *webhookUC {
	return &webhookUC{verifier: verifier, notifier: notifier, dedupe: dedupe, audit: audit, logger: logger}
}

// parseFields flattens the JSON body into the raw field bag used for
// signature verification. Decoding with UseNumber keeps numeric values
// exactly as received; re-formatting them would break the signature.
func parseFields(payload []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			fields[k] = t
		case json.Number:
			fields[k] = t.String()
		case bool:
			fields[k] = fmt.Sprintf("%t", t)
		case nil:
			fields[k] = ""
		default:
			// nested objects do not participate in signing
		}
	}
	return fields, nil
}

func (u *webhookUC) Process(ctx context.Context, payload []byte) error {
	fields, err := parseFields(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	event := model.GatewayResponseEvent{Fields: fields}
	orderID := event.OrderID()

	// Signature gate comes first; no handler runs on a mismatch.
	if !u.verifier.Verify(fields) {
		metrics.IncSignatureFailure("webhook")
		u.audit.Record(ctx, orderID, model.SecurityEventSignatureFailure, model.SeverityHigh, map[string]interface{}{
			"path":      "webhook",
			"signature": event.Signature(),
		})
		u.logger.Error().Str("order_id", orderID).Msg("webhook signature mismatch")
		return domain.ErrSignatureMismatch
	}
	if orderID == "" {
		return domain.ErrMissingOrderID
	}

	eventType := model.ClassifyWebhookEvent(fields["event_type"])
	if eventType == model.WebhookEventUnknown {
		// Intentionally ignored types are ACKed; the gateway must not retry.
		metrics.IncWebhookEvent(fields["event_type"], "ignored")
		u.logger.Warn().Str("order_id", orderID).Str("event_type", fields["event_type"]).Msg("unknown webhook event type, acknowledging")
		return nil
	}

	if u.dedupe != nil {
		if first, err := u.dedupe.MarkSeen(ctx, orderID, string(eventType)); err == nil && !first {
			metrics.IncWebhookDuplicate()
			metrics.IncWebhookEvent(string(eventType), "duplicate")
			u.logger.Debug().Str("order_id", orderID).Str("event_type", string(eventType)).Msg("duplicate webhook delivery suppressed")
			return nil
		}
		// A dedupe error is ignored: the tracker upsert stays idempotent.
	}

	wh := model.WebhookEvent{
		Type:          eventType,
		OrderID:       orderID,
		Status:        statusForEvent(eventType, event),
		RawStatus:     event.RawStatus(),
		Amount:        event.Amount(),
		TransactionID: event.TransactionID(),
		Timestamp:     time.Now(),
		Raw:           event,
	}
	u.apply(ctx, wh)

	metrics.IncWebhookEvent(string(eventType), "processed")
	return nil
}

// statusForEvent derives the normalized order status from the event type.
// The payload's own status field is only consulted for unknown types; the
// event type is what the gateway keys its delivery on.
func statusForEvent(t model.WebhookEventType, e model.GatewayResponseEvent) model.NormalizedStatus {
	switch t {
	case model.WebhookEventSuccess:
		return model.StatusCharged
	case model.WebhookEventFailed:
		return model.StatusFailed
	case model.WebhookEventPending:
		return model.StatusPending
	case model.WebhookEventRefunded:
		return model.StatusRefunded
	}
	return e.Status()
}

// apply performs the domain side effects for a verified webhook. Everything
// in here is best effort with respect to the acknowledgement.
func (u *webhookUC) apply(ctx context.Context, wh model.WebhookEvent) {
	u.audit.Track(ctx, &model.TransactionRecord{
		OrderID:       wh.OrderID,
		TransactionID: wh.TransactionID,
		Status:        wh.Status,
		RawStatus:     wh.RawStatus,
		Amount:        wh.Amount,
		PaymentMethod: wh.Raw.PaymentMethod(),
		BankRefNo:     wh.Raw.BankRefNo(),
		Source:        "webhook",
	})
	u.audit.Record(ctx, wh.OrderID, model.SecurityEventStatusTransition, model.SeverityLow, map[string]interface{}{
		"path":       "webhook",
		"event_type": string(wh.Type),
		"status":     string(wh.Status),
	})
	metrics.IncPayment(string(wh.Status), "webhook")

	if u.notifier != nil {
		// May fire again on redelivery when the dedupe cache is cold or
		// down; receivers get at-least-once semantics, not exactly-once.
		if err := u.notifier.Notify(ctx, wh.OrderID, wh.Status); err != nil {
			u.logger.Warn().Err(err).Str("order_id", wh.OrderID).Msg("notification failed, continuing")
		}
	}
}
