package usecase

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
	"payment-gateway-service/internal/infra/metrics"
)

// Outcome of one browser-redirect callback.
type CallbackOutcome string

const (
	OutcomeSuccess  CallbackOutcome = "success"
	OutcomeFailure  CallbackOutcome = "failure"
	OutcomePending  CallbackOutcome = "pending"
	OutcomeUnknown  CallbackOutcome = "unknown"
	OutcomeRejected CallbackOutcome = "rejected" // signature mismatch or missing order_id, no status branching
)

// RedirectDecision is the transport-independent result of processing a
// browser callback. The GET adapter turns it into a 303, the POST adapter
// into an auto-redirecting HTML page; the branching logic lives here once.
type RedirectDecision struct {
	Outcome       CallbackOutcome
	Target        string
	OrderID       string
	TransactionID string
	Status        model.NormalizedStatus
	RawStatus     string
	Reason        string
}

var _ CallbackUseCase = (*callbackUC)(nil)

type CallbackUseCase interface {
	Decide(ctx context.Context, fields map[string]string) RedirectDecision
}

// RedirectTargets are the post-payment landing pages per branch.
type RedirectTargets struct {
	Success string
	Failure string
	Pending string
	Unknown string
}

type callbackUC struct {
	verifier adapter.SignatureVerifier
	status   adapter.StatusGateway // optional corroboration, may be nil
	targets  RedirectTargets
	audit    *AuditSink
	logger   *zerolog.Logger
}

func NewCallbackUseCase(verifier adapter.SignatureVerifier, status adapter.StatusGateway, targets RedirectTargets, audit *AuditSink, logger *zerolog.Logger) *callbackUC {
	if targets.Pending == "" {
		targets.Pending = targets.Failure
	}
	if targets.Unknown == "" {
		targets.Unknown = targets.Failure
	}
	return &callbackUC{verifier: verifier, status: status, targets: targets, audit: audit, logger: logger}
}

// Decide verifies the callback and maps it to a redirect. Audit and tracking
// writes are fire-and-forget: nothing in here may stop the user from being
// redirected once the signature has passed.
func (u *callbackUC) Decide(ctx context.Context, fields map[string]string) RedirectDecision {
	event := model.GatewayResponseEvent{Fields: fields}
	orderID := event.OrderID()

	if !u.verifier.Verify(fields) {
		metrics.IncSignatureFailure("callback")
		u.audit.Record(ctx, orderID, model.SecurityEventSignatureFailure, model.SeverityHigh, map[string]interface{}{
			"path":      "callback",
			"signature": event.Signature(),
		})
		u.logger.Error().Str("order_id", orderID).Msg("callback signature mismatch")
		return RedirectDecision{Outcome: OutcomeRejected, OrderID: orderID}
	}
	if orderID == "" {
		// Same rule as the webhook path: nothing is processed, and nothing
		// is tracked, without an order id.
		u.logger.Error().Msg("callback missing order_id")
		return RedirectDecision{Outcome: OutcomeRejected}
	}

	rawStatus := event.RawStatus()
	if rawStatus == "" && u.status != nil {
		// The redirect arrived without a usable status; fall back to the
		// authoritative status endpoint.
		if os, err := u.status.GetStatus(ctx, orderID); err == nil {
			rawStatus = os.RawStatus
			if fields["transaction_id"] == "" && fields["txn_id"] == "" {
				fields["transaction_id"] = os.TransactionID
			}
		} else {
			u.logger.Warn().Err(err).Str("order_id", orderID).Msg("status corroboration failed")
		}
	}

	status := model.NormalizeStatus(rawStatus)
	decision := RedirectDecision{
		OrderID:       orderID,
		TransactionID: event.TransactionID(),
		Status:        status,
		RawStatus:     rawStatus,
		Reason:        event.FailureReason(),
	}

	switch status {
	case model.StatusCharged:
		decision.Outcome = OutcomeSuccess
		decision.Target = buildTarget(u.targets.Success, map[string]string{
			"order_id":       orderID,
			"transaction_id": decision.TransactionID,
			"status":         "success",
		})
	case model.StatusFailed, model.StatusDeclined, model.StatusCancelled:
		decision.Outcome = OutcomeFailure
		decision.Target = buildTarget(u.targets.Failure, map[string]string{
			"order_id": orderID,
			"status":   string(status),
			"reason":   decision.Reason,
		})
	case model.StatusPending:
		decision.Outcome = OutcomePending
		decision.Target = buildTarget(u.targets.Pending, map[string]string{
			"order_id": orderID,
			"status":   "pending",
		})
	default:
		// Surface gateway drift distinctly so operators can see it.
		decision.Outcome = OutcomeUnknown
		decision.Target = buildTarget(u.targets.Unknown, map[string]string{
			"order_id":   orderID,
			"status":     "unknown",
			"raw_status": rawStatus,
		})
		u.audit.Record(ctx, orderID, model.SecurityEventUnknownStatus, model.SeverityMedium, map[string]interface{}{
			"raw_status": rawStatus,
		})
	}

	u.audit.Track(ctx, &model.TransactionRecord{
		OrderID:       orderID,
		TransactionID: decision.TransactionID,
		Status:        status,
		RawStatus:     rawStatus,
		Amount:        event.Amount(),
		PaymentMethod: event.PaymentMethod(),
		BankRefNo:     event.BankRefNo(),
		Source:        "callback",
	})
	u.audit.Record(ctx, orderID, model.SecurityEventStatusTransition, model.SeverityLow, map[string]interface{}{
		"path":    "callback",
		"status":  string(status),
		"outcome": string(decision.Outcome),
	})
	metrics.IncPayment(string(status), "callback")

	return decision
}

func buildTarget(base string, params map[string]string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
