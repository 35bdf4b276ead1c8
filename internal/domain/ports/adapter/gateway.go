package adapter

import (
	"context"

	"payment-gateway-service/internal/domain/model"
)

// SessionResult is the outcome of opening a hosted payment session. The
// gateway's response shape is not guaranteed, so RedirectURL is the already
// resolved target (redirect_url, then payment_links.web, then a URL built
// from session_id).
type SessionResult struct {
	OrderID     string
	SessionID   string
	RedirectURL string
}

// SessionGateway opens hosted payment sessions.
type SessionGateway interface {
	CreateSession(ctx context.Context, session *model.PaymentSession) (*SessionResult, error)
}

// StatusGateway polls the authoritative order-status endpoint.
type StatusGateway interface {
	GetStatus(ctx context.Context, orderID string) (*model.OrderStatus, error)
}

// RefundGateway issues refunds.
type RefundGateway interface {
	Refund(ctx context.Context, req *model.RefundRequest) (*model.RefundResult, error)
}

// SignatureVerifier validates the authenticity of asynchronous gateway
// responses. Verify returns false on mismatch; it is a boolean outcome the
// caller must branch on, not an error.
type SignatureVerifier interface {
	Verify(fields map[string]string) bool
}

// IDGenerator produces the identifiers the gateway contract mandates.
type IDGenerator interface {
	OrderID() string
	CustomerID(stable string) string
	RefundRef() string
}
