package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutRequest is the caller-facing input for one checkout attempt.
type CheckoutRequest struct {
	Amount        float64
	CustomerEmail string
	CustomerPhone string
	FirstName     string
	LastName      string
	Description   string
	ReturnURL     string
}

type CheckoutUseCase interface {
	// CreateSession validates the request, opens a hosted payment session and
	// returns the redirect target for the browser.
	CreateSession(ctx context.Context, req CheckoutRequest) (*adapter.SessionResult, error)
}

type checkoutUC struct {
	gateway adapter.SessionGateway
	ids     adapter.IDGenerator
	audit   *AuditSink
	logger  *zerolog.Logger
}

func NewCheckoutUseCase(gateway adapter.SessionGateway, ids adapter.IDGenerator, audit *AuditSink, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{gateway: gateway, ids: ids, audit: audit, logger: logger}
}

func (u *checkoutUC) CreateSession(ctx context.Context, req CheckoutRequest) (*adapter.SessionResult, error) {
	session := &model.PaymentSession{
		OrderID:       u.ids.OrderID(),
		Amount:        req.Amount,
		CustomerID:    u.ids.CustomerID(req.CustomerEmail),
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Description:   req.Description,
		ReturnURL:     req.ReturnURL,
		CreatedAt:     time.Now(),
	}
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("checkout validation: %w", err)
	}
	session.CustomerPhone = model.NormalizePhone(session.CustomerPhone)

	result, err := u.gateway.CreateSession(ctx, session)
	if err != nil {
		u.logger.Error().Err(err).Str("order_id", session.OrderID).Msg("session creation failed")
		return nil, err
	}

	// Best effort write-through; a tracking failure never fails checkout.
	u.audit.Track(ctx, &model.TransactionRecord{
		OrderID:       session.OrderID,
		Status:        model.StatusPending,
		RawStatus:     "NEW",
		Amount:        model.FormatAmount(session.Amount),
		CustomerID:    session.CustomerID,
		CustomerEmail: session.CustomerEmail,
		Source:        "session",
	})

	u.logger.Info().
		Str("order_id", session.OrderID).
		Str("session_id", result.SessionID).
		Msg("payment session created")
	return result, nil
}
