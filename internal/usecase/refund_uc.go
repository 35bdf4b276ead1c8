package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
	"payment-gateway-service/internal/infra/metrics"
)

var _ RefundUseCase = (*refundUC)(nil)

type RefundUseCase interface {
	// Refund issues a refund for a charged order and surfaces the gateway's
	// status verbatim (success | failed | pending).
	Refund(ctx context.Context, orderID string, amount float64, note string) (*model.RefundResult, error)
}

type refundUC struct {
	gateway adapter.RefundGateway
	ids     adapter.IDGenerator
	audit   *AuditSink
	logger  *zerolog.Logger
}

func NewRefundUseCase(gateway adapter.RefundGateway, ids adapter.IDGenerator, audit *AuditSink, logger *zerolog.Logger) *refundUC {
	return &refundUC{gateway: gateway, ids: ids, audit: audit, logger: logger}
}

func (u *refundUC) Refund(ctx context.Context, orderID string, amount float64, note string) (*model.RefundResult, error) {
	if orderID == "" {
		return nil, domain.ErrMissingOrderID
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: refund amount must be positive", domain.ErrInvalidArgument)
	}

	req := &model.RefundRequest{
		OrderID:     orderID,
		Amount:      amount,
		Note:        note,
		RefundRefNo: u.ids.RefundRef(),
	}
	u.audit.Record(ctx, orderID, model.SecurityEventRefundRequested, model.SeverityMedium, map[string]interface{}{
		"refund_ref_no": req.RefundRefNo,
		"amount":        model.FormatAmount(amount),
	})

	result, err := u.gateway.Refund(ctx, req)
	if err != nil {
		u.logger.Error().Err(err).Str("order_id", orderID).Msg("refund request failed")
		return nil, err
	}
	metrics.IncRefund(result.Status)

	if strings.EqualFold(result.Status, "success") {
		u.audit.Track(ctx, &model.TransactionRecord{
			OrderID:   orderID,
			Status:    model.StatusRefunded,
			RawStatus: result.Status,
			Source:    "refund",
		})
	}

	u.logger.Info().
		Str("order_id", orderID).
		Str("refund_ref_no", result.RefundRefNo).
		Str("status", result.Status).
		Msg("refund processed")
	return result, nil
}
