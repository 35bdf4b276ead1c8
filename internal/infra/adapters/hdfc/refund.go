package hdfc

import (
	"context"
	"net/http"
	"time"

	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
)

var _ adapter.RefundGateway = (*Client)(nil)

type refundRequest struct {
	OrderID      string `json:"order_id"`
	RefundAmount string `json:"refund_amount"`
	RefundNote   string `json:"refund_note,omitempty"`
	RefundRefNo  string `json:"refund_ref_no"`
	MerchantID   string `json:"merchant_id"`
}

type refundResponse struct {
	OrderID     string `json:"order_id"`
	RefundRefNo string `json:"refund_ref_no"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
}

// Refund POSTs to /refund and surfaces the gateway status verbatim
// (success | failed | pending). A missing RefundRefNo is generated here so
// every attempt is traceable even when the caller did not pick a reference.
func (c *Client) Refund(ctx context.Context, req *model.RefundRequest) (*model.RefundResult, error) {
	if req.RefundRefNo == "" {
		req.RefundRefNo = c.ids.RefundRef()
	}
	body := refundRequest{
		OrderID:      req.OrderID,
		RefundAmount: model.FormatAmount(req.Amount),
		RefundNote:   req.Note,
		RefundRefNo:  req.RefundRefNo,
		MerchantID:   c.cfg.MerchantID,
	}

	var out refundResponse
	if err := c.do(ctx, http.MethodPost, "/refund", body, "", &out); err != nil {
		return nil, err
	}

	status := out.Status
	if status == "" {
		status = "pending"
	}
	amount := out.Amount
	if amount == "" {
		amount = body.RefundAmount
	}
	return &model.RefundResult{
		OrderID:     req.OrderID,
		RefundRefNo: req.RefundRefNo,
		Status:      status,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}, nil
}
