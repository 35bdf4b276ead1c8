package hdfc

import (
	"context"
	"net/http"

	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
)

var _ adapter.StatusGateway = (*Client)(nil)

// The status endpoint's schema is authoritative and distinct from the
// webhook/callback input schema: the status field is order_status and the
// transaction identifier is transaction_id, with no aliasing on this path.
type statusResponse struct {
	OrderID         string `json:"order_id"`
	OrderStatus     string `json:"order_status"`
	StatusID        int    `json:"status_id"`
	TransactionID   string `json:"transaction_id"`
	Amount          string `json:"amount"`
	PaymentMethod   string `json:"payment_method"`
	BankRefNo       string `json:"bank_ref_no"`
	CustomerID      string `json:"customer_id"`
	MerchantID      string `json:"merchant_id"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	Currency        string `json:"currency"`
	GatewayResponse struct {
		GatewayTransactionID string `json:"gateway_transaction_id"`
		AuthCode             string `json:"auth_code"`
		RRN                  string `json:"rrn"`
	} `json:"gateway_response"`
}

// GetStatus polls /orders/{order_id} and normalizes the result.
func (c *Client) GetStatus(ctx context.Context, orderID string) (*model.OrderStatus, error) {
	var out statusResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, "", &out); err != nil {
		return nil, err
	}
	return &model.OrderStatus{
		OrderID:       out.OrderID,
		Status:        model.NormalizeStatus(out.OrderStatus),
		RawStatus:     out.OrderStatus,
		StatusID:      out.StatusID,
		TransactionID: out.TransactionID,
		Amount:        out.Amount,
		PaymentMethod: out.PaymentMethod,
		BankRefNo:     out.BankRefNo,
		CustomerID:    out.CustomerID,
		MerchantID:    out.MerchantID,
		Currency:      out.Currency,
		CreatedAt:     out.CreatedAt,
		UpdatedAt:     out.UpdatedAt,
		Gateway: model.GatewayDetail{
			GatewayTransactionID: out.GatewayResponse.GatewayTransactionID,
			AuthCode:             out.GatewayResponse.AuthCode,
			RRN:                  out.GatewayResponse.RRN,
		},
	}, nil
}
