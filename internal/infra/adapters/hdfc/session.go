package hdfc

import (
	"context"
	"fmt"
	"net/http"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
)

var _ adapter.SessionGateway = (*Client)(nil)

type sessionRequest struct {
	OrderID             string `json:"order_id"`
	Amount              string `json:"amount"`
	CustomerID          string `json:"customer_id"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhone       string `json:"customer_phone"`
	PaymentPageClientID string `json:"payment_page_client_id"`
	ReturnURL           string `json:"return_url"`
	Description         string `json:"description"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
}

type sessionResponse struct {
	SessionID    string `json:"session_id"`
	OrderID      string `json:"order_id"`
	RedirectURL  string `json:"redirect_url"`
	PaymentLinks struct {
		Web    string `json:"web"`
		Mobile string `json:"mobile"`
	} `json:"payment_links"`
	Status string `json:"status"`
}

// CreateSession opens a hosted payment session. The response shape is not
// guaranteed: redirect_url, payment_links.web and session_id have all been
// observed, so the redirect target resolves through that three-way fallback
// in priority order; all three absent is an explicit error, never a silent
// default.
func (c *Client) CreateSession(ctx context.Context, s *model.PaymentSession) (*adapter.SessionResult, error) {
	body := sessionRequest{
		OrderID:             s.OrderID,
		Amount:              model.FormatAmount(s.Amount),
		CustomerID:          s.CustomerID,
		CustomerEmail:       s.CustomerEmail,
		CustomerPhone:       s.CustomerPhone,
		PaymentPageClientID: c.cfg.ClientID,
		ReturnURL:           s.ReturnURL,
		Description:         s.Description,
		FirstName:           s.FirstName,
		LastName:            s.LastName,
	}

	var out sessionResponse
	if err := c.do(ctx, http.MethodPost, "/session", body, s.CustomerID, &out); err != nil {
		return nil, err
	}

	redirect := out.RedirectURL
	if redirect == "" {
		redirect = out.PaymentLinks.Web
	}
	if redirect == "" && out.SessionID != "" {
		redirect = fmt.Sprintf("%s/pay/%s", c.cfg.BaseURL, out.SessionID)
	}
	if redirect == "" {
		return nil, fmt.Errorf("session %s: %w", s.OrderID, domain.ErrNoRedirectTarget)
	}

	return &adapter.SessionResult{
		OrderID:     s.OrderID,
		SessionID:   out.SessionID,
		RedirectURL: redirect,
	}, nil
}
