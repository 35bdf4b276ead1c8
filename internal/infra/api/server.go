package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/infra/logging"
	"payment-gateway-service/internal/usecase"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// Server wires the payment endpoints: checkout session creation, the inbound
// webhook, the browser-redirect callback (GET and POST variants) and refunds.
type Server struct {
	checkout usecase.CheckoutUseCase
	webhook  usecase.WebhookUseCase
	callback usecase.CallbackUseCase
	refund   usecase.RefundUseCase
	logger   *zerolog.Logger
}

func NewServer(checkout usecase.CheckoutUseCase, webhook usecase.WebhookUseCase, callback usecase.CallbackUseCase, refund usecase.RefundUseCase, logger *zerolog.Logger) *Server {
	return &Server{checkout: checkout, webhook: webhook, callback: callback, refund: refund, logger: logger}
}

// Router builds the chi mux with the middleware chain applied.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID())
	r.Use(RequestLog(s.logger))
	r.Use(Recover(s.logger))

	r.Post("/api/v1/checkout/session", s.handleCreateSession)
	r.Post("/api/v1/payment/webhook", s.handleWebhook)
	r.Get("/api/v1/payment/response", s.handleCallbackGET)
	r.Post("/api/v1/payment/response", s.handleCallbackPOST)
	r.Post("/api/v1/payment/refund", s.handleRefund)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type createSessionRequest struct {
	Amount        float64 `json:"amount"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Description   string  `json:"description"`
	ReturnURL     string  `json:"return_url"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.checkout.CreateSession(r.Context(), usecase.CheckoutRequest{
		Amount:        req.Amount,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Description:   req.Description,
		ReturnURL:     req.ReturnURL,
	})
	if err != nil {
		if domain.IsUpstream(err) {
			writeJSONError(w, http.StatusBadGateway, "payment gateway rejected the session request")
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"order_id":     result.OrderID,
		"session_id":   result.SessionID,
		"redirect_url": result.RedirectURL,
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := s.webhook.Process(r.Context(), body); err != nil {
		switch {
		case errors.Is(err, domain.ErrSignatureMismatch):
			writeJSONError(w, http.StatusBadRequest, "signature verification failed")
		case errors.Is(err, domain.ErrMissingOrderID), errors.Is(err, domain.ErrInvalidArgument):
			writeJSONError(w, http.StatusBadRequest, "malformed webhook payload")
		default:
			// Should not happen: downstream failures are swallowed inside
			// the use case so the gateway never retries a verified event.
			logging.With(r.Context(), s.logger).Error().Err(err).Msg("unexpected webhook error")
			writeJSONError(w, http.StatusBadRequest, "rejected")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCallbackGET processes the query-string variant of the browser
// redirect and answers with a real HTTP redirect.
func (s *Server) handleCallbackGET(w http.ResponseWriter, r *http.Request) {
	fields := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	s.finishCallback(w, r, fields, false)
}

// handleCallbackPOST processes the form-encoded variant. The gateway expects
// an HTML body back, not a 3xx, so the redirect happens client-side.
func (s *Server) handleCallbackPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderErrorPage(w, http.StatusBadRequest, "We could not read the payment response.")
		return
	}
	fields := make(map[string]string)
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	s.finishCallback(w, r, fields, true)
}

func (s *Server) finishCallback(w http.ResponseWriter, r *http.Request, fields map[string]string, htmlVariant bool) {
	ctx := logging.WithOrderID(r.Context(), fields["order_id"])
	decision := s.callback.Decide(ctx, fields)

	if decision.Outcome == usecase.OutcomeRejected {
		renderErrorPage(w, http.StatusBadRequest, "We could not verify the payment response. If you were charged, the amount will be reconciled automatically.")
		return
	}
	if htmlVariant {
		renderRedirectPage(w, decision.Target)
		return
	}
	http.Redirect(w, r, decision.Target, http.StatusSeeOther)
}

type refundRequest struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Note    string  `json:"note"`
}

func (s *Server) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.refund.Refund(r.Context(), req.OrderID, req.Amount, req.Note)
	if err != nil {
		if domain.IsUpstream(err) {
			writeJSONError(w, http.StatusBadGateway, "payment gateway rejected the refund")
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"order_id":      result.OrderID,
		"refund_ref_no": result.RefundRefNo,
		"status":        result.Status,
		"amount":        result.Amount,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
