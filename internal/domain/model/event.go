package model

import (
	"strings"
	"time"
)

// The gateway has been observed to use two naming conventions for the same
// logical fields depending on the delivery path. Alias reconciliation happens
// exactly once, at ingestion, before any typed logic runs.

// GatewayResponseEvent is the raw field bag of one gateway response, whether
// it arrived as a form POST, a query string or a JSON webhook body. Each
// arrival is a new immutable event even when it repeats an order id.
type GatewayResponseEvent struct {
	Fields map[string]string
}

// OrderID returns the order id, empty if absent. No event may be processed
// without one.
func (e GatewayResponseEvent) OrderID() string { return e.Fields["order_id"] }

// TransactionID prefers transaction_id and falls back to txn_id.
func (e GatewayResponseEvent) TransactionID() string {
	if v := e.Fields["transaction_id"]; v != "" {
		return v
	}
	return e.Fields["txn_id"]
}

// RawStatus prefers order_status and falls back to status.
func (e GatewayResponseEvent) RawStatus() string {
	if v := e.Fields["order_status"]; v != "" {
		return v
	}
	return e.Fields["status"]
}

func (e GatewayResponseEvent) Status() NormalizedStatus { return NormalizeStatus(e.RawStatus()) }

func (e GatewayResponseEvent) Signature() string { return e.Fields["signature"] }

func (e GatewayResponseEvent) Amount() string { return e.Fields["amount"] }

func (e GatewayResponseEvent) PaymentMethod() string { return e.Fields["payment_method"] }

func (e GatewayResponseEvent) BankRefNo() string { return e.Fields["bank_ref_no"] }

func (e GatewayResponseEvent) FailureReason() string { return e.Fields["failure_reason"] }

// WebhookEventType classifies server-to-server notifications.
type WebhookEventType string

const (
	WebhookEventSuccess  WebhookEventType = "success"
	WebhookEventFailed   WebhookEventType = "failed"
	WebhookEventPending  WebhookEventType = "pending"
	WebhookEventRefunded WebhookEventType = "refunded"
	WebhookEventUnknown  WebhookEventType = "unknown"
)

// ClassifyWebhookEvent maps a raw event_type token, case-insensitively, to a
// known type. Unknown types are acknowledged, never retried by the gateway.
func ClassifyWebhookEvent(raw string) WebhookEventType {
	t := WebhookEventType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case WebhookEventSuccess, WebhookEventFailed, WebhookEventPending, WebhookEventRefunded:
		return t
	}
	return WebhookEventUnknown
}

// WebhookEvent is the typed shape of an inbound webhook after alias
// reconciliation and classification.
type WebhookEvent struct {
	Type          WebhookEventType
	OrderID       string
	Status        NormalizedStatus
	RawStatus     string
	Amount        string
	TransactionID string
	Timestamp     time.Time
	Raw           GatewayResponseEvent
}
