package model

import "testing"

func TestEventAliasReconciliation(t *testing.T) {
	t.Run("prefers transaction_id over txn_id", func(t *testing.T) {
		e := GatewayResponseEvent{Fields: map[string]string{"transaction_id": "T1", "txn_id": "T2"}}
		if got := e.TransactionID(); got != "T1" {
			t.Errorf("TransactionID() = %q, want T1", got)
		}
	})

	t.Run("falls back to txn_id", func(t *testing.T) {
		e := GatewayResponseEvent{Fields: map[string]string{"txn_id": "T2"}}
		if got := e.TransactionID(); got != "T2" {
			t.Errorf("TransactionID() = %q, want T2", got)
		}
	})

	t.Run("prefers order_status over status", func(t *testing.T) {
		e := GatewayResponseEvent{Fields: map[string]string{"order_status": "CHARGED", "status": "PENDING"}}
		if got := e.RawStatus(); got != "CHARGED" {
			t.Errorf("RawStatus() = %q, want CHARGED", got)
		}
		if got := e.Status(); got != StatusCharged {
			t.Errorf("Status() = %q, want charged", got)
		}
	})

	t.Run("falls back to status", func(t *testing.T) {
		e := GatewayResponseEvent{Fields: map[string]string{"status": "failed"}}
		if got := e.Status(); got != StatusFailed {
			t.Errorf("Status() = %q, want failed", got)
		}
	})
}

func TestClassifyWebhookEvent(t *testing.T) {
	cases := []struct {
		raw  string
		want WebhookEventType
	}{
		{"success", WebhookEventSuccess},
		{"SUCCESS", WebhookEventSuccess},
		{"failed", WebhookEventFailed},
		{"pending", WebhookEventPending},
		{"refunded", WebhookEventRefunded},
		{"chargeback_opened", WebhookEventUnknown},
		{"", WebhookEventUnknown},
	}
	for _, c := range cases {
		if got := ClassifyWebhookEvent(c.raw); got != c.want {
			t.Errorf("ClassifyWebhookEvent(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}
