package model

import "time"

// RefundRequest is one refund attempt against a charged order.
type RefundRequest struct {
	OrderID     string
	Amount      float64
	Note        string
	RefundRefNo string // generated, prefixed REF
}

// RefundResult surfaces the gateway's refund status verbatim
// (success | failed | pending).
type RefundResult struct {
	OrderID     string
	RefundRefNo string
	Status      string
	Amount      string
	CreatedAt   time.Time
}
