package model

import "time"

// TransactionRecord is the tracker's view of one order. There is at most one
// row per order id; webhook, browser callback and reconciler all converge on
// it through an order_id keyed upsert, so concurrent writers are safe without
// any distributed locking. Last-write-wins is acceptable because the gateway
// never regresses a reported status.
type TransactionRecord struct {
	OrderID       string
	TransactionID string
	Status        NormalizedStatus
	RawStatus     string
	Amount        string
	PaymentMethod string
	BankRefNo     string
	CustomerID    string
	CustomerEmail string
	Source        string // session | webhook | callback | refund | reconciler
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderStatus is the authoritative shape returned by the status endpoint.
// Field naming here follows the upstream order-status documentation
// (order_status, transaction_id) and is distinct from the webhook/callback
// raw input schema; consumers must not assume the alias rules apply.
type OrderStatus struct {
	OrderID       string
	Status        NormalizedStatus
	RawStatus     string
	StatusID      int
	TransactionID string
	Amount        string
	PaymentMethod string
	BankRefNo     string
	CustomerID    string
	MerchantID    string
	Currency      string
	CreatedAt     string
	UpdatedAt     string
	Gateway       GatewayDetail
}

// GatewayDetail carries the acquirer-level fields nested under
// gateway_response in the status payload.
type GatewayDetail struct {
	GatewayTransactionID string
	AuthCode             string
	RRN                  string
}
