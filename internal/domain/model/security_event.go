package model

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Security event types recorded in the append-only audit log.
const (
	SecurityEventSignatureFailure = "signature_failure"
	SecurityEventStatusTransition = "status_transition"
	SecurityEventUnknownStatus    = "unknown_status"
	SecurityEventRefundRequested  = "refund_requested"
)

// SecurityEvent is an append-only audit record keyed by order id. Failures to
// persist one are swallowed by the audit sink, never propagated: payment
// control flow must not depend on audit logging succeeding.
type SecurityEvent struct {
	ID        string // ULID, time-ordered
	OrderID   string
	Type      string
	Severity  Severity
	Payload   map[string]interface{}
	CreatedAt time.Time
}
