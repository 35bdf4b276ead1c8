package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrMissingOrderID    = errors.New("response carries no order_id")
	ErrSignatureMismatch = errors.New("response signature mismatch")
	ErrNoRedirectTarget  = errors.New("session response carries no redirect target")
	ErrOperationFailed   = errors.New("operation failed")
	ErrReadDatabaseRow   = errors.New("failed to read database row")
	ErrDuplicateDelivery = errors.New("event already processed")
)

// UpstreamError preserves the gateway's HTTP status and verbatim response body
// so operators can diagnose failures without replaying traffic. It is never
// converted into a default value.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gateway %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsUpstream reports whether err wraps an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
