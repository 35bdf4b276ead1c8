package model

import "strings"

// NormalizedStatus is the single status vocabulary used internally, regardless
// of which raw token the gateway sent on a given path.
type NormalizedStatus string

const (
	StatusCharged   NormalizedStatus = "charged"
	StatusFailed    NormalizedStatus = "failed"
	StatusPending   NormalizedStatus = "pending"
	StatusDeclined  NormalizedStatus = "declined"
	StatusCancelled NormalizedStatus = "cancelled"
	StatusRefunded  NormalizedStatus = "refunded"
	StatusUnknown   NormalizedStatus = "unknown"
)

var statusTable = map[string]NormalizedStatus{
	"charged":   StatusCharged,
	"failed":    StatusFailed,
	"failure":   StatusFailed,
	"pending":   StatusPending,
	"declined":  StatusDeclined,
	"cancelled": StatusCancelled,
	"refunded":  StatusRefunded,
}

// NormalizeStatus lower-cases the raw token and maps it through a fixed table.
// Anything unrecognized maps to StatusUnknown; it never fails. Mapping must be
// case-insensitive because internally generated uppercase tokens occasionally
// get re-fed into it.
func NormalizeStatus(raw string) NormalizedStatus {
	if s, ok := statusTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// Terminal reports whether no further transition is expected for s.
func (s NormalizedStatus) Terminal() bool {
	switch s {
	case StatusCharged, StatusFailed, StatusDeclined, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}
