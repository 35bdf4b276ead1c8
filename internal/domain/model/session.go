package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// PaymentSession is one checkout attempt. It is created exactly once and is
// immutable afterwards; OrderID is the join key for every later event,
// security log entry and refund.
type PaymentSession struct {
	OrderID       string
	Amount        float64
	CustomerID    string
	CustomerEmail string
	CustomerPhone string
	FirstName     string
	LastName      string
	Description   string
	ReturnURL     string
	CreatedAt     time.Time
}

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^(\+91[-\s]?)?[6-9]\d{9}$`)
)

// Validate checks the caller-supplied checkout fields before any gateway call.
func (s *PaymentSession) Validate() error {
	if s.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", s.Amount)
	}
	if !emailRe.MatchString(s.CustomerEmail) {
		return fmt.Errorf("invalid customer email %q", s.CustomerEmail)
	}
	if !phoneRe.MatchString(strings.TrimSpace(s.CustomerPhone)) {
		return fmt.Errorf("invalid customer phone %q", s.CustomerPhone)
	}
	if s.ReturnURL == "" {
		return fmt.Errorf("return_url is required")
	}
	return nil
}

// NormalizePhone rewrites an accepted Indian mobile number to "+91 XXXXXXXXXX".
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return "+91 " + digits
}

// FormatAmount serializes an amount with exactly two decimal places, the only
// shape the gateway accepts. Half-up rounding: 10.005 becomes "10.01" even
// though the nearest float64 sits just below the half cent.
func FormatAmount(amount float64) string {
	cents := math.Round((amount + 1e-9) * 100)
	return fmt.Sprintf("%.2f", cents/100)
}
