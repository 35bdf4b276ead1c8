package hdfc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"sort"
	"strings"

	"payment-gateway-service/internal/domain/ports/adapter"
)

// Keys excluded from the canonical string before signing.
var reservedKeys = map[string]struct{}{
	"signature":           {},
	"signature_algorithm": {},
}

// Canonicalize produces the exact byte string that gets signed: reserved keys
// removed, remaining keys sorted byte-wise ascending, joined as key=value
// pairs with '&', then the whole joined string percent-encoded as one unit.
// Values are used exactly as received. The sort is explicit; map iteration
// order must never leak into the result.
func Canonicalize(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, reserved := reservedKeys[k]; reserved {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	return url.QueryEscape(b.String())
}

// ComputeSignature is HMAC-SHA256 over the canonical string, base64 encoded,
// then percent-encoded. This is the value the gateway compares against.
func ComputeSignature(canonical, responseKey string) string {
	mac := hmac.New(sha256.New, []byte(responseKey))
	mac.Write([]byte(canonical))
	return url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}

var _ adapter.SignatureVerifier = (*Verifier)(nil)

// Verifier validates gateway response signatures with the shared response key.
type Verifier struct {
	responseKey string
}

// NewVerifier fails fast on a missing key: a verifier must never silently
// degrade into accepting unsigned responses.
func NewVerifier(responseKey string) (*Verifier, error) {
	if responseKey == "" {
		return nil, errors.New("response key is required")
	}
	return &Verifier{responseKey: responseKey}, nil
}

// Verify canonicalizes fields and compares the expected signature against the
// received one. The webhook and browser paths have been observed to deliver
// the signature either percent-encoded or already decoded, so both forms are
// accepted; this double check is a compatibility shim and both branches stay
// until the upstream encoding contract is confirmed against live traffic.
// A mismatch is a boolean false, not an error.
func (v *Verifier) Verify(fields map[string]string) bool {
	received := fields["signature"]
	if received == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.responseKey))
	mac.Write([]byte(Canonicalize(fields)))
	expectedB64 := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	expectedEncoded := url.QueryEscape(expectedB64)

	if hmac.Equal([]byte(received), []byte(expectedEncoded)) {
		return true
	}
	// Raw base64 must be compared directly: running it through QueryUnescape
	// would turn any '+' in the digest into a space and reject it.
	if hmac.Equal([]byte(received), []byte(expectedB64)) {
		return true
	}
	if decoded, err := url.QueryUnescape(received); err == nil {
		return hmac.Equal([]byte(decoded), []byte(expectedB64))
	}
	return false
}
