package hdfc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
)

const testKey = "resp-key-123"

func signedFields(t *testing.T, fields map[string]string) map[string]string {
	t.Helper()
	out := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["signature"] = ComputeSignature(Canonicalize(fields), testKey)
	return out
}

func TestCanonicalize(t *testing.T) {
	t.Run("sorts keys byte-wise and joins with ampersand", func(t *testing.T) {
		got := Canonicalize(map[string]string{
			"order_id": "O1",
			"amount":   "10.00",
			"status":   "CHARGED",
		})
		want := url.QueryEscape("amount=10.00&order_id=O1&status=CHARGED")
		if got != want {
			t.Errorf("Canonicalize = %q, want %q", got, want)
		}
	})

	t.Run("excludes reserved keys", func(t *testing.T) {
		base := map[string]string{"order_id": "O1", "amount": "10.00"}
		withReserved := map[string]string{
			"order_id":            "O1",
			"amount":              "10.00",
			"signature":           "whatever",
			"signature_algorithm": "HMAC-SHA256",
		}
		if Canonicalize(base) != Canonicalize(withReserved) {
			t.Error("reserved keys leaked into the canonical string")
		}
	})

	t.Run("encodes the joined string as a single unit", func(t *testing.T) {
		got := Canonicalize(map[string]string{"a": "x y"})
		if got != url.QueryEscape("a=x y") {
			t.Errorf("Canonicalize = %q", got)
		}
	})
}

func TestVerifyRoundTrip(t *testing.T) {
	v, err := NewVerifier(testKey)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	payloads := []map[string]string{
		{"order_id": "O1", "order_status": "CHARGED", "transaction_id": "T1"},
		{"order_id": "O2", "status": "failed", "txn_id": "T2", "failure_reason": "insufficient funds"},
		{"order_id": "O3", "amount": "10.00", "payment_method": "UPI", "bank_ref_no": "BR9"},
	}
	for _, p := range payloads {
		if !v.Verify(signedFields(t, p)) {
			t.Errorf("round-trip verify failed for %v", p)
		}
	}
}

func TestVerifyTamperDetection(t *testing.T) {
	v, _ := NewVerifier(testKey)
	fields := signedFields(t, map[string]string{
		"order_id":       "O1",
		"order_status":   "CHARGED",
		"transaction_id": "T1",
		"amount":         "100.00",
	})

	for key := range fields {
		if key == "signature" {
			continue
		}
		t.Run("mutating "+key, func(t *testing.T) {
			tampered := make(map[string]string, len(fields))
			for k, val := range fields {
				tampered[k] = val
			}
			tampered[key] = tampered[key] + "x"
			if v.Verify(tampered) {
				t.Errorf("tampered %s accepted", key)
			}
		})
	}
}

func TestVerifyAcceptsDecodedSignature(t *testing.T) {
	v, _ := NewVerifier(testKey)
	fields := map[string]string{"order_id": "O1", "order_status": "CHARGED"}
	encoded := ComputeSignature(Canonicalize(fields), testKey)
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("unescape: %v", err)
	}

	t.Run("encoded form", func(t *testing.T) {
		fields["signature"] = encoded
		if !v.Verify(fields) {
			t.Error("encoded signature rejected")
		}
	})

	t.Run("decoded form", func(t *testing.T) {
		fields["signature"] = decoded
		if !v.Verify(fields) {
			t.Error("decoded signature rejected")
		}
	})
}

// Base64 uses '+' in its alphabet, so roughly half of all digests contain
// one. A raw (already decoded) signature with a '+' must not be fed back
// through percent-decoding, which would turn the '+' into a space.
func TestVerifyAcceptsDecodedSignatureWithPlus(t *testing.T) {
	v, _ := NewVerifier(testKey)
	fields := map[string]string{
		"order_id":       "ORD1",
		"order_status":   "CHARGED",
		"transaction_id": "txn-1",
	}

	mac := hmac.New(sha256.New, []byte(testKey))
	mac.Write([]byte(Canonicalize(fields)))
	rawB64 := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !strings.Contains(rawB64, "+") {
		t.Fatalf("fixture digest %q lost its '+', pick a different field set", rawB64)
	}

	t.Run("raw base64", func(t *testing.T) {
		fields["signature"] = rawB64
		if !v.Verify(fields) {
			t.Errorf("raw base64 signature %q rejected", rawB64)
		}
	})

	t.Run("encoded form", func(t *testing.T) {
		fields["signature"] = url.QueryEscape(rawB64)
		if !v.Verify(fields) {
			t.Error("encoded signature rejected")
		}
	})

	t.Run("tampered raw form still rejected", func(t *testing.T) {
		fields["signature"] = rawB64
		fields["order_status"] = "FAILED"
		if v.Verify(fields) {
			t.Error("tampered payload accepted")
		}
	})
}

func TestVerifyRejects(t *testing.T) {
	v, _ := NewVerifier(testKey)

	t.Run("missing signature", func(t *testing.T) {
		if v.Verify(map[string]string{"order_id": "O1"}) {
			t.Error("accepted payload without signature")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other, _ := NewVerifier("different-key")
		fields := signedFields(t, map[string]string{"order_id": "O1"})
		if other.Verify(fields) {
			t.Error("accepted signature from a different key")
		}
	})
}

func TestNewVerifierRequiresKey(t *testing.T) {
	if _, err := NewVerifier(""); err == nil {
		t.Fatal("expected an error for empty response key")
	}
}
