package hdfc

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"payment-gateway-service/internal/domain/ports/adapter"
)

var _ adapter.IDGenerator = (*IDGenerator)(nil)

// IDGenerator produces the order, customer and refund references the gateway
// contract expects. Time plus randomness gives practical uniqueness; the
// gateway's own order-already-exists error is the backstop for the negligible
// collision probability.
type IDGenerator struct {
	now  func() time.Time
	rand func(n int) int
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now, rand: rand.Intn}
}

// OrderID is "ORD" + millisecond timestamp + 3 random digits.
func (g *IDGenerator) OrderID() string {
	return fmt.Sprintf("ORD%d%03d", g.now().UnixMilli(), g.rand(1000))
}

// CustomerID is "CUST" + first 8 hex chars of md5(stable) + millisecond
// timestamp. MD5 is fine here: the output is a correlation identifier, never
// an authentication boundary.
func (g *IDGenerator) CustomerID(stable string) string {
	sum := md5.Sum([]byte(stable))
	return fmt.Sprintf("CUST%s%d", hex.EncodeToString(sum[:])[:8], g.now().UnixMilli())
}

// RefundRef is "REF" + millisecond timestamp + 3 random digits.
func (g *IDGenerator) RefundRef() string {
	return fmt.Sprintf("REF%d%03d", g.now().UnixMilli(), g.rand(1000))
}
