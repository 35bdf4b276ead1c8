package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memTracker is a small in-memory TransactionTracker used by unit tests.
type memTracker struct {
	mu        sync.Mutex
	store     map[string]*model.TransactionRecord
	upsertErr error // simulate a failing audit sink
	upserts   int
}

func newMemTracker() *memTracker {
	return &memTracker{store: make(map[string]*model.TransactionRecord)}
}

func (m *memTracker) Upsert(ctx context.Context, t *model.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	cp := *t
	if prev, ok := m.store[t.OrderID]; ok {
		cp.CreatedAt = prev.CreatedAt
		if cp.TransactionID == "" {
			cp.TransactionID = prev.TransactionID
		}
		if cp.Amount == "" {
			cp.Amount = prev.Amount
		}
	} else {
		cp.CreatedAt = time.Now()
	}
	cp.UpdatedAt = time.Now()
	m.store[t.OrderID] = &cp
	return nil
}

func (m *memTracker) FindByOrderID(ctx context.Context, orderID string) (*model.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTracker) ListPendingOlderThan(ctx context.Context, olderThan time.Time, limit int) ([]*model.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.TransactionRecord
	for _, t := range m.store {
		if t.Status == model.StatusPending && t.UpdatedAt.Before(olderThan) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memEvents is an in-memory SecurityEventRepository.
type memEvents struct {
	mu        sync.Mutex
	events    []*model.SecurityEvent
	appendErr error
}

func newMemEvents() *memEvents { return &memEvents{} }

func (m *memEvents) Append(ctx context.Context, ev *model.SecurityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *memEvents) byType(eventType string) []*model.SecurityEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.SecurityEvent
	for _, ev := range m.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// stubVerifier lets tests force the signature outcome.
type stubVerifier struct {
	ok bool
}

func (s *stubVerifier) Verify(map[string]string) bool { return s.ok }

// stubSessionGW mocks the session gateway.
type stubSessionGW struct {
	CreateSessionFunc func(ctx context.Context, s *model.PaymentSession) (*adapter.SessionResult, error)
	lastSession       *model.PaymentSession
}

func (g *stubSessionGW) CreateSession(ctx context.Context, s *model.PaymentSession) (*adapter.SessionResult, error) {
	g.lastSession = s
	if g.CreateSessionFunc != nil {
		return g.CreateSessionFunc(ctx, s)
	}
	return &adapter.SessionResult{OrderID: s.OrderID, SessionID: "sess-1", RedirectURL: "https://gw/pay/sess-1"}, nil
}

// stubStatusGW mocks the status gateway.
type stubStatusGW struct {
	GetStatusFunc func(ctx context.Context, orderID string) (*model.OrderStatus, error)
}

func (g *stubStatusGW) GetStatus(ctx context.Context, orderID string) (*model.OrderStatus, error) {
	return g.GetStatusFunc(ctx, orderID)
}

// stubRefundGW mocks the refund gateway.
type stubRefundGW struct {
	RefundFunc func(ctx context.Context, req *model.RefundRequest) (*model.RefundResult, error)
}

func (g *stubRefundGW) Refund(ctx context.Context, req *model.RefundRequest) (*model.RefundResult, error) {
	if g.RefundFunc != nil {
		return g.RefundFunc(ctx, req)
	}
	return &model.RefundResult{OrderID: req.OrderID, RefundRefNo: req.RefundRefNo, Status: "success", Amount: model.FormatAmount(req.Amount)}, nil
}

// stubNotifier records notifications.
type stubNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (n *stubNotifier) Notify(ctx context.Context, orderID string, outcome model.NormalizedStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, orderID+":"+string(outcome))
	return n.err
}

// memDedupe is an in-memory DedupeCache.
type memDedupe struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newMemDedupe() *memDedupe { return &memDedupe{seen: make(map[string]bool)} }

func (d *memDedupe) MarkSeen(ctx context.Context, orderID, eventType string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	key := orderID + ":" + eventType
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

// fixedIDs makes generated identifiers predictable.
type fixedIDs struct {
	order  string
	cust   string
	refund string
}

func (f *fixedIDs) OrderID() string            { return f.order }
func (f *fixedIDs) CustomerID(s string) string { return f.cust }
func (f *fixedIDs) RefundRef() string          { return f.refund }
