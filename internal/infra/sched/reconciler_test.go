package sched

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type fakeTracker struct {
	mu      sync.Mutex
	pending []*model.TransactionRecord
	upserts []*model.TransactionRecord
	listErr error
}

func (f *fakeTracker) Upsert(ctx context.Context, t *model.TransactionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.upserts = append(f.upserts, &cp)
	return nil
}

func (f *fakeTracker) FindByOrderID(ctx context.Context, orderID string) (*model.TransactionRecord, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeTracker) ListPendingOlderThan(ctx context.Context, olderThan time.Time, limit int) ([]*model.TransactionRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.pending, nil
}

type fakeStatusGW struct {
	byOrder map[string]*model.OrderStatus
	errs    map[string]error
}

func (f *fakeStatusGW) GetStatus(ctx context.Context, orderID string) (*model.OrderStatus, error) {
	if err, ok := f.errs[orderID]; ok {
		return nil, err
	}
	return f.byOrder[orderID], nil
}

func pendingRecord(orderID string, age time.Duration) *model.TransactionRecord {
	return &model.TransactionRecord{
		OrderID:   orderID,
		Status:    model.StatusPending,
		RawStatus: "PENDING",
		UpdatedAt: time.Now().Add(-age),
	}
}

func TestReconcilerTick_FinalizesStalePending(t *testing.T) {
	tracker := &fakeTracker{pending: []*model.TransactionRecord{pendingRecord("ORD1", time.Hour)}}
	gw := &fakeStatusGW{byOrder: map[string]*model.OrderStatus{
		"ORD1": {OrderID: "ORD1", Status: model.StatusCharged, RawStatus: "CHARGED", TransactionID: "txn-1"},
	}}
	w := NewStatusReconciler(tracker, gw, time.Minute, 10*time.Minute, newTestLogger())

	w.tick(context.Background())

	if len(tracker.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(tracker.upserts))
	}
	got := tracker.upserts[0]
	if got.Status != model.StatusCharged || got.TransactionID != "txn-1" || got.Source != "reconciler" {
		t.Errorf("upserted record = %+v", got)
	}
}

func TestReconcilerTick_SkipsUnchangedStatus(t *testing.T) {
	tracker := &fakeTracker{pending: []*model.TransactionRecord{pendingRecord("ORD2", time.Hour)}}
	gw := &fakeStatusGW{byOrder: map[string]*model.OrderStatus{
		"ORD2": {OrderID: "ORD2", Status: model.StatusPending, RawStatus: "PENDING"},
	}}
	w := NewStatusReconciler(tracker, gw, time.Minute, 10*time.Minute, newTestLogger())

	w.tick(context.Background())

	if len(tracker.upserts) != 0 {
		t.Errorf("upserts = %d, want 0 for unchanged status", len(tracker.upserts))
	}
}

func TestReconcilerTick_PollFailureSkipsOrder(t *testing.T) {
	tracker := &fakeTracker{pending: []*model.TransactionRecord{
		pendingRecord("ORD3", time.Hour),
		pendingRecord("ORD4", time.Hour),
	}}
	gw := &fakeStatusGW{
		byOrder: map[string]*model.OrderStatus{
			"ORD4": {OrderID: "ORD4", Status: model.StatusFailed, RawStatus: "FAILED"},
		},
		errs: map[string]error{"ORD3": errors.New("gateway timeout")},
	}
	w := NewStatusReconciler(tracker, gw, time.Minute, 10*time.Minute, newTestLogger())

	w.tick(context.Background())

	// ORD3's poll failed; ORD4 must still be finalized.
	if len(tracker.upserts) != 1 || tracker.upserts[0].OrderID != "ORD4" {
		t.Errorf("upserts = %+v, want only ORD4", tracker.upserts)
	}
}

func TestReconcilerTick_ListFailure(t *testing.T) {
	tracker := &fakeTracker{listErr: errors.New("db unavailable")}
	w := NewStatusReconciler(tracker, &fakeStatusGW{}, time.Minute, 10*time.Minute, newTestLogger())

	w.tick(context.Background())

	if len(tracker.upserts) != 0 {
		t.Errorf("upserts = %d, want 0", len(tracker.upserts))
	}
}

func TestNewStatusReconciler_Defaults(t *testing.T) {
	w := NewStatusReconciler(&fakeTracker{}, &fakeStatusGW{}, 0, 0, newTestLogger())
	if w.interval != time.Minute {
		t.Errorf("interval = %v, want 1m default", w.interval)
	}
	if w.staleAfter != 10*time.Minute {
		t.Errorf("staleAfter = %v, want 10m default", w.staleAfter)
	}
}
