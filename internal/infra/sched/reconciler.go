package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"payment-gateway-service/internal/domain/ports/adapter"
	"payment-gateway-service/internal/domain/ports/repository"
	"payment-gateway-service/internal/infra/metrics"
)

// StatusReconciler periodically scans for stale pending transactions and
// polls the authoritative status endpoint to finalize them. This covers
// orders whose webhook and browser callback both got lost, and any crash
// mid-processing.
type StatusReconciler struct {
	tracker    repository.TransactionTracker
	status     adapter.StatusGateway
	interval   time.Duration // how often to scan
	staleAfter time.Duration // how old a pending record must be to poll
	logger     *zerolog.Logger
}

func NewStatusReconciler(tracker repository.TransactionTracker, status adapter.StatusGateway, interval, staleAfter time.Duration, logger *zerolog.Logger) *StatusReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &StatusReconciler{tracker: tracker, status: status, interval: interval, staleAfter: staleAfter, logger: logger}
}

func (w *StatusReconciler) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *StatusReconciler) tick(ctx context.Context) {
	cutoff := time.Now().Add(-w.staleAfter)
	pending, err := w.tracker.ListPendingOlderThan(ctx, cutoff, 200)
	if err != nil {
		w.logger.Error().Err(err).Msg("reconciler: list pending failed")
		return
	}
	for _, rec := range pending {
		os, err := w.status.GetStatus(ctx, rec.OrderID)
		if err != nil {
			w.logger.Warn().Err(err).Str("order_id", rec.OrderID).Msg("reconciler: status poll failed")
			continue
		}
		if os.Status == rec.Status {
			continue
		}
		rec.Status = os.Status
		rec.RawStatus = os.RawStatus
		if os.TransactionID != "" {
			rec.TransactionID = os.TransactionID
		}
		rec.Source = "reconciler"
		if err := w.tracker.Upsert(ctx, rec); err != nil {
			w.logger.Warn().Err(err).Str("order_id", rec.OrderID).Msg("reconciler: upsert failed")
			continue
		}
		metrics.IncPayment(string(os.Status), "reconciler")
		w.logger.Info().
			Str("order_id", rec.OrderID).
			Str("status", string(os.Status)).
			Msg("reconciler: order finalized")
	}
}
