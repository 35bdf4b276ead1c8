package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/repository"
)

var _ repository.TransactionTracker = (*transactionRepo)(nil)

type transactionRepo struct{ pool *pgxpool.Pool }

func NewTransactionRepo(pool *pgxpool.Pool) *transactionRepo {
	return &transactionRepo{pool: pool}
}

// Upsert converges webhook, browser-callback and reconciler writes onto one
// row per order. ON CONFLICT (order_id) makes redelivery and the
// webhook/callback race safe without any locking; last write wins, which is
// acceptable because the gateway never regresses a reported status.
func (r *transactionRepo) Upsert(ctx context.Context, t *model.TransactionRecord) error {
	const q = `
INSERT INTO transactions (
  order_id, transaction_id, status, raw_status, amount, payment_method, bank_ref_no, customer_id, customer_email, source, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW()
) ON CONFLICT (order_id) DO UPDATE SET
  transaction_id = COALESCE(NULLIF(EXCLUDED.transaction_id,''), transactions.transaction_id),
  status         = EXCLUDED.status,
  raw_status     = EXCLUDED.raw_status,
  amount         = COALESCE(NULLIF(EXCLUDED.amount,''), transactions.amount),
  payment_method = COALESCE(NULLIF(EXCLUDED.payment_method,''), transactions.payment_method),
  bank_ref_no    = COALESCE(NULLIF(EXCLUDED.bank_ref_no,''), transactions.bank_ref_no),
  source         = EXCLUDED.source,
  updated_at     = NOW();`

	_, err := r.pool.Exec(ctx, q,
		t.OrderID, t.TransactionID, t.Status, t.RawStatus, t.Amount,
		t.PaymentMethod, t.BankRefNo, t.CustomerID, t.CustomerEmail, t.Source)
	if err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *transactionRepo) FindByOrderID(ctx context.Context, orderID string) (*model.TransactionRecord, error) {
	const q = `SELECT order_id, transaction_id, status, raw_status, amount, payment_method, bank_ref_no, customer_id, customer_email, source, created_at, updated_at FROM transactions WHERE order_id=$1;`
	row := r.pool.QueryRow(ctx, q, orderID)

	t := &model.TransactionRecord{}
	if err := row.Scan(&t.OrderID, &t.TransactionID, &t.Status, &t.RawStatus, &t.Amount, &t.PaymentMethod, &t.BankRefNo, &t.CustomerID, &t.CustomerEmail, &t.Source, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return t, nil
}

func (r *transactionRepo) ListPendingOlderThan(ctx context.Context, olderThan time.Time, limit int) ([]*model.TransactionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT order_id, transaction_id, status, raw_status, amount, payment_method, bank_ref_no, customer_id, customer_email, source, created_at, updated_at FROM transactions WHERE status='pending' AND updated_at < $1 ORDER BY updated_at ASC LIMIT $2;`
	rows, err := r.pool.Query(ctx, q, olderThan, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.TransactionRecord
	for rows.Next() {
		t := new(model.TransactionRecord)
		if err := rows.Scan(&t.OrderID, &t.TransactionID, &t.Status, &t.RawStatus, &t.Amount, &t.PaymentMethod, &t.BankRefNo, &t.CustomerID, &t.CustomerEmail, &t.Source, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, t)
	}
	return out, nil
}
