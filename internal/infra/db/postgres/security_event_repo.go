package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"payment-gateway-service/internal/domain"
	"payment-gateway-service/internal/domain/model"
	"payment-gateway-service/internal/domain/ports/repository"
)

var _ repository.SecurityEventRepository = (*securityEventRepo)(nil)

type securityEventRepo struct{ pool *pgxpool.Pool }

func NewSecurityEventRepo(pool *pgxpool.Pool) *securityEventRepo {
	return &securityEventRepo{pool: pool}
}

// Append writes one audit record. The table is append-only; there is no
// update path. Callers reach this only through the audit sink, which swallows
// any error returned here.
func (r *securityEventRepo) Append(ctx context.Context, ev *model.SecurityEvent) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return domain.ErrInvalidArgument
	}
	const q = `
INSERT INTO security_events (id, order_id, event_type, severity, payload, created_at)
VALUES ($1,$2,$3,$4,$5,NOW());`
	if _, err := r.pool.Exec(ctx, q, ev.ID, ev.OrderID, ev.Type, ev.Severity, payload); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateDelivery
		}
		return domain.ErrOperationFailed
	}
	return nil
}
