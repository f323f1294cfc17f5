package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

const uniqueViolationCode = "23505"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Record(ctx context.Context, in RecordOrderInput) (*domain.Order, error) {
	const q = `
INSERT INTO orders (provider_session_id, amount_total, status)
VALUES ($1, $2, $3)
RETURNING id, created_at
`
	o := domain.Order{
		ProviderSessionID: in.ProviderSessionID,
		AmountTotal:       in.AmountTotal,
		Status:            in.Status,
	}
	err := r.pool.QueryRow(ctx, q, in.ProviderSessionID, in.AmountTotal, in.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrDuplicateOrder
		}
		r.logger.Printf("order repo: record session=%s error=%v", in.ProviderSessionID, err)
		return nil, err
	}
	r.logger.Printf("order repo: recorded id=%d session=%s", o.ID, o.ProviderSessionID)
	return &o, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id, provider_session_id, amount_total, status, created_at
FROM orders
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.ProviderSessionID, &o.AmountTotal, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
