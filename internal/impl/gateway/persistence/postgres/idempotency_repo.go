package impl_postgres

import (
	"context"
	"errors"
	"fmt"

	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

// BeginIfAbsent relies on the primary-key conflict clause so the insert is a
// single atomic operation, never a check-then-insert race.
func (r *IdempotencyRepository) BeginIfAbsent(ctx context.Context, key string, request []byte) (bool, error) {
	tag, err := querierFrom(ctx, r.pool).Exec(ctx, `
		INSERT INTO idempotency_keys (key, request)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`,
		key, string(request))
	if err != nil {
		return false, fmt.Errorf("postgres: begin idempotency key: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Finalize(ctx context.Context, key string, result []byte) error {
	return r.setResult(ctx, key, result)
}

func (r *IdempotencyRepository) SetErrorResult(ctx context.Context, key string, result []byte) error {
	return r.setResult(ctx, key, result)
}

// setResult transitions a key from null result to terminal result exactly
// once; the guard on result IS NULL keeps a terminal outcome immutable.
func (r *IdempotencyRepository) setResult(ctx context.Context, key string, result []byte) error {
	tag, err := querierFrom(ctx, r.pool).Exec(ctx, `
		UPDATE idempotency_keys
		SET result = $2, updated_at = now()
		WHERE key = $1 AND result IS NULL`,
		key, string(result))
	if err != nil {
		return fmt.Errorf("postgres: set idempotency result: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return port_persistence.ErrIdempotencyKeyMissing
	}

	return nil
}

func (r *IdempotencyRepository) GetResult(ctx context.Context, key string) ([]byte, error) {
	var result *string

	err := querierFrom(ctx, r.pool).QueryRow(ctx,
		`SELECT result FROM idempotency_keys WHERE key = $1`, key).Scan(&result)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port_persistence.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get idempotency result: %w", err)
	}

	if result == nil {
		return nil, nil
	}

	return []byte(*result), nil
}
