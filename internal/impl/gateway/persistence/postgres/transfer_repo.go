package impl_postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransferRepository struct {
	pool *pgxpool.Pool
}

func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

func (r *TransferRepository) Create(ctx context.Context, t *domain_transfer.TransferRecord) error {
	_, err := querierFrom(ctx, r.pool).Exec(ctx, `
		INSERT INTO transfers (id, account_origin_id, account_destination_id, movement_date, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID(),
		t.AccountOriginID(),
		t.AccountDestinationID(),
		t.MovementDate(),
		t.Amount().StringFixed(2),
		t.CreatedAt())
	if err != nil {
		return fmt.Errorf("postgres: create transfer: %w", err)
	}

	return nil
}

func (r *TransferRepository) GetByID(ctx context.Context, transferID string) (*domain_transfer.TransferRecord, error) {
	id, err := uuid.Parse(transferID)
	if err != nil {
		return nil, port_persistence.ErrNotFound
	}

	var (
		originID      string
		destinationID string
		movementDate  string
		amount        string
		createdAt     time.Time
	)

	err = querierFrom(ctx, r.pool).QueryRow(ctx, `
		SELECT account_origin_id, account_destination_id, movement_date, amount, created_at
		FROM transfers
		WHERE id = $1`, id).
		Scan(&originID, &destinationID, &movementDate, &amount, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port_persistence.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get transfer: %w", err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("postgres: decode transfer amount: %w", err)
	}

	return domain_transfer.Restore(id, originID, destinationID, value, movementDate, createdAt), nil
}
