package port_persistence

import (
	"context"
	"errors"

	domain_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/domain/transfer"
)

var (
	ErrNotFound              = errors.New("persistence: not found")
	ErrIdempotencyKeyMissing = errors.New("persistence: idempotency key missing or already finalized")
)

// TransferRepository is the append-only log of completed transfers. Create is
// only ever called on the success path, inside the same unit of work that
// finalizes the idempotency record.
type TransferRepository interface {
	Create(ctx context.Context, t *domain_transfer.TransferRecord) error
	GetByID(ctx context.Context, transferID string) (*domain_transfer.TransferRecord, error)
}
