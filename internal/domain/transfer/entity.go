package domain_transfer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementDateLayout is the textual calendar-date format persisted with each
// transfer, kept compatible with the external day/month/year schema.
const MovementDateLayout = "02/01/2006"

// TransferRecord is one immutable row in the append-only log of completed
// transfers. It exists only after both remote legs succeeded.
type TransferRecord struct {
	id uuid.UUID

	accountOriginID      string
	accountDestinationID string
	amount               decimal.Decimal
	movementDate         string

	createdAt time.Time

	pendingEvents []DomainEvent
}

type NewParams struct {
	TransferID           uuid.UUID
	AccountOriginID      string
	AccountDestinationID string
	Amount               decimal.Decimal
	IdempotencyKey       string
	Now                  time.Time
}

func New(p NewParams) (*TransferRecord, error) {
	if p.TransferID == uuid.Nil {
		return nil, ErrInvalidTransferID
	}

	origin := strings.TrimSpace(p.AccountOriginID)
	if origin == "" {
		return nil, ErrInvalidOriginAccount
	}

	destination := strings.TrimSpace(p.AccountDestinationID)
	if destination == "" {
		return nil, ErrInvalidDestinationAccount
	}

	if !p.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	t := &TransferRecord{
		id:                   p.TransferID,
		accountOriginID:      origin,
		accountDestinationID: destination,
		amount:               p.Amount.Round(2),
		movementDate:         p.Now.UTC().Format(MovementDateLayout),
		createdAt:            p.Now,
	}

	t.raise(TransferCompleted{
		At:                   p.Now,
		TransferID:           t.id,
		AccountOriginID:      t.accountOriginID,
		AccountDestinationID: t.accountDestinationID,
		Amount:               t.amount.StringFixed(2),
		MovementDate:         t.movementDate,
		IdempotencyKey:       p.IdempotencyKey,
	})

	return t, nil
}

// Restore rebuilds a record loaded from storage without raising events.
func Restore(id uuid.UUID, originID, destinationID string, amount decimal.Decimal, movementDate string, createdAt time.Time) *TransferRecord {
	return &TransferRecord{
		id:                   id,
		accountOriginID:      originID,
		accountDestinationID: destinationID,
		amount:               amount,
		movementDate:         movementDate,
		createdAt:            createdAt,
	}
}

func (t *TransferRecord) PullEvents() []DomainEvent {
	if len(t.pendingEvents) == 0 {
		return nil
	}

	ev := make([]DomainEvent, len(t.pendingEvents))
	copy(ev, t.pendingEvents)

	t.pendingEvents = t.pendingEvents[:0]

	return ev
}

func (t *TransferRecord) raise(event DomainEvent) {
	t.pendingEvents = append(t.pendingEvents, event)
}

func (t *TransferRecord) ID() uuid.UUID { return t.id }

func (t *TransferRecord) AccountOriginID() string { return t.accountOriginID }

func (t *TransferRecord) AccountDestinationID() string { return t.accountDestinationID }

func (t *TransferRecord) Amount() decimal.Decimal { return t.amount }

func (t *TransferRecord) MovementDate() string { return t.movementDate }

func (t *TransferRecord) CreatedAt() time.Time { return t.createdAt }
