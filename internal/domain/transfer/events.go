package domain_transfer

import (
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

type TransferCompleted struct {
	At         time.Time `json:"at"`
	TransferID uuid.UUID `json:"transfer_id"`

	AccountOriginID      string `json:"account_origin_id"`
	AccountDestinationID string `json:"account_destination_id"`
	Amount               string `json:"amount"`
	MovementDate         string `json:"movement_date"`
	IdempotencyKey       string `json:"idempotency_key"`
}

func (e TransferCompleted) EventName() string { return "transfer.completed" }

func (e TransferCompleted) OccurredAt() time.Time { return e.At }

func (e TransferCompleted) AggregateID() string { return e.TransferID.String() }

type TransferFailed struct {
	At             time.Time `json:"at"`
	IdempotencyKey string    `json:"idempotency_key"`

	Stage   Stage  `json:"stage"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e TransferFailed) EventName() string { return "transfer.failed" }

func (e TransferFailed) OccurredAt() time.Time { return e.At }

func (e TransferFailed) AggregateID() string { return e.IdempotencyKey }
