package port_transfer

import (
	"context"

	"github.com/shopspring/decimal"
)

type ExecuteTransferInput struct {
	AccountOriginID          string
	DestinationAccountNumber string
	Amount                   decimal.Decimal
	IdempotencyKey           string
	Token                    string
}

type ExecuteTransferOutput struct {
	TransferID   string
	MovementDate string
	Amount       string
	Replayed     bool
}

type ExecuteTransferUseCase interface {
	Execute(ctx context.Context, input ExecuteTransferInput) (ExecuteTransferOutput, error)
}
