package port_ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Client translates orchestrator intents into remote calls against the ledger
// service, forwarding the caller's credential. The account affected by Debit
// and Reverse is the one the token authenticates; Credit targets the resolved
// destination account number. Reverse is implemented by the ledger as a credit
// back to the origin account.
type Client interface {
	Debit(ctx context.Context, token, idempotencyKey string, amount decimal.Decimal) error
	Credit(ctx context.Context, token, idempotencyKey string, destinationAccountNumber int64, amount decimal.Decimal) error
	Reverse(ctx context.Context, token, idempotencyKey string, amount decimal.Decimal) error
}

// RemoteError is any non-success ledger response normalized into a structured
// failure. Kind is empty when the remote error body did not carry one.
type RemoteError struct {
	Message    string
	Kind       string
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ledger: status %d: %s", e.StatusCode, e.Message)
}

// IsAuth reports whether the remote status is in the authentication-failure
// range, which the boundary maps to an authorization-denied response.
func (e *RemoteError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
