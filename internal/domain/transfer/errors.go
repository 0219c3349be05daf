package domain_transfer

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidAccount Kind = "INVALID_ACCOUNT"
	KindInvalidValue   Kind = "INVALID_VALUE"
	KindTransferFailed Kind = "TRANSFER_FAILED"
)

// Error is a terminal business failure of a transfer attempt. Kind is one of
// the local constants or a kind forwarded verbatim from the ledger service.
// StatusCode carries the remote transport status when the failure originated
// on the ledger side; it is zero for locally raised errors.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("transfer: %s: %s", e.Kind, e.Message)
}

// IsAuth reports whether the failure is authentication-class, never to be
// conflated with a business-rule failure by the request boundary.
func (e *Error) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

var (
	ErrInvalidTransferID         = errors.New("transfer: invalid transfer_id")
	ErrInvalidOriginAccount      = errors.New("transfer: account_origin_id is required")
	ErrInvalidDestinationAccount = errors.New("transfer: account_destination_id is required")
	ErrInvalidAmount             = errors.New("transfer: amount must be > 0")
)
