package domain_transfer

import (
	"encoding/json"
	"fmt"
)

type OutcomeStatus string

const (
	OutcomeStatusSuccess OutcomeStatus = "SUCCESS"
	OutcomeStatusError   OutcomeStatus = "ERROR"
)

// Outcome is the terminal result snapshot stored against an idempotency key.
// Once written it is immutable and authoritative for every replay of the key.
type Outcome struct {
	Status   OutcomeStatus    `json:"status"`
	Transfer *OutcomeTransfer `json:"transfer,omitempty"`
	Error    *OutcomeError    `json:"error,omitempty"`
}

type OutcomeTransfer struct {
	TransferID           string `json:"transfer_id"`
	AccountOriginID      string `json:"account_origin_id"`
	AccountDestinationID string `json:"account_destination_id"`
	MovementDate         string `json:"movement_date"`
	Amount               string `json:"amount"`
}

type OutcomeError struct {
	Message    string `json:"message"`
	Kind       Kind   `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
}

func SuccessOutcome(t *TransferRecord) *Outcome {
	return &Outcome{
		Status: OutcomeStatusSuccess,
		Transfer: &OutcomeTransfer{
			TransferID:           t.ID().String(),
			AccountOriginID:      t.AccountOriginID(),
			AccountDestinationID: t.AccountDestinationID(),
			MovementDate:         t.MovementDate(),
			Amount:               t.Amount().StringFixed(2),
		},
	}
}

func ErrorOutcome(message string, kind Kind, statusCode int) *Outcome {
	return &Outcome{
		Status: OutcomeStatusError,
		Error: &OutcomeError{
			Message:    message,
			Kind:       kind,
			StatusCode: statusCode,
		},
	}
}

func (o *Outcome) IsSuccess() bool {
	return o.Status == OutcomeStatusSuccess
}

// Err rebuilds the transfer-level error carried by a stored error outcome so a
// replay re-raises the same kind and message as the first attempt.
func (o *Outcome) Err() *Error {
	if o.Error == nil {
		return NewError(KindTransferFailed, "stored outcome has no error payload")
	}

	return &Error{
		Kind:       o.Error.Kind,
		Message:    o.Error.Message,
		StatusCode: o.Error.StatusCode,
	}
}

func (o *Outcome) Marshal() ([]byte, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("transfer: marshal outcome: %w", err)
	}
	return b, nil
}

func UnmarshalOutcome(raw []byte) (*Outcome, error) {
	var o Outcome
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("transfer: unmarshal outcome: %w", err)
	}
	return &o, nil
}
