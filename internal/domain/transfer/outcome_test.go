package domain_transfer_test

import (
	"testing"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/domain/transfer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestOutcomeRoundTrip(t *testing.T) {
	t.Run("success outcome carries the transfer payload", func(t *testing.T) {
		record, err := domain_transfer.New(domain_transfer.NewParams{
			TransferID:           uuid.New(),
			AccountOriginID:      "acc-1",
			AccountDestinationID: "100001",
			Amount:               decimal.RequireFromString("25.50"),
			IdempotencyKey:       "idem-1",
			Now:                  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		raw, err := domain_transfer.SuccessOutcome(record).Marshal()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		outcome, err := domain_transfer.UnmarshalOutcome(raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !outcome.IsSuccess() {
			t.Fatal("expected success outcome")
		}
		if outcome.Transfer == nil {
			t.Fatal("expected transfer payload")
		}
		if outcome.Transfer.TransferID != record.ID().String() {
			t.Errorf("expected transfer id %s, got %s", record.ID(), outcome.Transfer.TransferID)
		}
		if outcome.Transfer.Amount != "25.50" {
			t.Errorf("expected amount 25.50, got %s", outcome.Transfer.Amount)
		}
		if outcome.Transfer.MovementDate != "31/08/2026" {
			t.Errorf("expected movement date 31/08/2026, got %s", outcome.Transfer.MovementDate)
		}
	})

	t.Run("error outcome re-raises the same kind and message", func(t *testing.T) {
		raw, err := domain_transfer.ErrorOutcome("account does not exist", domain_transfer.KindInvalidAccount, 422).Marshal()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		outcome, err := domain_transfer.UnmarshalOutcome(raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if outcome.IsSuccess() {
			t.Fatal("expected error outcome")
		}

		terr := outcome.Err()
		if terr.Kind != domain_transfer.KindInvalidAccount {
			t.Errorf("expected INVALID_ACCOUNT, got %s", terr.Kind)
		}
		if terr.Message != "account does not exist" {
			t.Errorf("expected stored message, got %q", terr.Message)
		}
		if terr.StatusCode != 422 {
			t.Errorf("expected status 422, got %d", terr.StatusCode)
		}
	})

	t.Run("authentication status codes are classified", func(t *testing.T) {
		terr := domain_transfer.ErrorOutcome("credential expired", domain_transfer.KindTransferFailed, 401).Err()
		if !terr.IsAuth() {
			t.Error("expected 401 to be authentication-class")
		}

		terr = domain_transfer.ErrorOutcome("account does not exist", domain_transfer.KindInvalidAccount, 422).Err()
		if terr.IsAuth() {
			t.Error("expected 422 not to be authentication-class")
		}
	})

	t.Run("malformed snapshot fails to decode", func(t *testing.T) {
		if _, err := domain_transfer.UnmarshalOutcome([]byte("{not json")); err == nil {
			t.Fatal("expected decode error")
		}
	})
}
