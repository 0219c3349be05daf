package impl_transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	domain_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/domain/transfer"
	port_ledger "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/ledger"
	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"
	port_platform "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/platform"
	port_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/usecase/transfer"

	"github.com/shopspring/decimal"
)

// Debit and credit are independent idempotent operations on the ledger side;
// deriving one sub-key per leg keeps the ledger from conflating them as
// duplicates of a single movement, while the root key still gates the whole
// transfer exactly once.
const (
	debitSubKeySuffix    = ":debit"
	creditSubKeySuffix   = ":credit"
	reversalSubKeySuffix = ":reversal"
)

const aggregateTypeTransfer = "transfer"

type ExecuteTransferUsecaseImpl struct {
	uow    port_persistence.UnitOfWork
	idem   port_persistence.IdempotencyRepository
	repo   port_persistence.TransferRepository
	outbx  port_persistence.OutboxRepository
	ledger port_ledger.Client
	clock  port_platform.Clock
	ids    port_platform.IDGenerator
	log    *slog.Logger
}

func NewExecuteTransferUsecaseImpl(
	uow port_persistence.UnitOfWork,
	idem port_persistence.IdempotencyRepository,
	repo port_persistence.TransferRepository,
	outbx port_persistence.OutboxRepository,
	ledger port_ledger.Client,
	clock port_platform.Clock,
	ids port_platform.IDGenerator,
	log *slog.Logger,
) *ExecuteTransferUsecaseImpl {
	if log == nil {
		log = slog.Default()
	}

	return &ExecuteTransferUsecaseImpl{
		uow:    uow,
		idem:   idem,
		repo:   repo,
		outbx:  outbx,
		ledger: ledger,
		clock:  clock,
		ids:    ids,
		log:    log,
	}
}

// requestSnapshot is the serialized form of the request stored for audit with
// the idempotency record. The caller's credential is never persisted.
type requestSnapshot struct {
	AccountOriginID          string `json:"account_origin_id"`
	DestinationAccountNumber string `json:"destination_account_number"`
	Amount                   string `json:"amount"`
	IdempotencyKey           string `json:"idempotency_key"`
}

type eventEnvelope struct {
	Event      string                      `json:"event"`
	OccurredAt string                      `json:"occurred_at"`
	Data       domain_transfer.DomainEvent `json:"data"`
}

func (u *ExecuteTransferUsecaseImpl) Execute(ctx context.Context, in port_transfer.ExecuteTransferInput) (port_transfer.ExecuteTransferOutput, error) {
	var out port_transfer.ExecuteTransferOutput

	origin := strings.TrimSpace(in.AccountOriginID)
	if origin == "" {
		return out, domain_transfer.NewError(domain_transfer.KindInvalidAccount, "origin account is required")
	}

	destNumber, err := parseDestinationAccountNumber(in.DestinationAccountNumber)
	if err != nil {
		return out, domain_transfer.NewError(domain_transfer.KindInvalidAccount, "destination account number must be a positive integer")
	}

	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return out, domain_transfer.NewError(domain_transfer.KindInvalidValue, "amount must be greater than zero")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		return out, domain_transfer.NewError(domain_transfer.KindTransferFailed, "idempotency key is required")
	}

	snapshot, err := json.Marshal(requestSnapshot{
		AccountOriginID:          origin,
		DestinationAccountNumber: in.DestinationAccountNumber,
		Amount:                   amount.StringFixed(2),
		IdempotencyKey:           key,
	})
	if err != nil {
		return out, fmt.Errorf("transfer: marshal request snapshot: %w", err)
	}

	first, err := u.idem.BeginIfAbsent(ctx, key, snapshot)
	if err != nil {
		return out, fmt.Errorf("transfer: begin idempotency record: %w", err)
	}

	if !first {
		return u.replay(ctx, key)
	}

	if err := u.ledger.Debit(ctx, in.Token, key+debitSubKeySuffix, amount); err != nil {
		return out, u.failAttempt(ctx, key, domain_transfer.StageDebitFailed, err)
	}

	if err := u.ledger.Credit(ctx, in.Token, key+creditSubKeySuffix, destNumber, amount); err != nil {
		u.compensate(ctx, in.Token, key, amount)
		return out, u.failAttempt(ctx, key, domain_transfer.StageCreditFailedCompensated, err)
	}

	record, err := domain_transfer.New(domain_transfer.NewParams{
		TransferID:           u.ids.NewUUID(),
		AccountOriginID:      origin,
		AccountDestinationID: strconv.FormatInt(destNumber, 10),
		Amount:               amount,
		IdempotencyKey:       key,
		Now:                  u.clock.Now(),
	})
	if err != nil {
		return out, fmt.Errorf("transfer: build record: %w", err)
	}

	result, err := domain_transfer.SuccessOutcome(record).Marshal()
	if err != nil {
		return out, err
	}

	err = u.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, record); err != nil {
			return err
		}

		if err := u.idem.Finalize(ctx, key, result); err != nil {
			if errors.Is(err, port_persistence.ErrIdempotencyKeyMissing) {
				panic(fmt.Sprintf("idempotency record vanished before finalize: key=%s", key))
			}
			return err
		}

		return u.enqueueEvents(ctx, record.PullEvents())
	})
	if err != nil {
		return out, fmt.Errorf("transfer: finalize success outcome: %w", err)
	}

	u.log.Info("transfer completed",
		slog.String("transfer_id", record.ID().String()),
		slog.String("idempotency_key", key),
		slog.String("stage", string(domain_transfer.StageCompleted)))

	return port_transfer.ExecuteTransferOutput{
		TransferID:   record.ID().String(),
		MovementDate: record.MovementDate(),
		Amount:       record.Amount().StringFixed(2),
	}, nil
}

// replay resolves a request whose idempotency key was already seen. The stored
// outcome is authoritative; no remote call is ever made here.
func (u *ExecuteTransferUsecaseImpl) replay(ctx context.Context, key string) (port_transfer.ExecuteTransferOutput, error) {
	var out port_transfer.ExecuteTransferOutput

	raw, err := u.idem.GetResult(ctx, key)
	if err != nil {
		if errors.Is(err, port_persistence.ErrNotFound) {
			return out, domain_transfer.NewError(domain_transfer.KindTransferFailed, "previous attempt with this idempotency key is unresolved")
		}
		return out, fmt.Errorf("transfer: read stored result: %w", err)
	}

	// A null result means the first attempt never reached a terminal state:
	// either it is still in flight or it died mid-orchestration.
	if raw == nil {
		return out, domain_transfer.NewError(domain_transfer.KindTransferFailed, "previous attempt with this idempotency key is unresolved")
	}

	outcome, err := domain_transfer.UnmarshalOutcome(raw)
	if err != nil {
		return out, fmt.Errorf("transfer: decode stored result: %w", err)
	}

	if !outcome.IsSuccess() {
		return out, outcome.Err()
	}

	if outcome.Transfer == nil {
		return out, domain_transfer.NewError(domain_transfer.KindTransferFailed, "stored outcome has no transfer payload")
	}

	u.log.Info("transfer replayed from stored outcome",
		slog.String("transfer_id", outcome.Transfer.TransferID),
		slog.String("idempotency_key", key))

	return port_transfer.ExecuteTransferOutput{
		TransferID:   outcome.Transfer.TransferID,
		MovementDate: outcome.Transfer.MovementDate,
		Amount:       outcome.Transfer.Amount,
		Replayed:     true,
	}, nil
}

// compensate credits the already-debited amount back to the origin account.
// Best effort: its own failure never masks the credit failure that caused it.
func (u *ExecuteTransferUsecaseImpl) compensate(ctx context.Context, token, key string, amount decimal.Decimal) {
	if err := u.ledger.Reverse(ctx, token, key+reversalSubKeySuffix, amount); err != nil {
		u.log.Error("compensation reversal failed",
			slog.String("idempotency_key", key),
			slog.String("error", err.Error()))
	}
}

// failAttempt persists the terminal error outcome for the key and returns the
// transfer-level error the caller should see on this and every replay.
func (u *ExecuteTransferUsecaseImpl) failAttempt(ctx context.Context, key string, stage domain_transfer.Stage, cause error) error {
	terr := normalizeLedgerError(cause)

	result, err := domain_transfer.ErrorOutcome(terr.Message, terr.Kind, terr.StatusCode).Marshal()
	if err != nil {
		return err
	}

	event := domain_transfer.TransferFailed{
		At:             u.clock.Now(),
		IdempotencyKey: key,
		Stage:          stage,
		Kind:           terr.Kind,
		Message:        terr.Message,
	}

	err = u.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.idem.SetErrorResult(ctx, key, result); err != nil {
			if errors.Is(err, port_persistence.ErrIdempotencyKeyMissing) {
				panic(fmt.Sprintf("idempotency record vanished before error finalize: key=%s", key))
			}
			return err
		}

		return u.enqueueEvents(ctx, []domain_transfer.DomainEvent{event})
	})
	if err != nil {
		return fmt.Errorf("transfer: record error outcome: %w", err)
	}

	u.log.Warn("transfer attempt failed",
		slog.String("idempotency_key", key),
		slog.String("stage", string(stage)),
		slog.String("kind", string(terr.Kind)))

	return terr
}

func (u *ExecuteTransferUsecaseImpl) enqueueEvents(ctx context.Context, events []domain_transfer.DomainEvent) error {
	for _, ev := range events {
		payload, err := json.Marshal(eventEnvelope{
			Event:      ev.EventName(),
			OccurredAt: ev.OccurredAt().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Data:       ev,
		})
		if err != nil {
			return fmt.Errorf("transfer: marshal event %s: %w", ev.EventName(), err)
		}

		msg := port_persistence.OutboxMessage{
			MessageID:     u.ids.NewUUID().String(),
			EventType:     ev.EventName(),
			AggregateType: aggregateTypeTransfer,
			AggregateID:   ev.AggregateID(),
			Payload:       payload,
		}

		if err := u.outbx.Enqueue(ctx, msg); err != nil {
			return fmt.Errorf("transfer: enqueue event %s: %w", ev.EventName(), err)
		}
	}

	return nil
}

// normalizeLedgerError lifts a remote-call failure into the transfer error
// taxonomy. A remote error without a kind tag falls back to the generic
// failure kind rather than inventing one.
func normalizeLedgerError(err error) *domain_transfer.Error {
	var remote *port_ledger.RemoteError
	if errors.As(err, &remote) {
		kind := domain_transfer.Kind(remote.Kind)
		if remote.Kind == "" {
			kind = domain_transfer.KindTransferFailed
		}

		return &domain_transfer.Error{
			Kind:       kind,
			Message:    remote.Message,
			StatusCode: remote.StatusCode,
		}
	}

	return domain_transfer.NewError(domain_transfer.KindTransferFailed, err.Error())
}

func parseDestinationAccountNumber(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}

	if n <= 0 {
		return 0, fmt.Errorf("destination account number must be positive, got %d", n)
	}

	return n, nil
}
