package impl_postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/domain/transfer"
	impl_postgres "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/impl/gateway/persistence/postgres"
	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"
	"github.com/PedroCamargo-dev/transfer-orchestration-service/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a real database; set TEST_DATABASE_URL to run them.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres tests")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."))
	require.NoError(t, db.Close())

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE idempotency_keys, transfers, outbox_messages`)
	require.NoError(t, err)

	return pool
}

func TestIdempotencyRepository(t *testing.T) {
	pool := setupPool(t)
	repo := impl_postgres.NewIdempotencyRepository(pool)
	ctx := context.Background()

	first, err := repo.BeginIfAbsent(ctx, "idem-1", []byte(`{"amount":"25.50"}`))
	require.NoError(t, err)
	assert.True(t, first)

	again, err := repo.BeginIfAbsent(ctx, "idem-1", []byte(`{"amount":"25.50"}`))
	require.NoError(t, err)
	assert.False(t, again)

	// In flight: record exists but has no result yet.
	result, err := repo.GetResult(ctx, "idem-1")
	require.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, repo.Finalize(ctx, "idem-1", []byte(`{"status":"SUCCESS"}`)))

	result, err = repo.GetResult(ctx, "idem-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"SUCCESS"}`, string(result))

	// A terminal outcome is immutable.
	err = repo.SetErrorResult(ctx, "idem-1", []byte(`{"status":"ERROR"}`))
	assert.ErrorIs(t, err, port_persistence.ErrIdempotencyKeyMissing)

	err = repo.Finalize(ctx, "never-begun", []byte(`{}`))
	assert.ErrorIs(t, err, port_persistence.ErrIdempotencyKeyMissing)

	_, err = repo.GetResult(ctx, "unknown")
	assert.ErrorIs(t, err, port_persistence.ErrNotFound)
}

func TestTransferRepository_RoundTrip(t *testing.T) {
	pool := setupPool(t)
	repo := impl_postgres.NewTransferRepository(pool)
	ctx := context.Background()

	record, err := domain_transfer.New(domain_transfer.NewParams{
		TransferID:           uuid.New(),
		AccountOriginID:      "acc-1",
		AccountDestinationID: "100001",
		Amount:               decimal.RequireFromString("25.50"),
		IdempotencyKey:       "idem-1",
		Now:                  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, record))

	loaded, err := repo.GetByID(ctx, record.ID().String())
	require.NoError(t, err)

	assert.Equal(t, record.ID(), loaded.ID())
	assert.Equal(t, "acc-1", loaded.AccountOriginID())
	assert.Equal(t, "100001", loaded.AccountDestinationID())
	assert.Equal(t, "25.50", loaded.Amount().StringFixed(2))
	assert.Equal(t, "31/08/2026", loaded.MovementDate())

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, port_persistence.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, port_persistence.ErrNotFound)
}

func TestOutboxRepository(t *testing.T) {
	pool := setupPool(t)
	repo := impl_postgres.NewOutboxRepository(pool)
	ctx := context.Background()

	msg := port_persistence.OutboxMessage{
		MessageID:     uuid.NewString(),
		EventType:     "transfer.completed",
		AggregateType: "transfer",
		AggregateID:   uuid.NewString(),
		Payload:       []byte(`{"event":"transfer.completed"}`),
	}

	require.NoError(t, repo.Enqueue(ctx, msg))

	batch, err := repo.DequeueBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, msg.MessageID, batch[0].MessageID)
	assert.Equal(t, "transfer.completed", batch[0].EventType)

	require.NoError(t, repo.MarkPublished(ctx, msg.MessageID))

	batch, err = repo.DequeueBatch(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	pool := setupPool(t)
	uow := impl_postgres.NewUnitOfWork(pool)
	idem := impl_postgres.NewIdempotencyRepository(pool)
	ctx := context.Background()

	sentinel := errors.New("abort")

	err := uow.WithinTx(ctx, func(ctx context.Context) error {
		first, err := idem.BeginIfAbsent(ctx, "uow-key", []byte(`{}`))
		require.NoError(t, err)
		require.True(t, first)
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	// The insert was rolled back with the transaction.
	_, err = idem.GetResult(ctx, "uow-key")
	assert.ErrorIs(t, err, port_persistence.ErrNotFound)
}

func TestUnitOfWork_CommitsAtomically(t *testing.T) {
	pool := setupPool(t)
	uow := impl_postgres.NewUnitOfWork(pool)
	idem := impl_postgres.NewIdempotencyRepository(pool)
	transfers := impl_postgres.NewTransferRepository(pool)
	ctx := context.Background()

	record, err := domain_transfer.New(domain_transfer.NewParams{
		TransferID:           uuid.New(),
		AccountOriginID:      "acc-1",
		AccountDestinationID: "100001",
		Amount:               decimal.RequireFromString("10.00"),
		IdempotencyKey:       "uow-commit",
		Now:                  time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	first, err := idem.BeginIfAbsent(ctx, "uow-commit", []byte(`{}`))
	require.NoError(t, err)
	require.True(t, first)

	err = uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := transfers.Create(ctx, record); err != nil {
			return err
		}
		return idem.Finalize(ctx, "uow-commit", []byte(`{"status":"SUCCESS"}`))
	})
	require.NoError(t, err)

	result, err := idem.GetResult(ctx, "uow-commit")
	require.NoError(t, err)
	assert.NotNil(t, result)

	loaded, err := transfers.GetByID(ctx, record.ID().String())
	require.NoError(t, err)
	assert.Equal(t, record.ID(), loaded.ID())
}
