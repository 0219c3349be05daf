package impl_postgres

import (
	"context"
	"fmt"

	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OutboxRepository struct {
	pool *pgxpool.Pool
}

func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, msg port_persistence.OutboxMessage) error {
	_, err := querierFrom(ctx, r.pool).Exec(ctx, `
		INSERT INTO outbox_messages (message_id, event_type, aggregate_type, aggregate_id, payload)
		VALUES ($1, $2, $3, $4, $5)`,
		msg.MessageID, msg.EventType, msg.AggregateType, msg.AggregateID, msg.Payload)
	if err != nil {
		return fmt.Errorf("postgres: enqueue outbox message: %w", err)
	}

	return nil
}

func (r *OutboxRepository) DequeueBatch(ctx context.Context, limit int) ([]port_persistence.OutboxMessage, error) {
	rows, err := querierFrom(ctx, r.pool).Query(ctx, `
		SELECT message_id, event_type, aggregate_type, aggregate_id, payload
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: dequeue outbox batch: %w", err)
	}
	defer rows.Close()

	var msgs []port_persistence.OutboxMessage
	for rows.Next() {
		var msg port_persistence.OutboxMessage
		if err := rows.Scan(&msg.MessageID, &msg.EventType, &msg.AggregateType, &msg.AggregateID, &msg.Payload); err != nil {
			return nil, fmt.Errorf("postgres: scan outbox message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate outbox batch: %w", err)
	}

	return msgs, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, messageID string) error {
	_, err := querierFrom(ctx, r.pool).Exec(ctx, `
		UPDATE outbox_messages
		SET published_at = now()
		WHERE message_id = $1 AND published_at IS NULL`,
		messageID)
	if err != nil {
		return fmt.Errorf("postgres: mark outbox message published: %w", err)
	}

	return nil
}
