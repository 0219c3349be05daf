package port_persistence

import "context"

type OutboxMessage struct {
	MessageID     string
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       []byte
}

// OutboxRepository stages domain events in the same transaction as the state
// change that produced them. A background relay drains the staged messages.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) error
	DequeueBatch(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, messageID string) error
}
