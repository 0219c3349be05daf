package impl_messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/messaging"
	port_persistence "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/ports/gateway/persistence"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 50
)

// Relay drains staged outbox messages and publishes them. Messages stay in
// the outbox until publishing succeeds, so delivery is at-least-once.
type Relay struct {
	outbx     port_persistence.OutboxRepository
	publisher messaging.Publisher
	channel   string
	interval  time.Duration
	batchSize int
	log       *slog.Logger
}

func NewRelay(outbx port_persistence.OutboxRepository, publisher messaging.Publisher, channel string, interval time.Duration, log *slog.Logger) *Relay {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = slog.Default()
	}

	return &Relay{
		outbx:     outbx,
		publisher: publisher,
		channel:   channel,
		interval:  interval,
		batchSize: defaultBatchSize,
		log:       log,
	}
}

// Run polls until the context is cancelled. Drain errors are logged and
// retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.log.Error("outbox drain failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Drain publishes one batch of staged messages in insertion order.
func (r *Relay) Drain(ctx context.Context) error {
	msgs, err := r.outbx.DequeueBatch(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("messaging: dequeue outbox batch: %w", err)
	}

	for _, msg := range msgs {
		if err := r.publisher.Publish(ctx, r.channel, msg.Payload); err != nil {
			return fmt.Errorf("messaging: publish message %s: %w", msg.MessageID, err)
		}

		if err := r.outbx.MarkPublished(ctx, msg.MessageID); err != nil {
			return fmt.Errorf("messaging: mark message %s published: %w", msg.MessageID, err)
		}

		r.log.Debug("outbox message published",
			slog.String("message_id", msg.MessageID),
			slog.String("event_type", msg.EventType))
	}

	return nil
}
