// Package messaging keeps the append-only internal message log.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/models"
)

type SnapshotStore interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

type Messaging struct {
	log   *slog.Logger
	store SnapshotStore
	now   func() time.Time
}

func New(log *slog.Logger, store SnapshotStore) *Messaging {
	return &Messaging{
		log:   log,
		store: store,
		now:   time.Now,
	}
}

// Send appends a message. Sender and recipient are free text and are not checked against users.
func (m *Messaging) Send(ctx context.Context, from, to, body string) (models.Message, error) {
	const op = "messaging.Send"

	log := m.log.With(slog.String("op", op))

	snap, err := m.store.Load(ctx)
	if err != nil {
		log.Error("failed to load store", sl.Err(err))
		return models.Message{}, fmt.Errorf("%s: %w", op, err)
	}

	msg := models.Message{
		ID:        snap.NextMessageID(),
		From:      from,
		To:        to,
		Message:   body,
		Timestamp: models.FormatTimestamp(m.now()),
	}

	snap.Messages = append(snap.Messages, msg)

	if err := m.store.Save(ctx, snap); err != nil {
		log.Error("failed to save message", sl.Err(err))
		return models.Message{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("message saved", slog.Int64("id", msg.ID))

	return msg, nil
}

// ListFor returns the messages sent by or to email, oldest first.
func (m *Messaging) ListFor(ctx context.Context, email string) ([]models.Message, error) {
	const op = "messaging.ListFor"

	snap, err := m.store.Load(ctx)
	if err != nil {
		m.log.Error("failed to load store", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Message, 0)
	for _, msg := range snap.Messages {
		if msg.From == email || msg.To == email {
			out = append(out, msg)
		}
	}

	return out, nil
}
