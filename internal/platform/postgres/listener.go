package postgres

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashdeck/flashdeck-api/internal/events"
	"github.com/flashdeck/flashdeck-api/internal/redact"
)

// ChangeChannel is the NOTIFY channel the flashcards table trigger posts to.
// See migrations/00002_flashcards_change_notify.sql.
const ChangeChannel = "flashdeck_changes"

// changePayload is the JSON payload emitted by the table trigger.
type changePayload struct {
	Op string `json:"op"`
	ID string `json:"id"`
}

// ChangeListener holds a dedicated LISTEN connection and republishes table
// change notifications into the in-process change broker. It is best-effort:
// if the connection cannot be established or drops, the failure is logged
// and the rest of the system keeps working without live updates.
type ChangeListener struct {
	pool      *pgxpool.Pool
	publisher events.Publisher
	logger    *slog.Logger
}

// NewChangeListener creates a listener that publishes into publisher.
func NewChangeListener(pool *pgxpool.Pool, publisher events.Publisher, logger *slog.Logger) *ChangeListener {
	if logger == nil {
		logger = slog.Default()
	}

	return &ChangeListener{
		pool:      pool,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "change_listener")),
	}
}

// Run listens for notifications until the context is cancelled. It never
// returns an error: all failures are logged and swallowed, because live
// updates are an enhancement, not a requirement.
func (l *ChangeListener) Run(ctx context.Context) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		l.logger.Warn("realtime updates disabled: could not acquire listen connection",
			"error", redact.Error(err))
		return
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		l.logger.Warn("realtime updates disabled: LISTEN failed",
			"channel", ChangeChannel,
			"error", redact.Error(err))
		return
	}

	l.logger.Info("listening for flashcard changes", "channel", ChangeChannel)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Debug("change listener stopped", "reason", ctx.Err())
			} else {
				l.logger.Warn("realtime updates stopped: listen connection lost",
					"error", redact.Error(err))
			}
			return
		}

		l.publish(notification.Payload)
	}
}

// publish decodes one notification payload and hands it to the broker.
// Undecodable payloads still produce an event: subscribers only need a
// refetch signal.
func (l *ChangeListener) publish(payload string) {
	var decoded changePayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		l.logger.Warn("unparseable change notification", "error", err)
		l.publisher.Publish(events.NewChangeEvent(events.OpUpdate, uuid.Nil))
		return
	}

	id, err := uuid.Parse(decoded.ID)
	if err != nil {
		id = uuid.Nil
	}

	l.publisher.Publish(events.NewChangeEvent(events.ChangeOp(decoded.Op), id))
}
