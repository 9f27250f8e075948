// Package remote bridges the shared store's change notifications onto the
// in-process event bus. It is the transport behind the sync coordinator:
// delivery is best-effort and at-least-once, and one logical edit may surface
// as several notifications.
package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/platform/events"
)

// channelName is the NOTIFY channel the record_changes trigger publishes on.
const channelName = "record_changes"

// notificationPayload is the JSON body emitted by the database trigger.
type notificationPayload struct {
	Entity   string `json:"entity"`
	RecordID string `json:"record_id"`
}

// Listener holds a dedicated connection on the shared pool and LISTENs for
// change notifications, republishing each as a RemoteChange event.
type Listener struct {
	pool   *pgxpool.Pool
	bus    *events.Bus
	logger *slog.Logger
}

// NewListener creates a listener; Run must be called to start it.
func NewListener(pool *pgxpool.Pool, bus *events.Bus, logger *slog.Logger) *Listener {
	return &Listener{pool: pool, bus: bus, logger: logger}
}

// Run listens until ctx is cancelled, reconnecting with backoff when the
// connection drops. Notifications missed while disconnected are lost; the
// next periodic refresh or mode switch covers the gap.
func (l *Listener) Run(ctx context.Context) {
	backoff := time.Second
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.logger.Warn("Remote change listener disconnected, reconnecting",
			slog.String("error", err.Error()),
			slog.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}
	l.logger.Info("Remote change listener connected", slog.String("channel", channelName))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var payload notificationPayload
		if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			// An unparseable payload still means something changed.
			l.logger.Debug("Unparseable change notification", slog.String("payload", notification.Payload))
		}
		l.bus.Publish(events.RemoteChange{Entity: payload.Entity, RecordID: payload.RecordID})
	}
}
