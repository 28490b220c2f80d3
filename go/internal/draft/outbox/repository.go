package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// Repository stores outbox rows in the draft_outbox table. Inserts notify
// the relay channel in the same transaction, so a running listener picks
// the event up immediately while the fallback sweep covers lost notifies.
type Repository struct {
	db            *sql.DB
	notifyChannel string
}

func NewRepository(db *sql.DB, notifyChannel string) *Repository {
	return &Repository{
		db:            db,
		notifyChannel: notifyChannel,
	}
}

func (r *Repository) InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload []byte) error {
	id := uuid.New()
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		const q = `
			INSERT INTO draft_outbox (id, room_id, event_type, payload, created_at)
			VALUES ($1, $2, $3, $4, NOW())`

		if _, err := tx.ExecContext(ctx, q, id, roomID, eventType,
			pqtype.NullRawMessage{RawMessage: payload, Valid: true}); err != nil {
			return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
		}

		if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, r.notifyChannel, id.String()); err != nil {
			return fmt.Errorf("failed to notify outbox channel: %w", err)
		}
		return nil
	})
}

func (r *Repository) FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	const q = `
		SELECT id, room_id, event_type, payload, created_at
		FROM draft_outbox
		WHERE sent_at IS NULL
		ORDER BY created_at
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outbox events: %w", err)
	}
	return events, nil
}

func (r *Repository) FetchEventByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	const q = `
		SELECT id, room_id, event_type, payload, created_at
		FROM draft_outbox
		WHERE id = $1 AND sent_at IS NULL`

	event, err := scanEvent(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("outbox event not found or already sent")
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}
	return &event, nil
}

func (r *Repository) MarkEventSent(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE draft_outbox SET sent_at = NOW() WHERE id = $1 AND sent_at IS NULL`

	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func scanEvent(scan func(dest ...any) error) (OutboxEvent, error) {
	var event OutboxEvent
	var payload pqtype.NullRawMessage
	var createdAt time.Time

	if err := scan(&event.ID, &event.RoomID, &event.EventType, &payload, &createdAt); err != nil {
		return OutboxEvent{}, err
	}
	if payload.Valid {
		event.Payload = payload.RawMessage
	}
	event.CreatedAt = createdAt.UTC()
	return event, nil
}
