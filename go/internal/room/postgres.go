package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// PostgresRepository stores rooms and participants.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateRoom(ctx context.Context, room models.Room, participants []models.Participant) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		const roomQ = `
			INSERT INTO rooms (id, name, status, commissioner_id, rounds, draft_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		if _, err := tx.ExecContext(ctx, roomQ,
			room.ID, room.Name, string(room.Status), room.CommissionerID,
			room.Settings.Rounds, pq.Array(uuidStrings(room.Settings.DraftOrder)),
			room.CreatedAt, room.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert room: %w", err)
		}

		const participantQ = `
			INSERT INTO participants (id, room_id, display_name, slot)
			VALUES ($1, $2, $3, $4)`

		for _, p := range participants {
			if _, err := tx.ExecContext(ctx, participantQ, p.ID, p.RoomID, p.DisplayName, p.Slot); err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	const q = `
		SELECT id, name, status, commissioner_id, rounds, draft_order, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var room models.Room
	var status string
	var rawOrder []string
	var createdAt, updatedAt time.Time

	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.Name, &status, &room.CommissionerID,
		&room.Settings.Rounds, pq.Array(&rawOrder), &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	draftOrder, err := parseUUIDs(rawOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse draft order: %w", err)
	}

	room.Status = models.RoomStatus(status)
	room.Settings.DraftOrder = draftOrder
	room.CreatedAt = createdAt.UTC()
	room.UpdatedAt = updatedAt.UTC()
	return &room, nil
}

func (r *PostgresRepository) UpdateRoom(ctx context.Context, room models.Room) error {
	const q = `
		UPDATE rooms
		SET name = $2, status = $3, rounds = $4, draft_order = $5, updated_at = $6
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q,
		room.ID, room.Name, string(room.Status), room.Settings.Rounds,
		pq.Array(uuidStrings(room.Settings.DraftOrder)), room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRepository) GetParticipantsByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	const q = `
		SELECT id, room_id, display_name, slot
		FROM participants
		WHERE room_id = $1
		ORDER BY slot`

	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.RoomID, &p.DisplayName, &p.Slot); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read participants: %w", err)
	}
	return participants, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
