package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// PostgresRepository stores picks in the draft_picks table.
//
// The table carries UNIQUE (room_id, sequence) and UNIQUE (room_id,
// candidate_id) constraints, so even a misbehaving second writer cannot
// produce duplicate sequences or a double-drafted candidate.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AppendPick(ctx context.Context, pick models.Pick) error {
	const q = `
		INSERT INTO draft_picks (id, room_id, sequence, round, pick, participant_id, candidate_id, picked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, q,
		pick.ID, pick.RoomID, pick.Sequence, pick.Round, pick.Pick,
		pick.ParticipantID, pick.CandidateID, pick.PickedAt)
	if err != nil {
		return fmt.Errorf("failed to append pick: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteTailPick(ctx context.Context, roomID uuid.UUID, sequence int) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		const q = `
			DELETE FROM draft_picks
			WHERE room_id = $1
			  AND sequence = $2
			  AND sequence = (SELECT MAX(sequence) FROM draft_picks WHERE room_id = $1)`

		res, err := tx.ExecContext(ctx, q, roomID, sequence)
		if err != nil {
			return fmt.Errorf("failed to delete tail pick: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("sequence %d is not the ledger tail", sequence)
		}
		return nil
	})
}

func (r *PostgresRepository) GetPicksByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error) {
	const q = `
		SELECT id, room_id, sequence, round, pick, participant_id, candidate_id, picked_at
		FROM draft_picks
		WHERE room_id = $1
		ORDER BY sequence`

	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks by room: %w", err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var p models.Pick
		var pickedAt time.Time
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Sequence, &p.Round, &p.Pick,
			&p.ParticipantID, &p.CandidateID, &pickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		p.PickedAt = pickedAt.UTC()
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read picks: %w", err)
	}
	return picks, nil
}

func (r *PostgresRepository) CountPicks(ctx context.Context, roomID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM draft_picks WHERE room_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, q, roomID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return count, nil
}
