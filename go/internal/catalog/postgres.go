package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/sqlutil"
)

// PostgresRepository stores candidate catalogs in the candidates table.
// UNIQUE (room_id, id) keeps the catalog duplicate-free at the storage layer.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateCandidates(ctx context.Context, roomID uuid.UUID, candidates []models.Candidate) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		const q = `
			INSERT INTO candidates (id, room_id, team_id, name, role, score)
			VALUES ($1, $2, $3, $4, $5, $6)`

		for _, c := range candidates {
			if _, err := tx.ExecContext(ctx, q, c.ID, roomID, c.TeamID, c.Name, c.Role, c.Score); err != nil {
				return fmt.Errorf("failed to insert candidate %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) GetCandidate(ctx context.Context, roomID, candidateID uuid.UUID) (*models.Candidate, error) {
	const q = `
		SELECT id, room_id, team_id, name, role, score
		FROM candidates
		WHERE room_id = $1 AND id = $2`

	var c models.Candidate
	err := r.db.QueryRowContext(ctx, q, roomID, candidateID).Scan(
		&c.ID, &c.RoomID, &c.TeamID, &c.Name, &c.Role, &c.Score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) ListCandidatesByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error) {
	const q = `
		SELECT id, room_id, team_id, name, role, score
		FROM candidates
		WHERE room_id = $1
		ORDER BY score DESC, name`

	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.RoomID, &c.TeamID, &c.Name, &c.Role, &c.Score); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

func (r *PostgresRepository) CountCandidates(ctx context.Context, roomID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM candidates WHERE room_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, q, roomID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}
