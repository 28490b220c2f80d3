package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/draftroom/go/internal/dbconfig"
)

// Candidate mirrors the candidates table row shape in the seed file.
type Candidate struct {
	ID     uuid.UUID `json:"id"`
	RoomID uuid.UUID `json:"room_id"`
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	Score  float64   `json:"score"`
}

func main() {
	ctx := context.Background()

	path := "go/internal/assets/candidates.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal candidates: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	total, inserted, skipped, errs := len(candidates), 0, 0, 0
	for _, c := range candidates {
		tag, err := pool.Exec(ctx, `
            INSERT INTO candidates (
              id, room_id, team_id, name, role, score
            ) VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (id) DO NOTHING
        `, c.ID, c.RoomID, c.TeamID, c.Name, c.Role, c.Score)
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Candidates seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}
