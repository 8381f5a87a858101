package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mathematico/server/internal/models"
)

// InsertRoundRecords persists a batch of finished rounds in one transaction:
// one games row per round plus one game_results row per seat. Records are
// upserted so the historian can safely replay a queue segment.
func InsertRoundRecords(ctx context.Context, records []models.RoundRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			upsertGame := `
				INSERT INTO games (id, finished_at)
				VALUES ($1, $2)
				ON CONFLICT (id) DO UPDATE SET finished_at = $2
			`
			finishedAt := time.UnixMilli(rec.Timestamp).UTC()
			if _, err := tx.Exec(ctx, upsertGame, rec.GameID, finishedAt); err != nil {
				return err
			}

			for _, res := range rec.Results {
				q := `
					INSERT INTO game_results (game_id, seat, user_id, strategy, score)
					VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT (game_id, seat)
					DO UPDATE SET user_id = $3, strategy = $4, score = $5
				`
				var userID interface{}
				if res.UserID != uuid.Nil {
					userID = res.UserID
				}
				if _, err := tx.Exec(ctx, q, rec.GameID, res.Seat, userID, res.Strategy, res.Score); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx insert round records: %w", err)
	}
	return nil
}
