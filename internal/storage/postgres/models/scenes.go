package models

import (
	"context"
	"errors"

	"tinyviewers/proj/internal/domain/fields"
	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SceneModel struct {
	DB *pgxpool.Pool
}

func (m *SceneModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Scene, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT id, movie_id, start_time, end_time, description, tags, intensity, age_flags, created_at
		FROM scenes WHERE movie_id = $1 ORDER BY start_time, id`,
		movieID,
	)
	scenes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Scene])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return scenes, nil
}

// ReplaceAnalysis swaps in a full new analysis generation for a movie: the old
// scene set is deleted, the new one inserted and the aggregate age scores
// updated, all inside one transaction so a failure can never leave scenes and
// scores from different generations visible together.
func (m *SceneModel) ReplaceAnalysis(ctx context.Context, movieID int64, scenes []models.Scene, scores fields.AgeScores) (int, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM scenes WHERE movie_id = $1", movieID); err != nil {
		return 0, err
	}
	batch := &pgx.Batch{}
	for _, scene := range scenes {
		batch.Queue(
			`INSERT INTO scenes (movie_id, start_time, end_time, description, tags, intensity, age_flags)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			movieID,
			scene.StartTime,
			scene.EndTime,
			scene.Description,
			scene.Tags,
			scene.Intensity,
			scene.AgeFlags,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}
	status, err := tx.Exec(
		ctx,
		"UPDATE movies SET age_scores = $1, version = version + 1 WHERE id = $2",
		scores,
		movieID,
	)
	if err != nil {
		return 0, err
	}
	if status.RowsAffected() == 0 {
		return 0, storage.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(scenes), nil
}
