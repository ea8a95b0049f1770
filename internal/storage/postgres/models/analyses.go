package models

import (
	"context"

	"tinyviewers/proj/internal/domain/fields"
	"tinyviewers/proj/internal/domain/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalysisModel struct {
	DB *pgxpool.Pool
}

func (m *AnalysisModel) Insert(ctx context.Context, movieID int64, scores fields.AgeScores, sceneCount int32) (*models.AnalysisRecord, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO analysis_records (movie_id, age_scores, scene_count) VALUES ($1, $2, $3) RETURNING *",
		movieID,
		scores,
		sceneCount,
	)
	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.AnalysisRecord])
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (m *AnalysisModel) ListForMovie(ctx context.Context, movieID int64) ([]models.AnalysisRecord, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT id, movie_id, age_scores, scene_count, created_at
		FROM analysis_records WHERE movie_id = $1 ORDER BY created_at DESC`,
		movieID,
	)
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AnalysisRecord])
	if err != nil {
		return nil, err
	}
	return records, nil
}
