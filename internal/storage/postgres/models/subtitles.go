package models

import (
	"context"
	"errors"

	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubtitleModel struct {
	DB *pgxpool.Pool
}

// LatestForMovie returns the most recently stored subtitle record for a movie.
// The analysis pipeline always reads the newest one.
func (m *SubtitleModel) LatestForMovie(ctx context.Context, movieID int64) (*models.Subtitle, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT id, movie_id, content, language, source, format, created_at
		FROM subtitles WHERE movie_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		movieID,
	)
	if err != nil {
		return nil, err
	}
	subtitle, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Subtitle])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &subtitle, nil
}

func (m *SubtitleModel) Insert(ctx context.Context, movieID int64, content, language, source, format string) (*models.Subtitle, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO subtitles (movie_id, content, language, source, format)
		VALUES ($1, $2, $3, $4, $5) RETURNING *`,
		movieID,
		content,
		language,
		source,
		format,
	)
	subtitle, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Subtitle])
	if err != nil {
		return nil, err
	}
	return &subtitle, nil
}
