package models

import (
	"context"
	"errors"
	"time"

	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"
	"tinyviewers/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SavedMovieModel struct {
	DB *pgxpool.Pool
}

// LibraryEntry is a saved movie joined with its movie row for the library page.
type LibraryEntry struct {
	models.Movie
	SavedAt time.Time `json:"saved_at"`
}

func (m *SavedMovieModel) Insert(ctx context.Context, userID, movieID int64) (*models.SavedMovie, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO saved_movies (user_id, movie_id) VALUES ($1, $2) RETURNING *",
		userID,
		movieID,
	)
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.SavedMovie])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &saved, nil
}

func (m *SavedMovieModel) Delete(ctx context.Context, userID, movieID int64) error {
	status, err := m.DB.Exec(
		ctx,
		"DELETE FROM saved_movies WHERE user_id = $1 AND movie_id = $2",
		userID,
		movieID,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *SavedMovieModel) ListForUser(ctx context.Context, userID int64) ([]LibraryEntry, int, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT count(*) OVER(), m.id, m.title, m.summary, m.poster_url, m.rating, m.age_scores,
		m.external_id, m.year, m.version, m.created_at, sm.created_at AS saved_at
		FROM saved_movies sm
		JOIN movies m ON m.id = sm.movie_id
		WHERE sm.user_id = $1
		ORDER BY sm.created_at DESC`,
		userID,
	)
	type row struct {
		Count int
		LibraryEntry
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []LibraryEntry{}, 0, nil
	}
	entries := make([]LibraryEntry, 0, len(outputRows))
	for _, row := range outputRows {
		entries = append(entries, row.LibraryEntry)
	}
	return entries, outputRows[0].Count, nil
}
