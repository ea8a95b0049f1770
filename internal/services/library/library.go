package library

import (
	"context"
	"errors"
	"log/slog"

	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"
	pgmodels "tinyviewers/proj/internal/storage/postgres/models"
)

type LibraryStorage interface {
	Insert(ctx context.Context, userID, movieID int64) (*models.SavedMovie, error)
	Delete(ctx context.Context, userID, movieID int64) error
	ListForUser(ctx context.Context, userID int64) ([]pgmodels.LibraryEntry, int, error)
}

type MovieGetter interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type LibraryService struct {
	log     *slog.Logger
	storage LibraryStorage
	movies  MovieGetter
}

func New(log *slog.Logger, storage LibraryStorage, movies MovieGetter) *LibraryService {
	return &LibraryService{
		log:     log,
		storage: storage,
		movies:  movies,
	}
}

func (s *LibraryService) Save(ctx context.Context, userID, movieID int64) (*models.SavedMovie, error) {
	const op = "library.LibraryService.Save"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	if _, err := s.movies.Get(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	saved, err := s.storage.Insert(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already saved")
			return nil, ErrAlreadySaved
		}
		log.Error(err.Error())
		return nil, err
	}
	return saved, nil
}

func (s *LibraryService) Unsave(ctx context.Context, userID, movieID int64) error {
	const op = "library.LibraryService.Unsave"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	if err := s.storage.Delete(ctx, userID, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not saved")
			return ErrNotSaved
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// List returns the user's saved movies, newest first, plus the total count so
// clients have a single source of truth for the "saved" counter.
func (s *LibraryService) List(ctx context.Context, userID int64) ([]pgmodels.LibraryEntry, int, error) {
	const op = "library.LibraryService.List"
	entries, total, err := s.storage.ListForUser(ctx, userID)
	if err != nil {
		s.log.With("op", op, "user_id", userID).Error(err.Error())
		return nil, 0, err
	}
	return entries, total, nil
}
