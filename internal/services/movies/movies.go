package movies

import (
	"context"
	"errors"
	"log/slog"

	"tinyviewers/proj/internal/clients/metadata"
	"tinyviewers/proj/internal/domain/filters"
	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	Insert(ctx context.Context, title, summary, posterURL string, externalID *string, year *int32) (*models.Movie, error)
	List(ctx context.Context, title string, filters filters.Filters) ([]models.Movie, int, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type MetadataProvider interface {
	Lookup(ctx context.Context, externalID string) (*metadata.MovieInfo, error)
}

type MovieService struct {
	log      *slog.Logger
	storage  MoviesStorage
	provider MetadataProvider
}

func New(log *slog.Logger, storage MoviesStorage, provider MetadataProvider) *MovieService {
	return &MovieService{
		log:      log,
		storage:  storage,
		provider: provider,
	}
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

// Create adds a title to the catalog. When an external id is supplied and the
// provider knows it, missing fields are filled from provider metadata; lookup
// failures only log, an operator can refresh later.
func (s *MovieService) Create(ctx context.Context, title, summary, posterURL string, externalID *string, year *int32) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", title)
	if externalID != nil {
		info, err := s.provider.Lookup(ctx, *externalID)
		switch {
		case err != nil:
			log.Warn("metadata lookup failed on create", "external_id", *externalID, "error", err.Error())
		default:
			if summary == "" {
				summary = info.Summary
			}
			if posterURL == "" {
				posterURL = info.PosterURL
			}
			if year == nil {
				year = info.Year
			}
		}
	}
	movie, err := s.storage.Insert(ctx, title, summary, posterURL, externalID, year)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, title string, filters filters.Filters) ([]models.Movie, int, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op)
	movies, total, err := s.storage.List(ctx, title, filters)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return movies, total, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, title, summary, posterURL *string, externalID *string, year *int32) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id)
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		movie.Title = *title
	}
	if summary != nil {
		movie.Summary = *summary
	}
	if posterURL != nil {
		movie.PosterURL = *posterURL
	}
	if externalID != nil {
		movie.ExternalID = externalID
	}
	if year != nil {
		movie.Year = year
	}
	updatedMovie, err := s.storage.Update(ctx, movie)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie already exists")
			return nil, ErrMovieAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updatedMovie, nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// RefreshMetadata re-pulls title, summary, poster, rating and year from the
// metadata provider. Age scores and scenes are never touched here.
func (s *MovieService) RefreshMetadata(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.RefreshMetadata"
	log := s.log.With("op", op, "id", id)
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie.ExternalID == nil {
		return nil, ErrNoExternalID
	}
	info, err := s.provider.Lookup(ctx, *movie.ExternalID)
	if err != nil {
		log.Error("metadata lookup failed", "error", err.Error())
		return nil, err
	}
	if info.Title != "" {
		movie.Title = info.Title
	}
	movie.Summary = info.Summary
	movie.PosterURL = info.PosterURL
	movie.Rating = info.Rating
	if info.Year != nil {
		movie.Year = info.Year
	}
	updatedMovie, err := s.storage.Update(ctx, movie)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return updatedMovie, nil
}
