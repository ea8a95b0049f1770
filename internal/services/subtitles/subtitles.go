package subtitles

import (
	"context"
	"errors"
	"log/slog"

	subclient "tinyviewers/proj/internal/clients/subtitles"
	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"
)

type SubtitlesStorage interface {
	LatestForMovie(ctx context.Context, movieID int64) (*models.Subtitle, error)
	Insert(ctx context.Context, movieID int64, content, language, source, format string) (*models.Subtitle, error)
}

type MovieGetter interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type SubtitleProvider interface {
	Fetch(ctx context.Context, externalID, language string) (*subclient.File, error)
}

type SubtitleService struct {
	log      *slog.Logger
	storage  SubtitlesStorage
	movies   MovieGetter
	provider SubtitleProvider
}

func New(log *slog.Logger, storage SubtitlesStorage, movies MovieGetter, provider SubtitleProvider) *SubtitleService {
	return &SubtitleService{
		log:      log,
		storage:  storage,
		movies:   movies,
		provider: provider,
	}
}

// Fetch downloads a subtitle for the movie from the provider and stores it as
// a new write-once record. The analysis pipeline will pick up the newest one.
func (s *SubtitleService) Fetch(ctx context.Context, movieID int64, language string) (*models.Subtitle, error) {
	const op = "subtitles.SubtitleService.Fetch"
	log := s.log.With("op", op, "movie_id", movieID, "language", language)
	movie, err := s.movies.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if movie.ExternalID == nil {
		return nil, ErrNoExternalID
	}
	file, err := s.provider.Fetch(ctx, *movie.ExternalID, language)
	if err != nil {
		if errors.Is(err, subclient.ErrSubtitleNotFound) {
			log.Info("provider has no subtitle")
			return nil, ErrNoSubtitle
		}
		log.Error("subtitle fetch failed", "error", err.Error())
		return nil, err
	}
	subtitle, err := s.storage.Insert(ctx, movieID, file.Text, file.Language, file.Source, file.Format)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	log.Info("subtitle stored", "length", len(file.Text), "format", file.Format)
	return subtitle, nil
}

// Latest returns the newest subtitle record for a movie.
func (s *SubtitleService) Latest(ctx context.Context, movieID int64) (*models.Subtitle, error) {
	const op = "subtitles.SubtitleService.Latest"
	subtitle, err := s.storage.LatestForMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoSubtitle
		}
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return subtitle, nil
}
