package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"tinyviewers/proj/internal/domain/fields"
	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"
)

// MinSubtitleLength is the shortest subtitle text worth sending to the model.
const MinSubtitleLength = 100

type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Storage interface {
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	LatestSubtitle(ctx context.Context, movieID int64) (*models.Subtitle, error)
	ReplaceAnalysis(ctx context.Context, movieID int64, scenes []models.Scene, scores fields.AgeScores) (int, error)
	RecordAnalysis(ctx context.Context, movieID int64, scores fields.AgeScores, sceneCount int32) (*models.AnalysisRecord, error)
	ListRecords(ctx context.Context, movieID int64) ([]models.AnalysisRecord, error)
	ListScenes(ctx context.Context, movieID int64) ([]models.Scene, error)
}

// Result is what a successful pipeline run reports back to the caller.
type Result struct {
	ScenesCount   int              `json:"scenes_count"`
	OverallScores fields.AgeScores `json:"overall_scores"`
}

type Service struct {
	log     *slog.Logger
	model   ModelClient
	storage Storage

	// One lock per movie so concurrent re-analyze triggers for the same
	// title serialize instead of interleaving their writes.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(log *slog.Logger, model ModelClient, storage Storage) *Service {
	return &Service{
		log:     log,
		model:   model,
		storage: storage,
		locks:   make(map[int64]*sync.Mutex),
	}
}

// Run executes the whole pipeline for one movie: load the newest subtitle,
// build the prompt, call the model, normalize the reply and replace the
// movie's analysis generation. Any failure is terminal for this invocation;
// re-running Run is the recovery path.
func (s *Service) Run(ctx context.Context, movieID int64) (*Result, error) {
	const op = "analysis.Service.Run"
	log := s.log.With("op", op, "movie_id", movieID)

	lock := s.movieLock(movieID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.storage.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	subtitle, err := s.storage.LatestSubtitle(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("no subtitle for movie")
			return nil, ErrSubtitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if len(strings.TrimSpace(subtitle.Content)) < MinSubtitleLength {
		log.Info("subtitle too short", "length", len(subtitle.Content))
		return nil, ErrSubtitleTooShort
	}

	reply, err := s.model.Complete(ctx, BuildPrompt(subtitle.Content))
	if err != nil {
		log.Error("model invocation failed", "error", err.Error())
		return nil, err
	}
	norm, err := normalizeReply(reply)
	if err != nil {
		log.Error("reply normalization failed", "error", err.Error(), "reply_preview", preview(reply))
		return nil, err
	}

	count, err := s.storage.ReplaceAnalysis(ctx, movieID, norm.Scenes, norm.Scores)
	if err != nil {
		log.Error("persisting analysis failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	// History is display-only; a failed snapshot must not fail the run.
	if _, err := s.storage.RecordAnalysis(ctx, movieID, norm.Scores, int32(count)); err != nil {
		log.Warn("recording analysis snapshot failed", "error", err.Error())
	}
	log.Info("analysis complete", "scenes", count)
	return &Result{ScenesCount: count, OverallScores: norm.Scores}, nil
}

// History lists past analysis snapshots for the trend display, newest first.
func (s *Service) History(ctx context.Context, movieID int64) ([]models.AnalysisRecord, error) {
	const op = "analysis.Service.History"
	records, err := s.storage.ListRecords(ctx, movieID)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return records, nil
}

// Scenes lists the current analysis generation's scenes for a movie.
func (s *Service) Scenes(ctx context.Context, movieID int64) ([]models.Scene, error) {
	const op = "analysis.Service.Scenes"
	scenes, err := s.storage.ListScenes(ctx, movieID)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return scenes, nil
}

func (s *Service) movieLock(movieID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[movieID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[movieID] = lock
	}
	return lock
}

func preview(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
