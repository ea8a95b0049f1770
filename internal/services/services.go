package services

import (
	"context"
	"log/slog"

	"tinyviewers/proj/internal/clients/contentai"
	"tinyviewers/proj/internal/clients/metadata"
	subclient "tinyviewers/proj/internal/clients/subtitles"
	"tinyviewers/proj/internal/config"
	"tinyviewers/proj/internal/domain/fields"
	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/mails"
	"tinyviewers/proj/internal/services/analysis"
	"tinyviewers/proj/internal/services/feedback"
	"tinyviewers/proj/internal/services/library"
	"tinyviewers/proj/internal/services/movies"
	"tinyviewers/proj/internal/services/subtitles"
	pgmodels "tinyviewers/proj/internal/storage/postgres/models"
)

type Services struct {
	Movies    *movies.MovieService
	Library   *library.LibraryService
	Subtitles *subtitles.SubtitleService
	Analysis  *analysis.Service
	Feedback  *feedback.FeedbackService
}

func New(log *slog.Logger, cfg *config.Config, db *pgmodels.Models, taskExecutor feedback.TaskExecutor) *Services {
	mailer := mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
	model, err := contentai.New(
		log,
		cfg.Clients.ContentAI.APIKey,
		cfg.Clients.ContentAI.Model,
		cfg.Clients.ContentAI.MaxTokens,
		cfg.Clients.ContentAI.Timeout,
	)
	if err != nil {
		panic(err)
	}
	metadataClient := metadata.New(log, cfg.Clients.Metadata.APIKey, cfg.Clients.Metadata.Timeout)
	subtitleClient := subclient.New(log, cfg.Clients.Subtitles.APIKey, cfg.Clients.Subtitles.Timeout)
	return &Services{
		Movies:    movies.New(log, db.Movie, metadataClient),
		Library:   library.New(log, db.Saved, db.Movie),
		Subtitles: subtitles.New(log, db.Subtitle, db.Movie, subtitleClient),
		Analysis:  analysis.New(log, model, &analysisStorage{db: db}),
		Feedback:  feedback.New(log, mailer, taskExecutor, cfg.SMTPServer.Support),
	}
}

// analysisStorage gathers the movie, subtitle, scene and history models behind
// the single interface the pipeline wants.
type analysisStorage struct {
	db *pgmodels.Models
}

func (s *analysisStorage) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	return s.db.Movie.Get(ctx, id)
}

func (s *analysisStorage) LatestSubtitle(ctx context.Context, movieID int64) (*models.Subtitle, error) {
	return s.db.Subtitle.LatestForMovie(ctx, movieID)
}

func (s *analysisStorage) ReplaceAnalysis(ctx context.Context, movieID int64, scenes []models.Scene, scores fields.AgeScores) (int, error) {
	return s.db.Scene.ReplaceAnalysis(ctx, movieID, scenes, scores)
}

func (s *analysisStorage) RecordAnalysis(ctx context.Context, movieID int64, scores fields.AgeScores, sceneCount int32) (*models.AnalysisRecord, error) {
	return s.db.Analysis.Insert(ctx, movieID, scores, sceneCount)
}

func (s *analysisStorage) ListRecords(ctx context.Context, movieID int64) ([]models.AnalysisRecord, error) {
	return s.db.Analysis.ListForMovie(ctx, movieID)
}

func (s *analysisStorage) ListScenes(ctx context.Context, movieID int64) ([]models.Scene, error) {
	return s.db.Scene.ListForMovie(ctx, movieID)
}
