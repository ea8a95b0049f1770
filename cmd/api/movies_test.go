package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tinyviewers/proj/internal/clients/metadata"
	"tinyviewers/proj/internal/config"
	"tinyviewers/proj/internal/domain/filters"
	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/services"
	"tinyviewers/proj/internal/services/movies"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMovieStorage struct {
	lastFilters filters.Filters
}

func (s *fakeMovieStorage) Get(ctx context.Context, id int64) (*models.Movie, error) {
	return &models.Movie{ID: id}, nil
}

func (s *fakeMovieStorage) Insert(ctx context.Context, title, summary, posterURL string, externalID *string, year *int32) (*models.Movie, error) {
	return &models.Movie{Title: title}, nil
}

func (s *fakeMovieStorage) List(ctx context.Context, title string, f filters.Filters) ([]models.Movie, int, error) {
	s.lastFilters = f
	return []models.Movie{}, 0, nil
}

func (s *fakeMovieStorage) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	return movie, nil
}

func (s *fakeMovieStorage) Delete(ctx context.Context, id int64) error {
	return nil
}

type fakeMetadataProvider struct{}

func (p *fakeMetadataProvider) Lookup(ctx context.Context, externalID string) (*metadata.MovieInfo, error) {
	return nil, metadata.ErrNotConfigured
}

func newMoviesTestApplication(t *testing.T) (*Application, *fakeMovieStorage) {
	t.Helper()
	store := &fakeMovieStorage{}
	app := NewApplication(&config.Config{}, slog.Default(), &services.Services{
		Movies: movies.New(slog.Default(), store, &fakeMetadataProvider{}),
	})
	return app, store
}

func TestListMoviesDefaultsZeroQueryValues(t *testing.T) {
	app, store := newMoviesTestApplication(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies?page=0&page_size=0&sort=", nil)
	rec := httptest.NewRecorder()
	app.listMovies(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.lastFilters.Page)
	assert.Equal(t, 20, store.lastFilters.PageSize)
	assert.Equal(t, "id", store.lastFilters.Sort)
}

func TestListMoviesNegativePageIsUnprocessable(t *testing.T) {
	app, _ := newMoviesTestApplication(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies?page=-1", nil)
	rec := httptest.NewRecorder()
	app.listMovies(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListMoviesUnknownSortIsUnprocessable(t *testing.T) {
	app, _ := newMoviesTestApplication(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies?sort=popularity", nil)
	rec := httptest.NewRecorder()
	app.listMovies(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
