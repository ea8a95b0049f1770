package library

import (
	"context"
	"log/slog"
	"testing"

	"tinyviewers/proj/internal/domain/models"
	"tinyviewers/proj/internal/storage"
	pgmodels "tinyviewers/proj/internal/storage/postgres/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedKey struct{ userID, movieID int64 }

type fakeLibraryStorage struct {
	saved map[savedKey]bool
}

func newFakeLibraryStorage() *fakeLibraryStorage {
	return &fakeLibraryStorage{saved: make(map[savedKey]bool)}
}

func (s *fakeLibraryStorage) Insert(ctx context.Context, userID, movieID int64) (*models.SavedMovie, error) {
	key := savedKey{userID, movieID}
	if s.saved[key] {
		return nil, storage.ErrConflict
	}
	s.saved[key] = true
	return &models.SavedMovie{UserID: userID, MovieID: movieID}, nil
}

func (s *fakeLibraryStorage) Delete(ctx context.Context, userID, movieID int64) error {
	key := savedKey{userID, movieID}
	if !s.saved[key] {
		return storage.ErrNotFound
	}
	delete(s.saved, key)
	return nil
}

func (s *fakeLibraryStorage) ListForUser(ctx context.Context, userID int64) ([]pgmodels.LibraryEntry, int, error) {
	var entries []pgmodels.LibraryEntry
	for key := range s.saved {
		if key.userID == userID {
			entries = append(entries, pgmodels.LibraryEntry{Movie: models.Movie{ID: key.movieID}})
		}
	}
	return entries, len(entries), nil
}

type fakeMovieGetter struct {
	movies map[int64]*models.Movie
}

func (g *fakeMovieGetter) Get(ctx context.Context, id int64) (*models.Movie, error) {
	movie, ok := g.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return movie, nil
}

func newTestService() (*LibraryService, *fakeLibraryStorage) {
	store := newFakeLibraryStorage()
	getter := &fakeMovieGetter{movies: map[int64]*models.Movie{
		1: {ID: 1, Title: "The Brave Fox"},
	}}
	return New(slog.Default(), store, getter), store
}

func TestSaveAndList(t *testing.T) {
	service, _ := newTestService()
	saved, err := service.Save(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.MovieID)

	entries, total, err := service.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ID)
}

func TestSaveUnknownMovie(t *testing.T) {
	service, _ := newTestService()
	_, err := service.Save(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestSaveTwiceConflicts(t *testing.T) {
	service, _ := newTestService()
	_, err := service.Save(context.Background(), 10, 1)
	require.NoError(t, err)
	_, err = service.Save(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrAlreadySaved)
}

func TestUnsave(t *testing.T) {
	service, store := newTestService()
	_, err := service.Save(context.Background(), 10, 1)
	require.NoError(t, err)

	require.NoError(t, service.Unsave(context.Background(), 10, 1))
	assert.Empty(t, store.saved)

	err = service.Unsave(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrNotSaved)
}
