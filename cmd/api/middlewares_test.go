package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tinyviewers/proj/internal/config"
	"tinyviewers/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthSecret = "test-secret"

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{AuthSecret: testAuthSecret}
	return NewApplication(cfg, slog.Default(), nil)
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testAuthSecret))
	require.NoError(t, err)
	return signed
}

func userEchoHandler(app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.contextUser(r)
		app.Http.Ok(w, r, envelop{"id": user.ID, "anonymous": user.IsAnonymous()}, "")
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	app := newTestApplication(t)
	token := signTestToken(t, jwt.MapClaims{
		"uid":   float64(7),
		"email": "parent@example.com",
		"name":  "Pat",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	var seen *models.User
	handler := app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = app.contextUser(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.ID)
	assert.Equal(t, "parent@example.com", seen.Email)
	assert.Equal(t, "Pat", seen.Name)
	assert.False(t, seen.IsAnonymous())
}

func TestAuthenticateMissingHeaderIsAnonymous(t *testing.T) {
	app := newTestApplication(t)
	var seen *models.User
	handler := app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = app.contextUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.True(t, seen.IsAnonymous())
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	app := newTestApplication(t)
	handler := app.Authenticate(userEchoHandler(app))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticateBadSignature(t *testing.T) {
	app := newTestApplication(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"uid": float64(1)})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	handler := app.Authenticate(userEchoHandler(app))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	app := newTestApplication(t)
	token := signTestToken(t, jwt.MapClaims{
		"uid": float64(7),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	handler := app.Authenticate(userEchoHandler(app))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthenticatedUser(t *testing.T) {
	app := newTestApplication(t)
	var called bool
	protected := app.requireAuthenticatedUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	chained := app.Authenticate(protected)
	token := signTestToken(t, jwt.MapClaims{
		"uid": float64(3),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	chained.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	app := newTestApplication(t)
	handler := app.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
