package contentai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]time.Duration) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(slog.Default(), "test-key", "test-model", 4096, time.Second)
	require.NoError(t, err)
	client.baseURL = server.URL
	waits := &[]time.Duration{}
	client.sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return client, waits
}

func TestCompleteSuccess(t *testing.T) {
	client, waits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"content":[{"type":"text","text":"hello"}]}`))
	})
	reply, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
	assert.Empty(t, *waits)
}

func TestCompleteBackoffSchedule(t *testing.T) {
	attempts := 0
	client, waits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"done"}]}`))
	})
	reply, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "done", reply)
	assert.Equal(t, 4, attempts)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second, 90 * time.Second}, *waits)
}

func TestCompleteRetriesExhausted(t *testing.T) {
	attempts := 0
	client, waits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := client.Complete(context.Background(), "prompt")
	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, http.StatusTooManyRequests, invErr.Status)
	assert.Equal(t, 4, attempts)
	// no wait after the final 429
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second, 90 * time.Second}, *waits)
}

func TestCompleteNonRetryableStatus(t *testing.T) {
	attempts := 0
	client, waits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})
	_, err := client.Complete(context.Background(), "prompt")
	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, http.StatusBadRequest, invErr.Status)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *waits)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(slog.Default(), "", "test-model", 4096, time.Second)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
