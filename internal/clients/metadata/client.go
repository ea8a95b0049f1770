package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p"
	posterSize     = "w500"
)

var (
	ErrNotConfigured = errors.New("metadata: api key is not set")
	ErrTitleNotFound = errors.New("metadata: title not found")
)

// MovieInfo is the subset of provider metadata the catalog stores.
type MovieInfo struct {
	Title     string
	Summary   string
	PosterURL string
	Rating    float64
	Year      *int32
}

type Client struct {
	log     *slog.Logger
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func New(log *slog.Logger, apiKey string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type movieResponse struct {
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
}

// Lookup fetches metadata for a movie by its provider ID.
func (c *Client) Lookup(ctx context.Context, externalID string) (*MovieInfo, error) {
	const op = "metadata.Client.Lookup"
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	log := c.log.With("op", op, "external_id", externalID)
	endpoint := fmt.Sprintf("%s/movie/%s?api_key=%s", c.baseURL, url.PathEscape(externalID), url.QueryEscape(c.apiKey))
	var parsed movieResponse
	err := retry.Do(
		func() error { return c.doGET(ctx, endpoint, &parsed) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("metadata request failed, retrying", "attempt", n+1, "error", err.Error())
		}),
	)
	if err != nil {
		return nil, err
	}
	info := &MovieInfo{
		Title:   parsed.Title,
		Summary: parsed.Overview,
		Rating:  parsed.VoteAverage,
	}
	if parsed.PosterPath != "" {
		info.PosterURL = fmt.Sprintf("%s/%s%s", imageBaseURL, posterSize, parsed.PosterPath)
	}
	if len(parsed.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(parsed.ReleaseDate[:4]); err == nil {
			y := int32(year)
			info.Year = &y
		}
	}
	return info, nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("metadata request failed: %d %s", e.status, http.StatusText(e.status))
}

func isRetryable(err error) bool {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.status == http.StatusTooManyRequests || statusErr.status >= 500
	}
	// network errors are worth a retry, a decode failure is not
	return !errors.Is(err, ErrTitleNotFound)
}

func (c *Client) doGET(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrTitleNotFound
	}
	if resp.StatusCode >= 400 {
		return &statusError{status: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
