package subtitles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
)

const defaultBaseURL = "https://api.opensubtitles.com/api/v1"

var (
	ErrNotConfigured     = errors.New("subtitles: api key is not set")
	ErrSubtitleNotFound  = errors.New("subtitles: no subtitle found for title")
	ErrUnsupportedFormat = errors.New("subtitles: provider returned an unsupported format")
)

// File is a downloaded subtitle ready to be stored: plain text plus provenance.
type File struct {
	Text     string
	Language string
	Source   string
	Format   string
}

type Client struct {
	log     *slog.Logger
	apiKey  string
	source  string
	baseURL string
	httpc   *http.Client
}

func New(log *slog.Logger, apiKey string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		apiKey:  apiKey,
		source:  "opensubtitles",
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type downloadResponse struct {
	Data struct {
		Content  string `json:"content"`
		Language string `json:"language"`
		Format   string `json:"format"`
	} `json:"data"`
}

// Fetch downloads the best subtitle for a movie by its provider ID. The
// returned text is plain dialogue, already stripped of cue formatting by the
// provider.
func (c *Client) Fetch(ctx context.Context, externalID, language string) (*File, error) {
	const op = "subtitles.Client.Fetch"
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	log := c.log.With("op", op, "external_id", externalID, "language", language)
	endpoint := fmt.Sprintf(
		"%s/download?tmdb_id=%s&languages=%s",
		c.baseURL,
		url.QueryEscape(externalID),
		url.QueryEscape(language),
	)
	var parsed downloadResponse
	err := retry.Do(
		func() error { return c.doGET(ctx, endpoint, &parsed) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("subtitle request failed, retrying", "attempt", n+1, "error", err.Error())
		}),
	)
	if err != nil {
		return nil, err
	}
	if parsed.Data.Content == "" {
		return nil, ErrSubtitleNotFound
	}
	lang := parsed.Data.Language
	if lang == "" {
		lang = language
	}
	format := parsed.Data.Format
	if format == "" {
		format = "srt"
	}
	return &File{
		Text:     parsed.Data.Content,
		Language: lang,
		Source:   c.source,
		Format:   format,
	}, nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("subtitle request failed: %d %s", e.status, http.StatusText(e.status))
}

func isRetryable(err error) bool {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.status == http.StatusTooManyRequests || statusErr.status >= 500
	}
	return !errors.Is(err, ErrSubtitleNotFound)
}

func (c *Client) doGET(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", c.apiKey)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrSubtitleNotFound
	}
	if resp.StatusCode >= 400 {
		return &statusError{status: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
