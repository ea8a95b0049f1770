package contentai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	// On HTTP 429 the client waits (retryCount+1) * backoffUnit before the
	// next attempt, up to maxRetries retries total.
	maxRetries = 3
)

var ErrMissingAPIKey = errors.New("contentai: api key is not set")

// InvocationError is returned when the content-analysis API call fails after
// exhausting retries or with a non-retryable status.
type InvocationError struct {
	Status int
	Reason string
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("content analysis request failed: %d %s", e.Status, e.Reason)
}

type Client struct {
	log         *slog.Logger
	apiKey      string
	model       string
	maxTokens   int
	baseURL     string
	httpc       *http.Client
	backoffUnit time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func New(log *slog.Logger, apiKey, model string, maxTokens int, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		log:         log,
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		baseURL:     defaultBaseURL,
		httpc:       &http.Client{Timeout: timeout},
		backoffUnit: 30 * time.Second,
		sleep:       sleepCtx,
	}, nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends the prompt to the messages endpoint and returns the first
// text segment of the reply. Rate-limit responses are retried with growing
// delays; every other failure is terminal.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "contentai.Client.Complete"
	log := c.log.With("op", op, "model", c.model)
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	for retryCount := 0; ; retryCount++ {
		reply, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return reply, nil
		}
		if !retryable || retryCount >= maxRetries {
			return "", err
		}
		wait := time.Duration(retryCount+1) * c.backoffUnit
		log.Warn("rate limited, backing off", "wait", wait, "retry", retryCount+1)
		if err := c.sleep(ctx, wait); err != nil {
			return "", err
		}
	}
}

func (c *Client) attempt(ctx context.Context, body []byte) (reply string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return "", true, &InvocationError{Status: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", false, &InvocationError{Status: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}
	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decoding content analysis response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", false, &InvocationError{Status: resp.StatusCode, Reason: "empty reply"}
	}
	return parsed.Content[0].Text, false, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
