package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/domain/interfaces"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

const (
	defaultAttempts  = 3
	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 5 * time.Second
	defaultTimeout   = 10 * time.Second

	// maxBodySize bounds a single statistics payload
	maxBodySize = 32 << 20
)

// Client fetches statistics from the remote statistics service
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	attempts   int
	baseDelay  time.Duration
	maxDelay   time.Duration
	timeout    time.Duration
}

var _ interfaces.StatsSource = &Client{}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAttempts sets the total number of attempts per fetch, including the first
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithBackoff sets the delay before the first retry and its upper bound.
// The delay doubles with every further retry.
func WithBackoff(base, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = base
		c.maxDelay = maxDelay
	}
}

// WithTimeout sets the timeout of a single attempt
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for the statistics service at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid upstream URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("upstream URL must be http or https", goerr.V("url", baseURL))
	}
	if u.Host == "" {
		return nil, goerr.New("upstream URL has no host", goerr.V("url", baseURL))
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		attempts:   defaultAttempts,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name implements interfaces.StatsSource
func (c *Client) Name() string {
	return "upstream:" + c.baseURL.Host
}

// Records fetches and flattens the statistics of breakdown b. Failed
// attempts are retried with increasing delay. When the context ends the
// fetch is abandoned and no result is returned.
func (c *Client) Records(ctx context.Context, b types.Breakdown) ([]*model.Record, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	fetchID := types.NewFetchID()
	logger := ctxlog.From(ctx).With(
		slog.String("fetch_id", fetchID.String()),
		slog.String("breakdown", b.String()),
	)

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := backoff(attempt-1, c.baseDelay, c.maxDelay)
			logger.Debug("Retrying upstream fetch",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
			)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				recordAbandoned(b)
				return nil, goerr.Wrap(ctx.Err(), "upstream fetch abandoned",
					goerr.V("fetch_id", fetchID),
					goerr.V("attempt", attempt))
			case <-timer.C:
			}
		}

		nodes, err := c.fetchOnce(ctx, b)
		if err == nil {
			recordAttempt(b, true)
			recordDuration(b, time.Since(start))
			logger.Debug("Fetched upstream statistics",
				slog.Int("attempt", attempt),
				slog.Int("groups", len(nodes)),
			)
			return model.Flatten(nodes), nil
		}

		recordAttempt(b, false)
		lastErr = err
		if ctx.Err() != nil {
			recordAbandoned(b)
			return nil, goerr.Wrap(ctx.Err(), "upstream fetch abandoned",
				goerr.V("fetch_id", fetchID),
				goerr.V("attempt", attempt))
		}

		logger.Warn("Upstream fetch failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.attempts),
			slog.Any("error", err),
		)

		if !isRetryable(err) {
			break
		}
	}

	recordExhausted(b)
	return nil, goerr.Wrap(model.ErrUpstreamUnavailable, "upstream fetch failed",
		goerr.V("fetch_id", fetchID),
		goerr.V("breakdown", b),
		goerr.V("source", c.Name()),
		goerr.V("last_error", lastErr.Error()))
}

func (c *Client) endpoint(b types.Breakdown) string {
	return c.baseURL.JoinPath("statistics", b.String()).String()
}

func (c *Client) fetchOnce(ctx context.Context, b types.Breakdown) ([]*model.GroupNode, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(b), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upstream request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "upstream request failed", goerr.V("url", req.URL.String()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &statusError{code: resp.StatusCode}
	}

	var nodes []*model.GroupNode
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&nodes); err != nil {
		return nil, goerr.Wrap(err, "failed to decode upstream statistics", goerr.V("url", req.URL.String()))
	}

	return nodes, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "unexpected upstream status: " + http.StatusText(e.code)
}

// isRetryable reports whether another attempt may succeed. Client errors
// other than rate limiting will not.
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	return true
}

// backoff returns base * 2^(retry-1), capped at maxDelay
func backoff(retry int, base, maxDelay time.Duration) time.Duration {
	if retry <= 0 || base <= 0 {
		return 0
	}
	d := base
	for i := 1; i < retry; i++ {
		d *= 2
		if maxDelay > 0 && d >= maxDelay {
			return maxDelay
		}
	}
	if maxDelay > 0 && d > maxDelay {
		return maxDelay
	}
	return d
}
