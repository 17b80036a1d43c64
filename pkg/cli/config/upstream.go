package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/demografi/pkg/service/upstream"
	"github.com/urfave/cli/v3"
)

// Upstream holds the statistics service configuration
type Upstream struct {
	URL        string
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
	Timeout    time.Duration
}

// Flags returns CLI flags for Upstream configuration
func (u *Upstream) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upstream-url",
			Usage:       "Base URL of the statistics service",
			Category:    "Upstream",
			Sources:     cli.EnvVars("DEMOGRAFI_UPSTREAM_URL"),
			Destination: &u.URL,
		},
		&cli.IntFlag{
			Name:        "upstream-attempts",
			Usage:       "Attempts per fetch including the first",
			Category:    "Upstream",
			Value:       3,
			Sources:     cli.EnvVars("DEMOGRAFI_UPSTREAM_ATTEMPTS"),
			Destination: &u.Attempts,
		},
		&cli.DurationFlag{
			Name:        "upstream-backoff",
			Usage:       "Delay before the first retry, doubled for every further retry",
			Category:    "Upstream",
			Value:       500 * time.Millisecond,
			Sources:     cli.EnvVars("DEMOGRAFI_UPSTREAM_BACKOFF"),
			Destination: &u.Backoff,
		},
		&cli.DurationFlag{
			Name:        "upstream-max-backoff",
			Usage:       "Upper bound of the retry delay",
			Category:    "Upstream",
			Value:       5 * time.Second,
			Sources:     cli.EnvVars("DEMOGRAFI_UPSTREAM_MAX_BACKOFF"),
			Destination: &u.MaxBackoff,
		},
		&cli.DurationFlag{
			Name:        "upstream-timeout",
			Usage:       "Timeout of a single fetch attempt",
			Category:    "Upstream",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("DEMOGRAFI_UPSTREAM_TIMEOUT"),
			Destination: &u.Timeout,
		},
	}
}

// IsConfigured checks if a statistics service is configured
func (u *Upstream) IsConfigured() bool {
	return u.URL != ""
}

// Validate validates the upstream configuration
func (u *Upstream) Validate() error {
	if u.Attempts < 1 {
		return goerr.New("upstream attempts must be at least 1", goerr.V("attempts", u.Attempts))
	}
	if u.Backoff < 0 || u.MaxBackoff < 0 {
		return goerr.New("upstream backoff must not be negative",
			goerr.V("backoff", u.Backoff),
			goerr.V("max_backoff", u.MaxBackoff))
	}
	if u.MaxBackoff > 0 && u.MaxBackoff < u.Backoff {
		return goerr.New("upstream max backoff is shorter than backoff",
			goerr.V("backoff", u.Backoff),
			goerr.V("max_backoff", u.MaxBackoff))
	}
	if u.Timeout <= 0 {
		return goerr.New("upstream timeout must be positive", goerr.V("timeout", u.Timeout))
	}
	return nil
}

// Configure creates the statistics service client
func (u *Upstream) Configure() (*upstream.Client, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	client, err := upstream.New(u.URL,
		upstream.WithAttempts(u.Attempts),
		upstream.WithBackoff(u.Backoff, u.MaxBackoff),
		upstream.WithTimeout(u.Timeout),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upstream client")
	}
	return client, nil
}

// LogValue returns structured log value
func (u Upstream) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", u.URL),
		slog.Int("attempts", u.Attempts),
		slog.Duration("backoff", u.Backoff),
		slog.Duration("max_backoff", u.MaxBackoff),
		slog.Duration("timeout", u.Timeout),
	)
}
