package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/demografi/pkg/domain/model"
	"github.com/secmon-lab/demografi/pkg/domain/types"
	"github.com/secmon-lab/demografi/pkg/service/upstream"
)

const statisticsBody = `[
	{
		"name": "IT",
		"children": [
			{"name": "Drift", "children": [
				{"name": "Utvikler", "counts": {"female": 3, "male": 5}},
				{"name": "Arkitekt", "masked": true}
			]}
		]
	},
	{"name": "HR", "counts": {"female": "4", "male": null}}
]`

func newTestClient(t *testing.T, url string, opts ...upstream.Option) *upstream.Client {
	opts = append([]upstream.Option{upstream.WithBackoff(time.Millisecond, 5*time.Millisecond)}, opts...)
	client, err := upstream.New(url, opts...)
	gt.NoError(t, err).Required()
	return client
}

func TestClientRecords(t *testing.T) {
	t.Run("fetch and flatten statistics", func(t *testing.T) {
		var path string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(statisticsBody))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL+"/api/")
		records, err := client.Records(context.Background(), types.BreakdownGender)
		gt.NoError(t, err).Required()

		gt.Equal(t, path, "/api/statistics/gender")
		gt.Equal(t, len(records), 5)
		gt.Equal(t, *records[0], model.Record{
			Department: "IT", Section: "Drift", Role: "Utvikler", Category: "female", Count: 3,
		})
		gt.True(t, records[2].Masked)
		gt.Equal(t, records[2].Role, "Arkitekt")
		gt.Equal(t, records[3].Count, 4)
		gt.Equal(t, records[4].Count, 0)
	})

	t.Run("retry until success", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`[{"name": "IT", "counts": {"20-29": 1}}]`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, upstream.WithAttempts(3))
		records, err := client.Records(context.Background(), types.BreakdownAge)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(records), 1)
		gt.Equal(t, hits.Load(), int32(3))
	})

	t.Run("bounded attempts surface as unavailable", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, upstream.WithAttempts(4))
		records, err := client.Records(context.Background(), types.BreakdownGender)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrUpstreamUnavailable))
		gt.Equal(t, len(records), 0)
		gt.Equal(t, hits.Load(), int32(4))
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		_, err := client.Records(context.Background(), types.BreakdownGender)
		gt.True(t, errors.Is(err, model.ErrUpstreamUnavailable))
		gt.Equal(t, hits.Load(), int32(1))
	})

	t.Run("rate limited responses are retried", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		_, err := client.Records(context.Background(), types.BreakdownGender)
		gt.NoError(t, err)
		gt.Equal(t, hits.Load(), int32(2))
	})

	t.Run("malformed body is retried then reported", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "an array"`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, upstream.WithAttempts(2))
		_, err := client.Records(context.Background(), types.BreakdownGender)
		gt.True(t, errors.Is(err, model.ErrUpstreamUnavailable))
	})

	t.Run("abandoned fetch stops retrying", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := upstream.New(srv.URL, upstream.WithBackoff(time.Minute, time.Minute))
		gt.NoError(t, err).Required()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		records, err := client.Records(ctx, types.BreakdownGender)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, context.DeadlineExceeded))
		gt.False(t, errors.Is(err, model.ErrUpstreamUnavailable))
		gt.Equal(t, len(records), 0)
		gt.True(t, time.Since(start) < 5*time.Second)
		gt.Equal(t, hits.Load(), int32(1))
	})

	t.Run("invalid breakdown makes no request", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL)
		_, err := client.Records(context.Background(), types.Breakdown("income"))
		gt.Error(t, err)
		gt.Equal(t, hits.Load(), int32(0))
	})
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https", "https://stats.example.com/api", true},
		{"http with port", "http://localhost:9000", true},
		{"missing scheme", "stats.example.com", false},
		{"unsupported scheme", "ftp://stats.example.com", false},
		{"missing host", "http://", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := upstream.New(tc.url)
			if tc.valid {
				gt.NoError(t, err)
				gt.S(t, client.Name()).Contains("upstream:")
			} else {
				gt.Error(t, err)
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	gt.Equal(t, upstream.Backoff(0, base, time.Second), time.Duration(0))
	gt.Equal(t, upstream.Backoff(1, base, time.Second), 100*time.Millisecond)
	gt.Equal(t, upstream.Backoff(2, base, time.Second), 200*time.Millisecond)
	gt.Equal(t, upstream.Backoff(3, base, time.Second), 400*time.Millisecond)
	gt.Equal(t, upstream.Backoff(5, base, time.Second), time.Second)
	gt.Equal(t, upstream.Backoff(3, base, 0), 400*time.Millisecond)
}
