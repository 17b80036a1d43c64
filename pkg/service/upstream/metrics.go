package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/demografi/pkg/domain/types"
)

var (
	upstreamAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "demografi",
		Subsystem: "upstream",
		Name:      "attempts_total",
		Help:      "Total number of statistics service requests broken down by breakdown and result.",
	}, []string{"breakdown", "result"})

	upstreamOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "demografi",
		Subsystem: "upstream",
		Name:      "failed_fetches_total",
		Help:      "Total number of fetches that returned no data broken down by breakdown and reason.",
	}, []string{"breakdown", "reason"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "demografi",
		Subsystem: "upstream",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of successful fetches including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"breakdown"})
)

func recordAttempt(b types.Breakdown, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	upstreamAttempts.WithLabelValues(b.String(), result).Inc()
}

func recordExhausted(b types.Breakdown) {
	upstreamOutcomes.WithLabelValues(b.String(), "exhausted").Inc()
}

func recordAbandoned(b types.Breakdown) {
	upstreamOutcomes.WithLabelValues(b.String(), "abandoned").Inc()
}

func recordDuration(b types.Breakdown, d time.Duration) {
	upstreamDuration.WithLabelValues(b.String()).Observe(d.Seconds())
}
