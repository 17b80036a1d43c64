package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/demografi/pkg/domain/model"
)

var (
	viewBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "demografi",
		Subsystem: "dashboard",
		Name:      "view_builds_total",
		Help:      "Total number of view builds broken down by breakdown, grouping and result.",
	}, []string{"breakdown", "group_by", "result"})

	exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "demografi",
		Subsystem: "dashboard",
		Name:      "exports_total",
		Help:      "Total number of spreadsheet exports broken down by breakdown.",
	}, []string{"breakdown"})
)

func recordViewBuild(cfg model.ViewConfig, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	viewBuilds.WithLabelValues(cfg.Breakdown.String(), string(cfg.GroupBy), result).Inc()
}

func recordExport(cfg model.ViewConfig) {
	exports.WithLabelValues(cfg.Breakdown.String()).Inc()
}
