// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysisRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_total",
			Help: "Total number of analysis runs by outcome",
		},
		[]string{"region", "status"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "analysis_run_duration_seconds",
			Help: "Duration of a full analysis run in seconds",
		},
		[]string{"region"},
	)

	CandidatesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_candidates_scored_total",
			Help: "Total number of grid candidates scored",
		},
		[]string{"region"},
	)

	SitesSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_sites_selected_total",
			Help: "Total number of optimal sites selected",
		},
		[]string{"region"},
	)

	SitesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_sites_dropped_total",
			Help: "Sites dropped before persistence by reason",
		},
		[]string{"region", "reason"},
	)

	ResourcesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_resources_skipped_total",
			Help: "Catalog resources skipped for malformed coordinates",
		},
		[]string{"category"},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Catalog snapshot cache requests by result",
		},
		[]string{"result"},
	)
)
