// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AnalysesTotal tracks completed clustering analyses per plan.
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clustering_analyses_total",
			Help: "Total completed clustering analyses",
		},
		[]string{"plan"},
	)

	// ClusteringDuration tracks the compute time of a clustering run.
	ClusteringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clustering_duration_seconds",
			Help:    "Clustering pipeline duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// KeywordsPerAnalysis tracks how many keywords each analysis clustered.
	KeywordsPerAnalysis = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clustering_keywords_per_analysis",
			Help:    "Keywords clustered per analysis",
			Buckets: []float64{2, 5, 10, 25, 50, 100, 250, 500, 1000, 2000},
		},
	)

	// ClustersPerAnalysis tracks how many clusters each analysis produced.
	ClustersPerAnalysis = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clustering_clusters_per_analysis",
			Help:    "Clusters produced per analysis",
			Buckets: []float64{1, 2, 3, 5, 8, 10, 15, 20, 25},
		},
	)

	// GuardRejections tracks access-guard rejections by reason.
	GuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clustering_guard_rejections_total",
			Help: "Clustering requests rejected by the access guard",
		},
		[]string{"reason"},
	)

	// ExportsTotal tracks analysis exports by format.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clustering_exports_total",
			Help: "Total analysis exports",
		},
		[]string{"format"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAnalysis records metrics for a completed clustering analysis.
func RecordAnalysis(plan string, keywords, clusters int, duration float64) {
	AnalysesTotal.WithLabelValues(plan).Inc()
	ClusteringDuration.Observe(duration)
	KeywordsPerAnalysis.Observe(float64(keywords))
	ClustersPerAnalysis.Observe(float64(clusters))
}
