// Package metrics defines the Prometheus metric collectors used by the
// generation pipeline and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	DocumentsGenerated prometheus.Counter
	KeywordsIndexed    prometheus.Gauge
	PostingsTotal      prometheus.Gauge
	QueriesSynthesized *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
	SinkWritesTotal    *prometheus.CounterVec
}

// New creates and registers all pipeline metrics on the given registerer.
// Passing a fresh registry keeps tests independent; the default registry is
// used by the CLI.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsGenerated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "datagen_documents_generated_total",
				Help: "Total synthetic documents generated.",
			},
		),
		KeywordsIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "datagen_index_keywords",
				Help: "Number of unique keywords in the inverted index.",
			},
		),
		PostingsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "datagen_index_postings",
				Help: "Total document-id entries across all posting lists.",
			},
		),
		QueriesSynthesized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datagen_queries_synthesized_total",
				Help: "Benchmark queries synthesized by type (single, AND, OR).",
			},
			[]string{"type"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datagen_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
			},
			[]string{"stage"},
		),
		SinkWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datagen_sink_writes_total",
				Help: "Sink write operations by sink and status.",
			},
			[]string{"sink", "status"},
		),
	}

	reg.MustRegister(
		m.DocumentsGenerated,
		m.KeywordsIndexed,
		m.PostingsTotal,
		m.QueriesSynthesized,
		m.StageDuration,
		m.SinkWritesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
