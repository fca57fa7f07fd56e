// Package pipeline runs the linear batch flow: generate documents, build
// the inverted index, compute statistics, synthesize benchmark queries,
// verify, and fan the result out to the configured sinks.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ehealth-bench/datagen/internal/dataset"
	"github.com/ehealth-bench/datagen/internal/generator"
	"github.com/ehealth-bench/datagen/internal/index"
	"github.com/ehealth-bench/datagen/internal/query"
	"github.com/ehealth-bench/datagen/internal/stats"
	"github.com/ehealth-bench/datagen/internal/verify"
	"github.com/ehealth-bench/datagen/pkg/config"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
	"github.com/ehealth-bench/datagen/pkg/metrics"
)

// Result is the complete output of one generation run.
type Result struct {
	RunID       string
	Seed        int64
	GeneratedAt time.Time
	Duration    time.Duration
	Documents   []dataset.Document
	Index       index.Index
	Statistics  stats.Statistics
	Queries     []query.Query
}

// Sink receives a finished Result. Sinks run concurrently; they must not
// mutate the Result.
type Sink interface {
	Name() string
	Write(ctx context.Context, res *Result) error
}

// Pipeline owns the generation run. The core stages are sequential and
// deterministic under the configured seed; only sink fan-out is concurrent.
type Pipeline struct {
	cfg     config.GeneratorConfig
	runID   string
	sinks   []Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Pipeline for one run.
func New(cfg config.GeneratorConfig, runID string, m *metrics.Metrics, sinks ...Sink) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		runID:   runID,
		sinks:   sinks,
		metrics: m,
		logger:  slog.Default().With("component", "pipeline", "run_id", runID),
	}
}

// Run executes the full flow and returns the result. Any stage error aborts
// the run; nothing is retried.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(p.cfg.Seed))

	res := &Result{
		RunID:       p.runID,
		Seed:        p.cfg.Seed,
		GeneratedAt: start.UTC(),
	}

	p.logger.Info("generating documents", "count", p.cfg.NumDocuments)
	genStart := time.Now()
	res.Documents = generator.New(rng, start).Documents(p.cfg.NumDocuments)
	p.metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(genStart).Seconds())
	p.metrics.DocumentsGenerated.Add(float64(len(res.Documents)))

	p.logger.Info("building inverted index")
	indexStart := time.Now()
	res.Index = index.Build(res.Documents)
	p.metrics.StageDuration.WithLabelValues("index").Observe(time.Since(indexStart).Seconds())
	p.metrics.KeywordsIndexed.Set(float64(len(res.Index)))
	p.metrics.PostingsTotal.Set(float64(res.Index.PostingCount()))

	p.logger.Info("computing statistics")
	statsStart := time.Now()
	snapshot, err := stats.Compute(res.Documents, res.Index)
	p.metrics.StageDuration.WithLabelValues("stats").Observe(time.Since(statsStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("computing statistics: %w", err)
	}
	res.Statistics = snapshot

	p.logger.Info("synthesizing benchmark queries")
	queryStart := time.Now()
	synth := query.NewSynthesizer(rng,
		query.WithSinglesPerTier(p.cfg.SinglesPerTier),
		query.WithPairQueries(p.cfg.PairQueries),
	)
	queries, err := synth.Synthesize(res.Index)
	p.metrics.StageDuration.WithLabelValues("queries").Observe(time.Since(queryStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("synthesizing queries: %w", err)
	}
	res.Queries = queries
	for _, q := range queries {
		p.metrics.QueriesSynthesized.WithLabelValues(q.Type).Inc()
	}

	p.logger.Info("verifying artifacts")
	verifyStart := time.Now()
	err = verify.Dataset(res.Documents, res.Index)
	if err == nil {
		err = verify.Queries(res.Index, res.Queries)
	}
	p.metrics.StageDuration.WithLabelValues("verify").Observe(time.Since(verifyStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("verifying generated artifacts: %w", err)
	}

	res.Duration = time.Since(start)

	if err := p.writeSinks(ctx, res); err != nil {
		return nil, err
	}

	p.logger.Info("run complete",
		"documents", len(res.Documents),
		"keywords", len(res.Index),
		"queries", len(res.Queries),
		"duration", res.Duration,
	)
	return res, nil
}

// writeSinks fans the result out to all sinks concurrently. The first sink
// error cancels the others.
func (p *Pipeline) writeSinks(ctx context.Context, res *Result) error {
	if len(p.sinks) == 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range p.sinks {
		g.Go(func() error {
			start := time.Now()
			err := sink.Write(ctx, res)
			p.metrics.StageDuration.WithLabelValues("sink_" + sink.Name()).Observe(time.Since(start).Seconds())
			if err != nil {
				p.metrics.SinkWritesTotal.WithLabelValues(sink.Name(), "error").Inc()
				return apperrors.Newf(apperrors.ErrSinkFailure, 6, "sink %s: %v", sink.Name(), err)
			}
			p.metrics.SinkWritesTotal.WithLabelValues(sink.Name(), "ok").Inc()
			p.logger.Info("sink written", "sink", sink.Name(), "took", time.Since(start))
			return nil
		})
	}
	return g.Wait()
}
