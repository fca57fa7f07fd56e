package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/internal/verify"
	"github.com/ehealth-bench/datagen/pkg/config"
	apperrors "github.com/ehealth-bench/datagen/pkg/errors"
	"github.com/ehealth-bench/datagen/pkg/metrics"
)

func testConfig() config.GeneratorConfig {
	return config.GeneratorConfig{
		NumDocuments:   50,
		Seed:           42,
		SinglesPerTier: 5,
		PairQueries:    10,
	}
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

type recordingSink struct {
	name   string
	err    error
	called bool
	result *pipeline.Result
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Write(_ context.Context, res *pipeline.Result) error {
	s.called = true
	s.result = res
	return s.err
}

func TestRun(t *testing.T) {
	p := pipeline.New(testConfig(), "run-1", newMetrics())

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, "run-1", res.RunID)
	require.Equal(t, int64(42), res.Seed)
	require.Len(t, res.Documents, 50)
	require.NotEmpty(t, res.Index)
	require.NotEmpty(t, res.Queries)
	require.Equal(t, 50, res.Statistics.NumDocuments)
	require.Equal(t, len(res.Index), res.Statistics.NumUniqueKeywords)

	require.NoError(t, verify.Dataset(res.Documents, res.Index))
	require.NoError(t, verify.Queries(res.Index, res.Queries))
	require.NoError(t, verify.Statistics(res.Documents, res.Index, res.Statistics))
}

func TestRunReproducible(t *testing.T) {
	first, err := pipeline.New(testConfig(), "run-a", newMetrics()).Run(context.Background())
	require.NoError(t, err)
	second, err := pipeline.New(testConfig(), "run-b", newMetrics()).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Index, second.Index)
	require.Equal(t, first.Statistics, second.Statistics)
	require.Equal(t, first.Queries, second.Queries)
}

func TestRunWritesSinks(t *testing.T) {
	sinkA := &recordingSink{name: "a"}
	sinkB := &recordingSink{name: "b"}
	p := pipeline.New(testConfig(), "run-1", newMetrics(), sinkA, sinkB)

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	require.True(t, sinkA.called)
	require.True(t, sinkB.called)
	require.Same(t, res, sinkA.result)
	require.Same(t, res, sinkB.result)
}

func TestRunSinkFailure(t *testing.T) {
	failing := &recordingSink{name: "broken", err: errors.New("disk full")}
	p := pipeline.New(testConfig(), "run-1", newMetrics(), failing)

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, apperrors.ErrSinkFailure)
	require.Contains(t, err.Error(), "broken")
}
