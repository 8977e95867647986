package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/lexical"
	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	scenarioJD     = "Looking for a Python engineer with distributed systems experience at scale"
	scenarioResume = "EXPERIENCE\nReduced latency by 40% architecting a distributed Kubernetes system at Google.\nSKILLS\nPython, Go"
)

// countingProvider wraps an embedder and counts calls.
type countingProvider struct {
	embedding.Provider
	calls atomic.Int32
	err   error
}

func (c *countingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Provider.Embed(ctx, text)
}

// countingExtractor wraps an extractor and counts calls.
type countingExtractor struct {
	lexical.Extractor
	calls atomic.Int32
}

func (c *countingExtractor) Extract(ctx context.Context, text string) (lexical.KeywordSet, error) {
	c.calls.Add(1)
	return c.Extractor.Extract(ctx, text)
}

func newTestScorer(opts ...Option) (*Scorer, *countingProvider, *countingExtractor) {
	provider := &countingProvider{Provider: embedding.NewHashingEmbedder(0)}
	extractor := &countingExtractor{Extractor: lexical.NewLocalExtractor()}
	return NewScorer(provider, extractor, opts...), provider, extractor
}

func TestRun_ValidationSkipsProviders(t *testing.T) {
	tests := []struct {
		name  string
		req   types.ScoreRequest
		field string
	}{
		{name: "empty jd", req: types.ScoreRequest{Resume: "resume"}, field: "jd"},
		{name: "blank resume", req: types.ScoreRequest{JD: "jd", Resume: " \n\t"}, field: "resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer, provider, extractor := newTestScorer()
			resp, err := scorer.Run(context.Background(), tt.req, nil)

			assert.Nil(t, resp)
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, provider.calls.Load())
			assert.Zero(t, extractor.calls.Load())
		})
	}
}

func TestRun_Scenario(t *testing.T) {
	scorer, provider, extractor := newTestScorer()

	resp, err := scorer.Run(context.Background(), types.ScoreRequest{JD: scenarioJD, Resume: scenarioResume}, nil)
	require.NoError(t, err)

	// 20, not 25: bonus keywords match as literal substrings and
	// "architecting" does not contain ARCHITECTED.
	assert.Equal(t, 20, resp.Breakdown.Bonus)
	base := scoring.DefaultWeights.Combine(scoring.Similarities{
		Experience: resp.Breakdown.Experience / 100,
		Skills:     resp.Breakdown.Skills / 100,
		Education:  resp.Breakdown.Education / 100,
	}, 0).Base
	assert.InDelta(t, min(100, base+20), resp.ATSScore, 0.02)
	assert.Equal(t, 0.0, resp.Breakdown.Education)
	assert.Contains(t, resp.Keywords.Matched, "python")
	assert.Contains(t, resp.Keywords.Missing, "engineer")
	assert.LessOrEqual(t, len(resp.Keywords.Missing), scoring.DefaultMissingLimit)

	assert.EqualValues(t, 4, provider.calls.Load())
	assert.EqualValues(t, 2, extractor.calls.Load())

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NoError(t, schemas.Validate(schemas.ScoreResponse, body))
}

func TestRun_IdenticalText(t *testing.T) {
	text := "Senior Python developer building data pipelines with Kafka and Spark"
	scorer, _, _ := newTestScorer()

	resp, err := scorer.Run(context.Background(), types.ScoreRequest{JD: text, Resume: text}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, resp.Breakdown.Skills, 0.01)
	assert.InDelta(t, 30.0, resp.ATSScore, 0.01)
	assert.Empty(t, resp.Keywords.Missing)
	assert.NotEmpty(t, resp.Keywords.Matched)
}

func TestRun_ProviderFailure(t *testing.T) {
	boom := errors.New("upstream 503")
	scorer, provider, extractor := newTestScorer()
	provider.err = boom

	var stages []string
	resp, err := scorer.Run(context.Background(), types.ScoreRequest{JD: "jd", Resume: "resume"},
		func(_ context.Context, e ProgressEvent) { stages = append(stages, e.Stage) })

	assert.Nil(t, resp)
	var perr *scoring.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{StageSegment}, stages)
	assert.Zero(t, extractor.calls.Load())
}

func TestRun_ProgressCallbacks(t *testing.T) {
	var global, local []string
	scorer, _, _ := newTestScorer(WithProgress(func(_ context.Context, e ProgressEvent) {
		global = append(global, e.Stage)
	}))

	_, err := scorer.Run(context.Background(), types.ScoreRequest{JD: scenarioJD, Resume: scenarioResume},
		func(_ context.Context, e ProgressEvent) {
			local = append(local, e.Stage)
			if e.Stage == StageBonus {
				res, ok := e.Content.(scoring.BonusResult)
				require.True(t, ok)
				assert.Equal(t, 20, res.Total)
			}
		})
	require.NoError(t, err)

	want := []string{StageSegment, StageSimilarity, StageBonus, StageAggregate, StageKeywords}
	assert.Equal(t, want, global)
	assert.Equal(t, want, local)
}

func TestRun_Options(t *testing.T) {
	text := "Senior Python developer building data pipelines with Kafka and Spark"
	scorer, _, _ := newTestScorer(
		WithWeights(scoring.Weights{Skills: 1}),
		WithPrestige([]string{"acme"}),
		WithMissingLimit(1),
	)

	resp, err := scorer.Run(context.Background(), types.ScoreRequest{
		JD:     "Kafka Spark Flink Airflow engineer",
		Resume: text + "\nEXPERIENCE\nAcme Corp",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Breakdown.Bonus)
	assert.Len(t, resp.Keywords.Missing, 1)
	assert.InDelta(t, resp.Breakdown.Skills+10, resp.ATSScore, 0.02)
}

func TestRun_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	scorer, _, _ := newTestScorer(WithTracerProvider(tp))

	_, err := scorer.Run(context.Background(), types.ScoreRequest{JD: scenarioJD, Resume: scenarioResume}, nil)
	require.NoError(t, err)

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{
		"pipeline.segment", "pipeline.similarity", "pipeline.bonus",
		"pipeline.aggregate", "pipeline.keywords", "pipeline.Run",
	}, names)
}
