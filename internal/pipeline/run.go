// Package pipeline orchestrates the ATS scoring stages for one request.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/lexical"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

const tracerName = "github.com/jonathan/ats-scorer/internal/pipeline"

// Stage names, in execution order.
const (
	StageSegment    = "segment"
	StageSimilarity = "similarity"
	StageBonus      = "bonus"
	StageAggregate  = "aggregate"
	StageKeywords   = "keywords"
)

// ProgressEvent represents a completed stage of a scoring run
type ProgressEvent struct {
	Stage    string        `json:"stage"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration_ns"`
	Content  any           `json:"content,omitempty"`
}

// ProgressCallback is called after each stage completes
type ProgressCallback func(ctx context.Context, event ProgressEvent)

// SectionSizes reports the trimmed length of each resume section.
type SectionSizes struct {
	Experience int `json:"experience"`
	Skills     int `json:"skills"`
	Education  int `json:"education"`
}

// KeywordCounts reports keyword set sizes for the keywords stage.
type KeywordCounts struct {
	JD      int `json:"jd"`
	Resume  int `json:"resume"`
	Matched int `json:"matched"`
	Missing int `json:"missing"`
}

// Scorer runs the scoring stages. It holds no per-request state and is safe
// for concurrent use.
type Scorer struct {
	similarity *scoring.SimilarityScorer
	keywords   *scoring.KeywordMatcher
	bonus      *scoring.BonusEngine
	weights    scoring.Weights

	prestige     []string
	missingLimit int
	onProgress   ProgressCallback
	tracer       trace.Tracer
}

// Option configures a Scorer
type Option func(*Scorer)

// WithWeights sets the section weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Scorer) { s.weights = w }
}

// WithPrestige sets the prestige allowlist of the bonus engine.
func WithPrestige(list []string) Option {
	return func(s *Scorer) { s.prestige = list }
}

// WithMissingLimit caps the missing keyword list.
func WithMissingLimit(n int) Option {
	return func(s *Scorer) { s.missingLimit = n }
}

// WithProgress sets a callback invoked for every run, before any per-run callback.
func WithProgress(cb ProgressCallback) Option {
	return func(s *Scorer) { s.onProgress = cb }
}

// WithTracerProvider sets the tracer provider used for stage spans.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Scorer) { s.tracer = tp.Tracer(tracerName) }
}

// NewScorer builds a Scorer from an embedding provider and a keyword extractor.
func NewScorer(provider embedding.Provider, extractor lexical.Extractor, opts ...Option) *Scorer {
	s := &Scorer{
		weights:      scoring.DefaultWeights,
		missingLimit: scoring.DefaultMissingLimit,
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.similarity = scoring.NewSimilarityScorer(provider)
	s.keywords = scoring.NewKeywordMatcher(extractor, s.missingLimit)
	s.bonus = scoring.NewBonusEngine(s.prestige)
	return s
}

// Run validates req and scores it. Validation failures return a
// *types.ValidationError before any provider is called; provider failures
// return a *scoring.ProviderError. onProgress may be nil.
func (s *Scorer) Run(ctx context.Context, req types.ScoreRequest, onProgress ProgressCallback) (*types.ScoreResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(
		attribute.Int("jd.length", len(req.JD)),
		attribute.Int("resume.length", len(req.Resume)),
	))
	defer span.End()

	r := &run{scorer: s, onProgress: onProgress}

	var sections scoring.SectionSet
	_ = r.stage(ctx, StageSegment, func(context.Context) (string, any, error) {
		sections = scoring.Segment(req.Resume)
		sizes := SectionSizes{
			Experience: len(strings.TrimSpace(sections.Experience)),
			Skills:     len(strings.TrimSpace(sections.Skills)),
			Education:  len(strings.TrimSpace(sections.Education)),
		}
		return fmt.Sprintf("experience %d chars, skills %d chars, education %d chars",
			sizes.Experience, sizes.Skills, sizes.Education), sizes, nil
	})

	var sims scoring.Similarities
	if err := r.stage(ctx, StageSimilarity, func(ctx context.Context) (string, any, error) {
		var err error
		sims, err = s.similarity.Score(ctx, req.JD, sections)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("experience %.4f, skills %.4f, education %.4f",
			sims.Experience, sims.Skills, sims.Education), sims, nil
	}); err != nil {
		return nil, r.fail(span, err)
	}

	var bonus scoring.BonusResult
	_ = r.stage(ctx, StageBonus, func(context.Context) (string, any, error) {
		bonus = s.bonus.Compute(sections.Experience, sections)
		return fmt.Sprintf("%d points from %v", bonus.Total, bonus.Fired), bonus, nil
	})

	var agg scoring.Aggregate
	_ = r.stage(ctx, StageAggregate, func(context.Context) (string, any, error) {
		agg = s.weights.Combine(sims, bonus.Total)
		return fmt.Sprintf("base %.2f + bonus %d = %.2f", agg.Base, agg.Bonus, agg.Final), agg, nil
	})

	var kw scoring.KeywordResult
	if err := r.stage(ctx, StageKeywords, func(ctx context.Context) (string, any, error) {
		var err error
		kw, err = s.keywords.Match(ctx, req.JD, req.Resume)
		if err != nil {
			return "", nil, err
		}
		counts := KeywordCounts{JD: kw.JDCount, Resume: kw.ResCount, Matched: len(kw.Matched), Missing: len(kw.Missing)}
		return fmt.Sprintf("%d matched, %d missing", counts.Matched, counts.Missing), counts, nil
	}); err != nil {
		return nil, r.fail(span, err)
	}

	span.SetAttributes(attribute.Float64("ats.score", agg.Final))
	return &types.ScoreResponse{
		ATSScore: agg.Final,
		Breakdown: types.ScoreBreakdown{
			Experience: agg.Experience,
			Skills:     agg.Skills,
			Education:  agg.Education,
			Bonus:      agg.Bonus,
		},
		Keywords: types.KeywordMatch{
			Matched: kw.Matched,
			Missing: kw.Missing,
		},
	}, nil
}

// run carries the callbacks of one Run call.
type run struct {
	scorer     *Scorer
	onProgress ProgressCallback
}

// stage runs fn in its own span and reports it on success.
func (r *run) stage(ctx context.Context, name string, fn func(context.Context) (string, any, error)) error {
	ctx, span := r.scorer.tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	msg, content, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s stage: %w", name, err)
	}

	event := ProgressEvent{Stage: name, Message: msg, Duration: time.Since(start), Content: content}
	if r.scorer.onProgress != nil {
		r.scorer.onProgress(ctx, event)
	}
	if r.onProgress != nil {
		r.onProgress(ctx, event)
	}
	return nil
}

func (r *run) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
