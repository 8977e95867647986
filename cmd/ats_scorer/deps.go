package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/keyphrase"
	"github.com/jonathan/ats-scorer/internal/lexical"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

// scoringDeps are the providers and scorers built from configuration.
type scoringDeps struct {
	scorer     *pipeline.Scorer
	keyphrases *keyphrase.Extractor
	closers    []io.Closer
}

// buildDeps creates the embedding provider and keyword extractor once; both
// are shared by every request.
func (a *app) buildDeps(ctx context.Context) (*scoringDeps, error) {
	deps := &scoringDeps{}

	provider, err := embedding.New(ctx, a.cfg.EmbeddingProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}
	if c, ok := provider.(io.Closer); ok {
		deps.closers = append(deps.closers, c)
	}

	extractor, err := lexical.New(ctx, a.cfg.LexicalExtractor())
	if err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("failed to create keyword extractor: %w", err)
	}
	if c, ok := extractor.(io.Closer); ok {
		deps.closers = append(deps.closers, c)
	}

	a.log.Debug("providers ready",
		zap.String(logger.FieldProvider, provider.ModelInfo()),
		zap.String("lexical", a.cfg.Lexical.Provider),
	)

	deps.scorer = pipeline.NewScorer(provider, extractor,
		pipeline.WithWeights(a.cfg.Weights()),
		pipeline.WithPrestige(a.cfg.Scoring.Prestige),
		pipeline.WithMissingLimit(a.cfg.Scoring.MissingLimit),
		pipeline.WithProgress(observability.ZapProgress(a.log)),
	)
	deps.keyphrases = keyphrase.NewExtractor(provider, a.cfg.Keyphrase.TopN)
	return deps, nil
}

// Close releases provider clients.
func (d *scoringDeps) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
