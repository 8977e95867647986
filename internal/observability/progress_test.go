package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/pipeline"
)

func TestZapProgress(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	cb := ZapProgress(zap.New(core))

	ctx := WithRequestID(context.Background(), "req-1")
	cb(ctx, pipeline.ProgressEvent{Stage: pipeline.StageSegment, Message: "split", Duration: time.Millisecond})
	cb(context.Background(), pipeline.ProgressEvent{Stage: pipeline.StageKeywords, Message: "matched"})

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "split", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, pipeline.StageSegment, entries[0].ContextMap()[logger.FieldStage])
	assert.Equal(t, "req-1", entries[0].ContextMap()[logger.FieldRequestID])
	assert.NotContains(t, entries[1].ContextMap(), logger.FieldRequestID)
}

func TestZapProgress_NilLogger(t *testing.T) {
	cb := ZapProgress(nil)
	assert.NotPanics(t, func() {
		cb(context.Background(), pipeline.ProgressEvent{Stage: pipeline.StageBonus})
	})
}

func TestRequestID(t *testing.T) {
	_, ok := RequestID(context.Background())
	assert.False(t, ok)

	_, ok = RequestID(WithRequestID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := RequestID(WithRequestID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}
