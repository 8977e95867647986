package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jonathan/ats-scorer/internal/config"
)

func TestSetupTelemetry_Disabled(t *testing.T) {
	tel, err := SetupTelemetry(context.Background(), config.TelemetryConfig{}, "test")
	require.NoError(t, err)
	assert.Nil(t, tel)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupTelemetry_Enabled(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	tel, err := SetupTelemetry(context.Background(), config.TelemetryConfig{
		Endpoint:    "http://127.0.0.1:4318/",
		ServiceName: "ats-scorer-test",
		Headers:     "x-api-key=secret",
	}, "test")
	require.NoError(t, err)
	require.NotNil(t, tel)
	_, installed := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, installed)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, tel.Shutdown(ctx))
}

func TestParseHeaders(t *testing.T) {
	assert.Empty(t, parseHeaders(""))
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y"}, parseHeaders(" a = 1 ,b=x=y,broken"))
}
