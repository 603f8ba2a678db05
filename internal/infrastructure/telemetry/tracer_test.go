package telemetry_test

import (
	"context"
	"testing"

	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "my-erp-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(ctx, "noop")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	if testing.Short() {
		t.Skip("requires an OTLP collector")
	}

	// the gRPC exporter connects lazily, so construction succeeds without a collector
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "my-erp-test",
		Insecure:          true,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = tp.Shutdown(shutdownCtx)
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		desc := telemetry.Sampler(tt.ratio).Description()
		assert.Contains(t, desc, "ParentBased")
		assert.Contains(t, desc, tt.want)
	}
}

func TestResource(t *testing.T) {
	res, err := telemetry.Resource(telemetry.Config{
		ServiceName:    "my-erp",
		ServiceVersion: "1.4.0",
		Environment:    "production",
	})
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "my-erp", attrs["service.name"])
	assert.Equal(t, "1.4.0", attrs["service.version"])
	assert.Equal(t, "production", attrs["deployment.environment.name"])
}

func TestResource_OmitsEmptyValues(t *testing.T) {
	res, err := telemetry.Resource(telemetry.Config{ServiceName: "my-erp"})
	require.NoError(t, err)

	for _, kv := range res.Attributes() {
		assert.NotEqual(t, "deployment.environment.name", string(kv.Key))
	}
}
