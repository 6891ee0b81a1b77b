package otel

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"restaurant/pkg/logger"
)

func TestTracing(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "test", GetTraceID)
	tp, shutdown, err := InitTracing(log, Config{ServiceName: "test", Probability: 1.0})
	require.NoError(t, err)
	defer shutdown(context.Background())

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	ctx, span := AddSpan(ctx, "work", attribute.Int("order_id", 1))
	defer span.End()

	id := GetTraceID(ctx)
	assert.Len(t, id, 32)
	assert.True(t, span.SpanContext().IsSampled())
}

func TestAddSpanWithoutInjectedTracer(t *testing.T) {
	ctx, span := AddSpan(context.Background(), "fallback")
	defer span.End()
	assert.NotNil(t, ctx)
}
