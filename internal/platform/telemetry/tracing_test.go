package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracer_WithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "farm-ledger-test", "")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
