package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	petmemory "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/memory"
	petapp "github.com/Apurer/paws-adoption-api/internal/domains/pets/application"
	pettypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
)

type harness struct {
	svc    ports.Service
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
}

func newHarness(t *testing.T) harness {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	logs := &bytes.Buffer{}

	svc := New(petapp.NewService(petmemory.NewRepository()),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
		WithLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	return harness{svc: svc, spans: spans, reader: reader, logs: logs}
}

func (h harness) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestService_CreateRecordsSpanAndMetric(t *testing.T) {
	h := newHarness(t)

	created, err := h.svc.Create(context.Background(), pettypes.CreatePetInput{Pet: pettypes.PetDTO{Name: "Fido", Size: "MEDIUM"}})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	ended := h.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "Service.Create", ended[0].Name())
	assert.Equal(t, int64(1), h.counter(t, "pets.service.created"))
	assert.Contains(t, h.logs.String(), "pet created")
}

func TestService_ClientErrorsAreWarnings(t *testing.T) {
	h := newHarness(t)

	err := h.svc.Delete(context.Background(), pettypes.PetIdentifier{ID: 999999})
	require.ErrorIs(t, err, ports.ErrNotFound)

	ended := h.spans.Ended()
	require.Len(t, ended, 1)
	assert.NotEqual(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Contains(t, h.logs.String(), "level=WARN")
	assert.Zero(t, h.counter(t, "pets.service.deleted"))
}

func TestService_DefaultsWithoutOptions(t *testing.T) {
	svc := New(petapp.NewService(petmemory.NewRepository()))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
