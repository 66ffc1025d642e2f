package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/crypto/bcrypt"

	usermemory "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/security"
	userapp "github.com/Apurer/paws-adoption-api/internal/domains/users/application"
	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

func newInstrumented(t *testing.T) (ports.Service, *tracetest.SpanRecorder, *sdkmetric.ManualReader, *bytes.Buffer) {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	logs := &bytes.Buffer{}

	inner := userapp.NewService(usermemory.NewRepository(), security.NewBcryptHasher(bcrypt.MinCost))
	svc := New(inner,
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
		WithLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	return svc, spans, reader, logs
}

func createdCount(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "users.service.created" {
				continue
			}
			var total int64
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestService_CreateNeverLogsPassword(t *testing.T) {
	svc, spans, reader, logs := newInstrumented(t)

	_, err := svc.Create(context.Background(), usertypes.CreateUserInput{User: usertypes.UserDTO{
		Name: "Ann", Username: "ann", Password: "hunter2", Role: "ADMIN",
	}})
	require.NoError(t, err)

	assert.NotContains(t, logs.String(), "hunter2")
	assert.Contains(t, logs.String(), "user registered")
	assert.Equal(t, int64(1), createdCount(t, reader))
	for _, span := range spans.Ended() {
		for _, attr := range span.Attributes() {
			assert.NotEqual(t, "hunter2", attr.Value.Emit())
		}
	}
}

func TestService_DuplicateUsernameIsClientError(t *testing.T) {
	svc, spans, _, logs := newInstrumented(t)
	input := usertypes.CreateUserInput{User: usertypes.UserDTO{Name: "Ann", Username: "ann", Password: "pw"}}

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrDuplicateUsername)

	ended := spans.Ended()
	require.Len(t, ended, 2)
	assert.NotEqual(t, codes.Error, ended[1].Status().Code)
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestService_SearchRecordsFilterNames(t *testing.T) {
	svc, spans, _, logs := newInstrumented(t)
	city := "Berlin"

	_, err := svc.Search(context.Background(), usertypes.SearchUsersInput{City: &city}, userSearchPage())
	require.NoError(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Contains(t, ended[0].Attributes(), attribute.StringSlice("search.filters", []string{"city"}))
	assert.NotContains(t, logs.String(), "Berlin")
}

func userSearchPage() search.PageRequest {
	return search.PageRequest{Size: 20}
}
