package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	petapp "github.com/Apurer/paws-adoption-api/internal/domains/pets/application"
	pettypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

const tracerName = "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/observability/service"

// Service decorates a pets application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create persists a new pet with instrumentation.
func (s *Service) Create(ctx context.Context, input pettypes.CreatePetInput) (*pettypes.PetDTO, error) {
	ctx, span := s.startSpan(ctx, "Service.Create",
		attribute.String("pet.name", input.Pet.Name),
		attribute.Bool("request.idempotent", input.IdempotencyKey != ""),
	)
	defer span.End()

	s.logInfo(ctx, "creating pet", slog.String("pet.name", input.Pet.Name))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create pet", slog.String("pet.name", input.Pet.Name))
	}
	span.SetAttributes(attribute.Int64("pet.id", result.ID))
	s.metrics.recordCreated(ctx, result.Size)
	s.logInfo(ctx, "pet created", slog.Int64("pet.id", result.ID), slog.String("size", result.Size))
	return result, nil
}

// GetByID loads a single pet.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetDTO, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("pet.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "loading pet", slog.Int64("pet.id", input.ID))
	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// List returns every pet.
func (s *Service) List(ctx context.Context) ([]pettypes.PetDTO, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	s.logInfo(ctx, "listed pets", slog.Int("count", len(result)))
	return result, nil
}

// Update replaces the state of an existing pet.
func (s *Service) Update(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetDTO, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.Int64("pet.id", input.Pet.ID))
	defer span.End()

	s.logInfo(ctx, "updating pet", slog.Int64("pet.id", input.Pet.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update pet", slog.Int64("pet.id", input.Pet.ID))
	}
	s.metrics.recordUpdated(ctx, result.Size)
	s.logInfo(ctx, "pet updated", slog.Int64("pet.id", result.ID), slog.Int64("version", result.Version))
	return result, nil
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, input pettypes.PetIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.Int64("pet.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting pet", slog.Int64("pet.id", input.ID))
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete pet", slog.Int64("pet.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "pet deleted", slog.Int64("pet.id", input.ID))
	return nil
}

// Search runs a filtered, paginated query.
func (s *Service) Search(ctx context.Context, input pettypes.SearchPetsInput, page search.PageRequest) (search.Page[pettypes.PetDTO], error) {
	ctx, span := s.startSpan(ctx, "Service.Search",
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size),
	)
	defer span.End()

	result, err := s.inner.Search(ctx, input, page)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to search pets", slog.Int("page", page.Page))
	}
	span.SetAttributes(
		attribute.Int64("pet.result.total", result.TotalElements),
		attribute.Int("pet.result.count", result.NumberOfElements),
	)
	s.metrics.recordSearched(ctx, result.NumberOfElements)
	s.logInfo(ctx, "searched pets", slog.Int64("total", result.TotalElements), slog.Int("page", page.Page))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	} else if span != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	if span != nil {
		span.RecordError(err)
	}
	s.logError(ctx, level, msg, err, attrs...)
	return err
}

func isClientError(err error) bool {
	return errors.Is(err, petapp.ErrInvalidInput) ||
		errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ports.ErrVersionConflict) ||
		errors.Is(err, ports.ErrIdempotencyConflict)
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	petsCreated  metric.Int64Counter
	petsUpdated  metric.Int64Counter
	petsDeleted  metric.Int64Counter
	searchResult metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	petsCreated, _ := m.Int64Counter("pets.service.created", metric.WithDescription("Number of pets created"))
	petsUpdated, _ := m.Int64Counter("pets.service.updated", metric.WithDescription("Number of pets updated"))
	petsDeleted, _ := m.Int64Counter("pets.service.deleted", metric.WithDescription("Number of pets deleted"))
	searchResult, _ := m.Int64Histogram("pets.service.search.results", metric.WithDescription("Pets returned per search page"))
	return serviceMetrics{
		petsCreated:  petsCreated,
		petsUpdated:  petsUpdated,
		petsDeleted:  petsDeleted,
		searchResult: searchResult,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, size string) {
	addCounter(ctx, m.petsCreated, 1, attribute.String("pet.size", size))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, size string) {
	addCounter(ctx, m.petsUpdated, 1, attribute.String("pet.size", size))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.petsDeleted, 1)
}

func (m serviceMetrics) recordSearched(ctx context.Context, count int) {
	if m.searchResult == nil {
		return
	}
	m.searchResult.Record(ctx, int64(count))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
