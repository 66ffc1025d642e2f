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

	userapp "github.com/Apurer/paws-adoption-api/internal/domains/users/application"
	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

const tracerName = "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/observability/service"

// Service decorates the users application port with tracing, logging, and metrics.
// Passwords never reach spans or logs.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Create(ctx context.Context, input usertypes.CreateUserInput) (*usertypes.PublicUser, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Create", trace.WithAttributes(
		attribute.String("user.username", input.User.Username),
	))
	defer span.End()

	s.logger.InfoContext(ctx, "registering user", slog.String("username", input.User.Username))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to register user", slog.String("username", input.User.Username))
	}
	span.SetAttributes(attribute.Int64("user.id", result.ID))
	s.metrics.add(ctx, s.metrics.created, attribute.String("user.role", result.Role))
	s.logger.InfoContext(ctx, "user registered", slog.Int64("user.id", result.ID), slog.String("role", result.Role))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, input usertypes.UserIdentifier) (*usertypes.PublicUser, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetByID", trace.WithAttributes(attribute.Int64("user.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load user", slog.Int64("user.id", input.ID))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]usertypes.PublicUser, error) {
	ctx, span := s.tracer.Start(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.result.count", len(result)))
	return result, nil
}

func (s *Service) Update(ctx context.Context, input usertypes.UpdateUserInput) (*usertypes.PublicUser, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Update", trace.WithAttributes(
		attribute.Int64("user.id", input.User.ID),
		attribute.Bool("user.password_changed", input.User.Password != ""),
	))
	defer span.End()

	s.logger.InfoContext(ctx, "updating user", slog.Int64("user.id", input.User.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update user", slog.Int64("user.id", input.User.ID))
	}
	s.metrics.add(ctx, s.metrics.updated, attribute.String("user.role", result.Role))
	s.logger.InfoContext(ctx, "user updated", slog.Int64("user.id", result.ID), slog.Int64("version", result.Version))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, input usertypes.UserIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "Service.Delete", trace.WithAttributes(attribute.Int64("user.id", input.ID)))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		return s.fail(ctx, span, err, "failed to delete user", slog.Int64("user.id", input.ID))
	}
	s.metrics.add(ctx, s.metrics.deleted)
	s.logger.InfoContext(ctx, "user deleted", slog.Int64("user.id", input.ID))
	return nil
}

// Search logs which filters were supplied, never their values.
func (s *Service) Search(ctx context.Context, input usertypes.SearchUsersInput, page search.PageRequest) (search.Page[usertypes.PublicUser], error) {
	filters := activeFilters(input)
	ctx, span := s.tracer.Start(ctx, "Service.Search", trace.WithAttributes(
		attribute.StringSlice("search.filters", filters),
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size),
	))
	defer span.End()

	result, err := s.inner.Search(ctx, input, page)
	if err != nil {
		return result, s.fail(ctx, span, err, "failed to search users", slog.Any("filters", filters))
	}
	span.SetAttributes(attribute.Int64("user.result.total", result.TotalElements))
	s.logger.DebugContext(ctx, "searched users",
		slog.Any("filters", filters),
		slog.Int64("total", result.TotalElements),
		slog.Int("page", page.Page),
	)
	return result, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	} else {
		span.SetStatus(codes.Error, err.Error())
	}
	span.RecordError(err)
	s.logger.LogAttrs(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

func isClientError(err error) bool {
	return errors.Is(err, userapp.ErrInvalidInput) ||
		errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ports.ErrVersionConflict) ||
		errors.Is(err, ports.ErrDuplicateUsername) ||
		errors.Is(err, ports.ErrPetRemoved)
}

func activeFilters(input usertypes.SearchUsersInput) []string {
	named := []struct {
		name string
		set  bool
	}{
		{"name", input.Name != nil},
		{"username", input.Username != nil},
		{"email", input.Email != nil},
		{"phone_number", input.PhoneNumber != nil},
		{"city", input.City != nil},
		{"state", input.State != nil},
		{"country", input.Country != nil},
		{"postal_code", input.PostalCode != nil},
		{"role", input.Role != nil},
		{"active", input.Active != nil},
	}
	out := []string{}
	for _, f := range named {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}

type serviceMetrics struct {
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users registered"))
	updated, _ := m.Int64Counter("users.service.updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of users deleted"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted}
}

func (serviceMetrics) add(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
