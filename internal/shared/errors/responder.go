package errors

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder provides methods to send Problem Details responses.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	// Logger receives the cause of every 5xx response.
	Logger *slog.Logger

	now func() time.Time
}

// NewResponder creates a new problem responder with optional base URI.
func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Responder) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Respond sends a ProblemDetail response with proper content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.Timestamp.IsZero() {
		problem.Timestamp = r.clock().UTC()
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError converts a standard error to a ProblemDetail and responds.
// Errors that are not already a ProblemDetail become a generic 500 whose
// cause is only logged.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Internal(c, err, DetailInternal)
}

// Internal logs err with request context and sends a 500 with a fixed detail.
func (r *Responder) Internal(c *gin.Context, err error, detail string) {
	r.logger().LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", errorString(err)),
	)
	r.Respond(c, ErrInternal.WithDetail(detail))
}

// NotFound sends a 404 problem response.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// BadRequest sends a 400 problem response.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ValidationFailed sends a 400 problem response with field errors.
func (r *Responder) ValidationFailed(c *gin.Context, detail string, fieldErrors map[string]string) {
	r.Respond(c, NewValidationProblem(detail, fieldErrors))
}

func (r *Responder) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

func (r *Responder) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// ErrorMapper maps domain/application errors to ProblemDetail.
// Returning ok=false passes the error to the next mapper.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(responder *Responder, mappers ...ErrorMapper) *ChainedResponder {
	if responder == nil {
		responder = NewResponder("")
	}
	return &ChainedResponder{
		Responder: responder,
		mappers:   mappers,
	}
}

// RespondError tries each mapper before falling back to default handling.
// Mapped 5xx problems still have their cause logged.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		problem, ok := mapper(err)
		if !ok {
			continue
		}
		if problem.Status >= http.StatusInternalServerError {
			r.Internal(c, err, problem.Detail)
			return
		}
		r.Respond(c, problem)
		return
	}
	r.Responder.RespondError(c, err)
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
