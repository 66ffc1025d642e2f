package pawsserver

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	petsapp "github.com/Apurer/paws-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	usersapp "github.com/Apurer/paws-adoption-api/internal/domains/users/application"
	usersports "github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	platformpostgres "github.com/Apurer/paws-adoption-api/internal/platform/postgres"
	apierrors "github.com/Apurer/paws-adoption-api/internal/shared/errors"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var responder = apierrors.NewChainedResponder(nil,
	validationProblem,
	notFoundProblem,
	conflictProblem,
	misconfigurationProblem,
)

func validationProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, petsapp.ErrInvalidInput) ||
		errors.Is(err, usersapp.ErrInvalidInput) ||
		errors.Is(err, search.ErrInvalidPageRequest) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func notFoundProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, petsports.ErrNotFound) || errors.Is(err, usersports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func conflictProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, petsports.ErrVersionConflict) ||
		errors.Is(err, petsports.ErrIdempotencyConflict) ||
		errors.Is(err, usersports.ErrVersionConflict) ||
		errors.Is(err, usersports.ErrDuplicateUsername) ||
		errors.Is(err, usersports.ErrPetRemoved) {
		return apierrors.ErrConflict.WithDetail(conflictDetail(err)), true
	}
	return apierrors.ProblemDetail{}, false
}

// conflictDetail hides the driver message wrapped under constraint errors.
func conflictDetail(err error) string {
	for _, sentinel := range []error{usersports.ErrDuplicateUsername, usersports.ErrPetRemoved} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func misconfigurationProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, platformpostgres.ErrMisconfigured) {
		return apierrors.ErrInternal.WithDetail(apierrors.DetailDatabaseConfig), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondLookupError answers a by-id operation, naming the missing resource.
func respondLookupError(c *gin.Context, resource string, id int64, err error) {
	if errors.Is(err, petsports.ErrNotFound) || errors.Is(err, usersports.ErrNotFound) {
		responder.NotFound(c, resource, id)
		return
	}
	respondServiceError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		responder.ValidationFailed(c, "request body has fields of the wrong type",
			map[string]string{typeErr.Field: "must be " + typeErr.Type.String()})
		return
	}
	responder.BadRequest(c, err.Error())
}
