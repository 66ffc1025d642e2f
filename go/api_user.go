package pawsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/http/mapper"
	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	usersports "github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service usersports.Service
	limits  search.Limits
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service usersports.Service, limits search.Limits) UserAPI {
	return UserAPI{service: service, limits: limits}
}

// Post /users/create
// Register a user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload usertypes.UserDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), usertypes.CreateUserInput{User: payload})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get /users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(users) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get /users/:id
func (api *UserAPI) GetUserById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), usertypes.UserIdentifier{ID: id})
	if err != nil {
		respondLookupError(c, "User", id, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete /users
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id, ok := parseIDHeader(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), usertypes.UserIdentifier{ID: id}); err != nil {
		respondLookupError(c, "User", id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Put /users/update
// Replaces a user; a blank password keeps the current one
func (api *UserAPI) UpdateUser(c *gin.Context) {
	var payload usertypes.UserDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), usertypes.UpdateUserInput{User: payload})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Get /users/search
func (api *UserAPI) SearchUsers(c *gin.Context) {
	var query userhttpmapper.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	page, err := bindPage(c, api.limits, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result, err := api.service.Search(c.Request.Context(), userhttpmapper.ToSearchInput(query), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
