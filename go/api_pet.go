package pawsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/paws-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// HeaderIdempotencyKey makes pet creation safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petsports.Service
	limits  search.Limits
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service, limits search.Limits) PetAPI {
	return PetAPI{service: service, limits: limits}
}

// Post /pets/create
// Add a new pet
func (api *PetAPI) CreatePet(c *gin.Context) {
	var payload petstypes.PetDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := pethttpmapper.ToCreateInput(payload, c.GetHeader(HeaderIdempotencyKey))
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get /pets
// List every pet
func (api *PetAPI) ListPets(c *gin.Context) {
	pets, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(pets) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// Get /pets/:id
// Find pet by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondLookupError(c, "Pet", id, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// Delete /pets
// Deletes the pet named by the id header
func (api *PetAPI) DeletePet(c *gin.Context) {
	id, ok := parseIDHeader(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), petstypes.PetIdentifier{ID: id}); err != nil {
		respondLookupError(c, "Pet", id, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Put /pets/update
// Update an existing pet
func (api *PetAPI) UpdatePet(c *gin.Context) {
	var payload petstypes.PetDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), petstypes.UpdatePetInput{Pet: payload})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Get /pets/search
// Finds pets matching every supplied filter
func (api *PetAPI) SearchPets(c *gin.Context) {
	var query pethttpmapper.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}
	page, err := bindPage(c, api.limits, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result, err := api.service.Search(c.Request.Context(), pethttpmapper.ToSearchInput(query), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
