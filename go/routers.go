package pawsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Apurer/paws-adoption-api/internal/platform/docs"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every resource.
type ApiHandleFunctions struct {
	// Routes for the pet resource.
	PetAPI PetAPI
	// Routes for the user resource.
	UserAPI UserAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"Swagger", http.MethodGet, "/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))},

		{"CreatePet", http.MethodPost, "/pets/create", handleFunctions.PetAPI.CreatePet},
		{"ListPets", http.MethodGet, "/pets", handleFunctions.PetAPI.ListPets},
		{"SearchPets", http.MethodGet, "/pets/search", handleFunctions.PetAPI.SearchPets},
		{"GetPetById", http.MethodGet, "/pets/:id", handleFunctions.PetAPI.GetPetById},
		{"DeletePet", http.MethodDelete, "/pets", handleFunctions.PetAPI.DeletePet},
		{"UpdatePet", http.MethodPut, "/pets/update", handleFunctions.PetAPI.UpdatePet},

		{"CreateUser", http.MethodPost, "/users/create", handleFunctions.UserAPI.CreateUser},
		{"ListUsers", http.MethodGet, "/users", handleFunctions.UserAPI.ListUsers},
		{"SearchUsers", http.MethodGet, "/users/search", handleFunctions.UserAPI.SearchUsers},
		{"GetUserById", http.MethodGet, "/users/:id", handleFunctions.UserAPI.GetUserById},
		{"DeleteUser", http.MethodDelete, "/users", handleFunctions.UserAPI.DeleteUser},
		{"UpdateUser", http.MethodPut, "/users/update", handleFunctions.UserAPI.UpdateUser},
	}
}

// Get /healthz
// Liveness check
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
