//go:build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	pawsserver "github.com/Apurer/paws-adoption-api/go"
	"github.com/Apurer/paws-adoption-api/internal/contract"
	petsmemory "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/paws-adoption-api/internal/domains/pets/application"
	petdomain "github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	usersmemory "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/observability"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/paws-adoption-api/internal/domains/users/application"
	usertypes "github.com/Apurer/paws-adoption-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	usersports "github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

func TestAdoptionAPIProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(contract.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	stateHandlers := models.StateHandlers{
		contract.StateEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		contract.StatePetExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedPet(t, &petdomain.Pet{Name: contract.ExamplePetName, Size: petdomain.SizeMedium, Castrated: true, Dewormed: true})
			}
			return nil, nil
		},
		contract.StatePetsSearch: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedPet(t, &petdomain.Pet{Name: "Atlas", Size: petdomain.SizeLarge, Castrated: true})
				app.seedPet(t, &petdomain.Pet{Name: "Pip", Size: petdomain.SizeNormal, Castrated: true})
			}
			return nil, nil
		},
		contract.StateUserExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedUser(t)
			}
			return nil, nil
		},
	}

	err := pactprovider.NewVerifier().VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        contract.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves a freshly wired in-memory API per provider state
// so identifiers are predictable.
type contractProviderApp struct {
	mu     sync.RWMutex
	router *gin.Engine
	pets   *petsmemory.Repository
	users  usersports.Service
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	sponsorships := relations.NewJoinTable()
	favorites := relations.NewJoinTable()
	petRepo := petsmemory.NewRepository(petsmemory.WithAssociations(sponsorships, favorites))
	userRepo := usersmemory.NewRepository(usersmemory.WithAssociations(sponsorships, favorites))

	petService := petsobs.New(petsapp.NewService(petRepo,
		petsapp.WithSponsorResolver(relations.NewResolver(userRepo.FindByIDs, func(u *userdomain.User) int64 { return u.ID })),
		petsapp.WithIdempotencyStore(petsmemory.NewIdempotencyStore()),
	))
	userService := usersobs.New(usersapp.NewService(userRepo, security.NewBcryptHasher(bcrypt.MinCost),
		usersapp.WithPetResolver(relations.NewResolver(petRepo.FindByIDs, func(p *petdomain.Pet) int64 { return p.ID })),
	))

	router := gin.New()
	router.Use(gin.Recovery(), pawsserver.RequestID())
	pawsserver.NewRouterWithGinEngine(router, pawsserver.ApiHandleFunctions{
		PetAPI:  pawsserver.NewPetAPI(petService, search.DefaultLimits),
		UserAPI: pawsserver.NewUserAPI(userService, search.DefaultLimits),
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.router = router
	a.pets = petRepo
	a.users = userService
}

func (a *contractProviderApp) seedPet(t testing.TB, pet *petdomain.Pet) {
	t.Helper()
	_, err := a.pets.Save(context.Background(), pet)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedUser(t testing.TB) {
	t.Helper()
	_, err := a.users.Create(context.Background(), usertypes.CreateUserInput{User: usertypes.UserDTO{
		Name:     "Pact User",
		Username: contract.UserPrimaryUsername,
		Password: contract.UserPassword,
	}})
	require.NoError(t, err)
}
