package pawsserver_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	pawsserver "github.com/Apurer/paws-adoption-api/go"
	petsmemory "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/paws-adoption-api/internal/domains/pets/application"
	petdomain "github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	usersmemory "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/paws-adoption-api/internal/domains/users/application"
	userdomain "github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

type testServer struct {
	router *gin.Engine
	pets   *petsmemory.Repository
	users  *usersmemory.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sponsorships := relations.NewJoinTable()
	favorites := relations.NewJoinTable()
	petRepo := petsmemory.NewRepository(petsmemory.WithAssociations(sponsorships, favorites))
	userRepo := usersmemory.NewRepository(usersmemory.WithAssociations(sponsorships, favorites))

	petService := petsapp.NewService(petRepo,
		petsapp.WithSponsorResolver(relations.NewResolver(userRepo.FindByIDs, func(u *userdomain.User) int64 { return u.ID })),
		petsapp.WithIdempotencyStore(petsmemory.NewIdempotencyStore()),
	)
	userService := usersapp.NewService(userRepo, security.NewBcryptHasher(bcrypt.MinCost),
		usersapp.WithPetResolver(relations.NewResolver(petRepo.FindByIDs, func(p *petdomain.Pet) int64 { return p.ID })),
	)

	router := pawsserver.NewRouter(pawsserver.ApiHandleFunctions{
		PetAPI:  pawsserver.NewPetAPI(petService, search.DefaultLimits),
		UserAPI: pawsserver.NewUserAPI(userService, search.DefaultLimits),
	})
	return &testServer{router: router, pets: petRepo, users: userRepo}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type problem struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail"`
	Timestamp  string         `json:"timestamp"`
	Extensions map[string]any `json:"extensions"`
}

func requireProblem(t *testing.T, rec *httptest.ResponseRecorder, status int) problem {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	p := decode[problem](t, rec)
	require.Equal(t, status, p.Status)
	require.NotEmpty(t, p.Timestamp)
	return p
}
