package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	pawsserver "github.com/Apurer/paws-adoption-api/go"
	petsmemory "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/Apurer/paws-adoption-api/internal/domains/pets/application"
	petdomain "github.com/Apurer/paws-adoption-api/internal/domains/pets/domain"
	petsports "github.com/Apurer/paws-adoption-api/internal/domains/pets/ports"
	usersmemory "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/paws-adoption-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/paws-adoption-api/internal/domains/users/application"
	userdomain "github.com/Apurer/paws-adoption-api/internal/domains/users/domain"
	usersports "github.com/Apurer/paws-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/paws-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/paws-adoption-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/paws-adoption-api/internal/platform/postgres"
	"github.com/Apurer/paws-adoption-api/internal/shared/relations"
)

const serviceName = "paws-adoption-api"

// Run boots the adoption HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName:    serviceName,
		Environment:    cfg.Environment,
		LogLevel:       cfg.LogLevel,
		TracesExporter: cfg.TracesExporter,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, platformpostgres.Options{
		Logger:        logger,
		SlowThreshold: cfg.SlowQueryThreshold(),
	})
	defer closeDB()
	if db != nil && cfg.AutoMigrate {
		if err := migrations.Run(ctx, db); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}

	handlers := buildHandlers(cfg, newStores(db), instruments)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		pawsserver.RequestID(),
		pawsserver.AccessLog(logger),
	)
	pawsserver.NewRouterWithGinEngine(router, handlers)

	return serve(ctx, logger, ":"+cfg.Port, router)
}

// stores bundles the repositories of both bounded contexts.
type stores struct {
	pets        petsports.Repository
	petFinder   relations.Lookup[*petdomain.Pet]
	users       usersports.Repository
	userFinder  relations.Lookup[*userdomain.User]
	idempotency petsports.IdempotencyStore
}

// newStores picks PostgreSQL repositories when db is set and in-memory ones
// sharing the association tables otherwise.
func newStores(db *gorm.DB) stores {
	if db != nil {
		pets := petspostgres.NewRepository(db)
		users := userspostgres.NewRepository(db)
		return stores{
			pets:        pets,
			petFinder:   pets.FindByIDs,
			users:       users,
			userFinder:  users.FindByIDs,
			idempotency: petspostgres.NewIdempotencyStore(db),
		}
	}
	sponsorships := relations.NewJoinTable()
	favorites := relations.NewJoinTable()
	pets := petsmemory.NewRepository(petsmemory.WithAssociations(sponsorships, favorites))
	users := usersmemory.NewRepository(usersmemory.WithAssociations(sponsorships, favorites))
	return stores{
		pets:        pets,
		petFinder:   pets.FindByIDs,
		users:       users,
		userFinder:  users.FindByIDs,
		idempotency: petsmemory.NewIdempotencyStore(),
	}
}

func buildHandlers(cfg Config, s stores, instruments *platformobservability.Instruments) pawsserver.ApiHandleFunctions {
	sponsors := relations.NewResolver(s.userFinder, func(u *userdomain.User) int64 { return u.ID })
	pets := relations.NewResolver(s.petFinder, func(p *petdomain.Pet) int64 { return p.ID })

	petService := petsobs.New(
		petsapp.NewService(s.pets,
			petsapp.WithSponsorResolver(sponsors),
			petsapp.WithIdempotencyStore(s.idempotency),
		),
		petsobs.WithLogger(instruments.Logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)
	userService := usersobs.New(
		usersapp.NewService(s.users, security.NewBcryptHasher(bcrypt.DefaultCost),
			usersapp.WithPetResolver(pets),
		),
		usersobs.WithLogger(instruments.Logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	limits := cfg.PageLimits()
	return pawsserver.ApiHandleFunctions{
		PetAPI:  pawsserver.NewPetAPI(petService, limits),
		UserAPI: pawsserver.NewUserAPI(userService, limits),
	}
}

func serve(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("paws adoption API listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("paws adoption API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down paws adoption API")
	return server.Shutdown(shutdownCtx)
}
