package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	petspostgres "github.com/Apurer/paws-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/paws-adoption-api/internal/platform/postgres"
)

const defaultRetention = 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOptional(ctx, os.Getenv("POSTGRES_DSN"), platformpostgres.Options{Logger: logger})
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge idempotency keys")
	}

	cutoff := time.Now().UTC().Add(-retentionFromEnv())
	purged, err := petspostgres.NewIdempotencyStore(db).PurgeBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	logger.Info("idempotency key purge completed", slog.Int64("purged", purged), slog.Time("cutoff", cutoff))
}

func retentionFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_RETENTION_HOURS"))
	if raw == "" {
		return defaultRetention
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return defaultRetention
	}
	return time.Duration(hours) * time.Hour
}
