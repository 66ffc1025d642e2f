// Package migrations applies the embedded goose SQL migrations that own the
// pet, app_user, association and idempotency tables.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// seams for tests
var (
	gooseUp     = goose.UpContext
	gooseDown   = goose.DownContext
	gooseStatus = goose.StatusContext
)

// Files exposes the embedded migration sources.
func Files() embed.FS { return files }

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	return run(db, func() error { return gooseUp(ctx, db, dir) })
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	return run(db, func() error { return gooseDown(ctx, db, dir) })
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, db *sql.DB) error {
	return run(db, func() error { return gooseStatus(ctx, db, dir) })
}

// Run applies pending migrations through the connection behind a GORM handle.
func Run(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap gorm connection: %w", err)
	}
	return Up(ctx, sqlDB)
}

func run(db *sql.DB, fn func() error) error {
	if db == nil {
		return errors.New("migrations: nil database")
	}
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	return nil
}
