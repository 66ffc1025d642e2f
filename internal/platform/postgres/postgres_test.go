package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

type critter struct {
	ID        int64
	Name      string
	Size      string
	Castrated bool
	Age       *int64
}

func (critter) TableName() string { return "critter" }

var (
	critterName      = search.StringField[critter]{Column: "name", Get: func(c critter) string { return c.Name }}
	critterSize      = search.EnumField[critter]{Column: "size", Get: func(c critter) string { return c.Size }}
	critterCastrated = search.BoolField[critter]{Column: "castrated", Get: func(c critter) bool { return c.Castrated }}
	critterSortable  = search.Sortable[critter]{
		"name": {Column: "name"},
	}
)

func ptr[T any](v T) *T { return &v }

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := Open(postgres.New(postgres.Config{Conn: sqlDB}), Options{})
	require.NoError(t, err)
	return db.Session(&gorm.Session{DryRun: true})
}

func TestApplyPredicate_TranslatesConditions(t *testing.T) {
	db := newDryRunDB(t)
	pred := search.Where[critter]().
		Contains(critterName, ptr(" Re%x ")).
		EqualFold(critterSize, ptr("large")).
		Is(critterCastrated, ptr(true)).
		Build()

	var rows []critter
	stmt := ApplyPredicate(db.Model(&critter{}), pred).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `LOWER("name") LIKE $1`)
	assert.Contains(t, sql, `LOWER("size") = $2`)
	assert.Contains(t, sql, `"castrated" = $3`)
	assert.Contains(t, sql, " AND ")
	require.Len(t, stmt.Vars, 3)
	assert.Equal(t, `%re\%x%`, stmt.Vars[0])
	assert.Equal(t, "large", stmt.Vars[1])
	assert.Equal(t, true, stmt.Vars[2])
}

func TestApplyPredicate_EmptyPredicateHasNoWhere(t *testing.T) {
	db := newDryRunDB(t)

	var rows []critter
	stmt := ApplyPredicate(db.Model(&critter{}), search.Predicate[critter]{}).Find(&rows).Statement

	assert.NotContains(t, stmt.SQL.String(), "WHERE")
}

func TestApplyPage_OrdersAndLimits(t *testing.T) {
	db := newDryRunDB(t)
	req := search.PageRequest{
		Page: 2,
		Size: 5,
		Sort: []search.Order{{Property: "name", Direction: search.Desc}, {Property: "password"}},
	}

	var rows []critter
	stmt := ApplyPage(db.Model(&critter{}), req, critterSortable).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `ORDER BY "name" DESC,"id"`)
	assert.NotContains(t, sql, "password")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
}

func TestClassify(t *testing.T) {
	missingTable := &pgconn.PgError{Code: "42P01", Message: `relation "pet" does not exist`}
	assert.ErrorIs(t, Classify(fmt.Errorf("query: %w", missingTable)), ErrMisconfigured)

	badPassword := &pgconn.PgError{Code: "28P01"}
	assert.ErrorIs(t, Classify(badPassword), ErrMisconfigured)

	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "app_user_username_key"}
	assert.ErrorIs(t, Classify(duplicate), ErrUniqueViolation)
	assert.ErrorIs(t, Classify(gorm.ErrDuplicatedKey), ErrUniqueViolation)

	danglingPet := &pgconn.PgError{Code: "23503", ConstraintName: "app_user_sponsored_pets_pet_id_fkey"}
	assert.ErrorIs(t, Classify(danglingPet), ErrForeignKeyViolation)
	assert.ErrorIs(t, Classify(gorm.ErrForeignKeyViolated), ErrForeignKeyViolation)

	other := errors.New("boom")
	assert.Equal(t, other, Classify(other))
	assert.NoError(t, Classify(nil))
}

func TestGormLogger_TraceLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewGormLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), 10*time.Millisecond)
	sql := func() (string, int64) { return `SELECT * FROM "pet"`, 1 }

	logger.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	logger.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Contains(t, buf.String(), "sql statement failed")

	buf.Reset()
	logger.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "slow sql statement")

	buf.Reset()
	logger.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Empty(t, buf.String())
}
