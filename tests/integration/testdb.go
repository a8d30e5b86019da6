// Package integration exercises the full HTTP stack against a real
// PostgreSQL instance started through testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB owns one disposable Postgres container with the schema
// already migrated. Each test gets its own container so parallel
// packages cannot interfere with each other.
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts postgres:16-alpine, waits for it to accept
// connections, applies every migration and registers cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("catalogsync_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("test123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "container connection string")

	tdb := &TestDB{Container: container, DSN: dsn, t: t}
	tdb.connect()
	tdb.migrate()

	t.Cleanup(tdb.Close)
	return tdb
}

func (tdb *TestDB) connect() {
	tdb.t.Helper()

	gormLog := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(tdb.DSN), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	require.NoError(tdb.t, err, "open gorm connection")

	sqlDB, err := db.DB()
	require.NoError(tdb.t, err, "access connection pool")
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	tdb.DB = db
	tdb.SqlDB = sqlDB
}

func (tdb *TestDB) migrate() {
	tdb.t.Helper()

	path := locateMigrationsDir()
	require.NotEmpty(tdb.t, path, "migrations directory not found")

	m, err := migration.New(tdb.SqlDB, path, zap.NewNop())
	require.NoError(tdb.t, err, "build migrator")
	require.NoError(tdb.t, m.Up(), "apply migrations")
}

// Close shuts the pool down and terminates the container.
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("terminate container: %v", err)
		}
	}
}

// CleanTables empties the data tables while keeping schema and
// migration bookkeeping intact.
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE TABLE products, users CASCADE").Error)
}

// locateMigrationsDir walks up from this file until it finds the
// repository's migrations directory.
func locateMigrationsDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for range 5 {
		candidate := filepath.Join(dir, "migrations")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return ""
}
