package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/tripcraft-backend/internal/data/db"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error
	dbKind string

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens the shared test database once. TEST_POSTGRES_DSN selects a real
// Postgres; otherwise an in-memory sqlite database is used, and the test is
// skipped if sqlite is unavailable (e.g. built without cgo).
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			dbKind = "postgres"
			testDB, dbErr = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			dbKind = "sqlite"
			testDB, dbErr = gorm.Open(sqlite.Open("file:tripcraft_test?mode=memory&cache=shared"), cfg)
			if dbErr == nil {
				// one connection so the in-memory database outlives idle conns
				if sqlDB, err := testDB.DB(); err == nil {
					sqlDB.SetMaxOpenConns(1)
				}
			}
		}
		if dbErr != nil {
			return
		}
		dbErr = db.AutoMigrateAll(testDB)
	})

	if dbErr != nil {
		if dbKind == "sqlite" {
			tb.Skipf("sqlite unavailable (%v); set TEST_POSTGRES_DSN to run repo tests", dbErr)
		}
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

// Tx begins a transaction that is rolled back when the test ends. Repo calls
// in tests must go through it.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
