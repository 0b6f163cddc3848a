// Package testutil provides a throwaway database for service tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
)

// OpenDB opens a temporary sqlite-backed gorm DB, migrates all models and
// seeds the default chart of accounts.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	if err := repository.NewAccountRepository(db).Seed(models.DefaultChart()); err != nil {
		t.Fatalf("seeding chart of accounts: %v", err)
	}
	return db
}
