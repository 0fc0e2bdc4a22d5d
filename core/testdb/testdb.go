// Package testdb opens throwaway sqlite databases carrying the application
// schema. It is meant for tests only.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"procure.GO/config"
	"procure.GO/model/entity"
)

// Open returns a migrated database backed by a file in t.TempDir, so every
// pooled connection sees the same tables.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procure_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqldb, err := db.DB(); err == nil {
			sqldb.Close()
		}
	})
	return db
}

// Part is a catalog row with sensible defaults for fields a test does not care about.
func Part(number string, moq int, price string) entity.Part {
	return entity.Part{
		PartNumber:  number,
		MOQ:         moq,
		Unit:        "pcs",
		UnitPrice:   decimal.RequireFromString(price),
		Supplier:    "ACME",
		LeadTime:    7,
		Family:      "fasteners",
		Description: "Part " + number,
	}
}

// SeedParts inserts catalog parts.
func SeedParts(t testing.TB, db *gorm.DB, parts ...entity.Part) {
	t.Helper()
	if err := db.Create(&parts).Error; err != nil {
		t.Fatalf("seed parts: %v", err)
	}
}
