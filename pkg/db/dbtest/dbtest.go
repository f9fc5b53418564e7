// Package dbtest opens throwaway in-memory databases for service and handler
// tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

var dbSeq atomic.Int64

// Open returns a migrated in-memory SQLite database. Each call gets its own
// database so tests stay independent.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.Constituency{},
		&model.Project{},
		&model.Contractor{},
		&model.ProcurementAward{},
		&model.Feedback{},
		&model.ProjectImage{},
		&model.User{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
