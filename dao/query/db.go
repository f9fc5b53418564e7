package query

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

const (
	maxIdleConns = 5
	maxOpenConns = 10
)

// Open connects to Postgres using the injected configuration and returns the
// handle. TranslateError is enabled so unique-constraint violations surface
// as gorm.ErrDuplicatedKey instead of driver-specific errors.
func Open(cfg *config.Config) (*gorm.DB, error) {
	pg := cfg.Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		pg.Host, pg.User, pg.Password, pg.DBName, pg.Port, pg.SSLMode, pg.TimeZone)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logutils.Log.Info("Postgres init success!")
	return db, nil
}
