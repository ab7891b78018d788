package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
)

// Init opens the SQLite backing store and verifies the production_plan
// table is present. The schema is owned by the upstream planning system;
// no migration is ever performed here. Connection failure is surfaced to
// the caller and never retried.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", cfg.Path, cfg.BusyTimeoutMS)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database at %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ConnectTimeoutSeconds)*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database at %s is unreachable: %w", cfg.Path, err)
	}

	if !db.Migrator().HasTable(&model.PlanRecord{}) {
		return nil, fmt.Errorf("table production_plan not found at %s", cfg.Path)
	}

	log.Println("Database connection successful.")
	return db, nil
}
