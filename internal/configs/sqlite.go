package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

// NewStore opens the store selected by STORE_DRIVER.
func NewStore(cfg *Config, log *zap.Logger) (repository.Store, error) {
	if cfg.StoreDriver != StoreSQLite {
		log.Info("using in-memory store")
		return repository.NewMemoryStore(), nil
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A shared in-memory database disappears once its last connection closes.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store, err := repository.NewGormStore(db)
	if err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	log.Info("using sqlite store", zap.String("dsn", cfg.DatabaseDSN))
	return store, nil
}
