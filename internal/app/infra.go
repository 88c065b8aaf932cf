package app

import (
	"database/sql"
	"fmt"

	"go-vacation/internal/config"
	"go-vacation/internal/shared/connection"

	"gorm.io/gorm"
)

func databaseOptions(cfg *config.Config) connection.DatabaseOptions {
	return connection.DatabaseOptions{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}
}

// openDatabase returns the gorm handle for repositories and the sql.DB the
// services open transactions on. Both share one pool.
func openDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(databaseOptions(cfg), cfg.DBRetries)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return gormDB, sqlDB, nil
}

func requireKafka(cfg *config.Config) error {
	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	return nil
}
