// Package db opens and migrates the relational database connection.
package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
	taskadapters "github.com/leonsos/insightt-test/internal/feature/tasks/adapters"
	"github.com/leonsos/insightt-test/internal/platform/config"
)

// Open connects to Postgres, retrying until the configured timeout so the
// service survives a database that comes up after it does. TranslateError
// is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(cfg.Timeout)
	for {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", cfg.Timeout, err)
		}
		log.Warn().Err(err).Msg("database connect failed, retrying")
		time.Sleep(3 * time.Second)
	}

	return conn, nil
}

// Migrate creates or updates the users and tasks tables.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&authentity.User{},
		&taskadapters.TaskModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
