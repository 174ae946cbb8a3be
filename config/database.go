package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/drexwrld/synapes-backend/models"
)

const connectAttempts = 5

// ConnectDB opens the database with a bounded retry, then migrates the
// schema. Callers treat an error as fatal: the process must not serve
// traffic without its store.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err == nil {
			break
		}
		logrus.WithError(err).Warnf("database connect attempt %d/%d failed", attempt, connectAttempts)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Split out so tests can run it against
// their own database handle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Enrollment{},
		&models.Notification{},
		&models.PushToken{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
