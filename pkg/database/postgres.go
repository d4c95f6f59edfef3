package database

import (
	"fmt"

	"github.com/sportvenue/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.SessionTemplate{},
		&models.Session{},
		&models.Order{},
		&models.OrderSession{},
		&models.SystemConfig{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Unique (court, start time) pairs: the generator and any manual
	// creation path must not produce duplicate slots.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_session_court_start
		ON sessions (court_name, start_time)
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_template_court_start
		ON session_templates (court_name, start_time)
	`)

	return db, nil
}
