package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// defaultDatabaseURL is used when DATABASE_URL is not set
const defaultDatabaseURL = "sqlite:quickprint.db"

var DB *gorm.DB

// ConnectDatabase opens the database named by databaseURL.
// URLs prefixed with "sqlite:" or "file:" use SQLite, anything else PostgreSQL.
func ConnectDatabase(databaseURL string) error {
	logger := GetLogger()
	if databaseURL == "" {
		databaseURL = defaultDatabaseURL
		logger.Warn("DATABASE_URL not set, using default", zap.String("url", databaseURL))
	}

	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}

	var err error
	DB, err = gorm.Open(Dialector(databaseURL), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established successfully", zap.String("driver", DB.Dialector.Name()))
	return nil
}

// Dialector picks the gorm driver for a database URL
func Dialector(databaseURL string) gorm.Dialector {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite:"))
	case strings.HasPrefix(databaseURL, "file:"):
		return sqlite.Open(databaseURL)
	default:
		return postgres.Open(databaseURL)
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
