package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-tracker.com/task-tracker/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// GormConfig logs slow queries and failures to w. A missing task is an
// ordinary answer for show and edit, so record-not-found stays quiet.
func GormConfig(w logger.Writer) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(w, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Task{})
}

func NewDatabaseClient(driver, dsn string) *gorm.DB {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	db, err := gorm.Open(dialector, GormConfig(log.New(os.Stdout, "\r\n", log.LstdFlags)))
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
