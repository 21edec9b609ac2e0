package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"ewaste-tracking-backend/config"
	"ewaste-tracking-backend/internal/model"
	"ewaste-tracking-backend/internal/store"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate creates the schema and seeds the key-allocator sequences. It is
// shared between Init and the test helpers.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Employee{},
		&model.Customer{},
		&model.RecyclingOrder{},
		&model.Device{},
		&model.OrderLine{},
		&model.Sequence{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	return store.SeedSequences(db)
}

// SeedEmployees upserts the configured staff records by email. Existing
// rows get refreshed names and roles; surrogate keys stay stable.
func SeedEmployees(db *gorm.DB, employees []config.EmployeeConfig) error {
	for _, e := range employees {
		if e.Email == "" {
			continue
		}
		rec := model.Employee{Email: e.Email, FullName: e.FullName, Role: e.Role}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "role"}),
		}).Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to seed employee %q: %w", e.Email, err)
		}
	}
	return nil
}
