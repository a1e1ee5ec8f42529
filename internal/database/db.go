package database

import (
	"fmt"
	"log"
	"time"

	"nakliye/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the GORM connection pool and migrates the schema.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}
	return db, nil
}

// Migrate creates or updates every table. Plans come before companies and companies
// before the rows that reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.MembershipPlan{},
		&model.Company{},
		&model.User{},
		&model.RefreshToken{},
		&model.CompanyNote{},
		&model.Listing{},
		&model.PriceOffer{},
		&model.Announcement{},
		&model.HeroSlide{},
		&model.DirectoryContact{},
		&model.AuditLog{},
	)
}
