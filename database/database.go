package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"authcenter/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultRoleValue is attached to every newly registered user. It must exist
// before any registration succeeds; its absence is a configuration error.
const DefaultRoleValue = "USER"

// AdminRoleValue guards the administrative endpoints.
const AdminRoleValue = "ADMIN"

// Connect opens the MySQL connection and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	// GORM logger configuration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema, including the user_roles join table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Role{}, &models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedRoles makes sure the seed roles exist. Registration depends on the
// default role being present, so a seeding failure is fatal at startup
// rather than a per-request error.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Value: DefaultRoleValue, Description: "Standard user"},
		{Value: AdminRoleValue, Description: "Administrator with full access"},
	}

	for _, r := range roles {
		var existing models.Role
		err := db.Where("value = ?", r.Value).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&r).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", r.Value, err)
			}
			log.Printf("Seeded role: %s\n", r.Value)
		} else if err != nil {
			return fmt.Errorf("error checking for role %s: %w", r.Value, err)
		}
	}

	return nil
}
