package repository

import (
	"fmt"
	"time"

	"journal/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Default admin credentials seeded into an empty store so the system always
// starts with at least one admin account.
const (
	DefaultAdminUsername = "Admin"
	DefaultAdminPassword = "Password"
)

// Open connects to the sqlite database at path, migrates the schema and
// seeds the default admin account when the store holds no users.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm: open sqlite db %s: %w", path, err)
	}

	if err := db.AutoMigrate(&entity.User{}, &entity.Entry{}); err != nil {
		return nil, fmt.Errorf("gorm: migrate schema: %w", err)
	}

	if err := seedDefaultAdmin(db); err != nil {
		return nil, err
	}
	return db, nil
}

func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("gorm: count users for seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &entity.User{
		UUID:           uuid.New().String(),
		Username:       DefaultAdminUsername,
		Password:       DefaultAdminPassword,
		Role:           entity.RoleAdmin,
		CreatedAt:      time.Now(),
		RequiredFields: entity.DefaultRequiredFields(),
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("gorm: seed default admin: %w", err)
	}

	logrus.WithField("username", admin.Username).Info("Seeded default admin account")
	return nil
}
