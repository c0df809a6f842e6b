package handlers

import (
	"github.com/tejas4149/EstateHub-backend/internal/config"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Message{},
	)

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}
