package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/Tzeak/yumlog/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// GetEnv returns the env var value or the given default when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env vars")
	}
}

func InitDB() {
	dbPath := GetEnv("DB_PATH", "data/yumlog.db")

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.Goal{},
		&models.AnalysisCache{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
