package postgres

import (
	"fmt"
	"log"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"

	"github.com/VadimK2/usergraph/internal/config"
	"github.com/VadimK2/usergraph/models"
)

var DB *gorm.DB

// GetDB returns the process-wide connection (exposed for tests).
func GetDB() *gorm.DB {
	return DB
}

// InitDB connects to PostgreSQL and sets the process-wide DB handle.
func InitDB() error {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST"),
		config.GetEnv("DB_USER"),
		config.GetEnv("DB_PASSWORD"),
		config.GetEnv("DB_NAME"),
		config.GetEnv("DB_PORT"),
		config.GetEnv("DB_SSLMODE"),
	)

	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %v", err)
	}

	DB = db
	log.Println("Successfully connected to the database.")
	return nil
}

// Migrate creates/updates the users and posts tables. The RESTRICT foreign
// key makes the store reject deleting a user that posts still reference.
func Migrate() error {
	if err := DB.AutoMigrate(&models.User{}, &models.Post{}).Error; err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	err := DB.Model(&models.Post{}).AddForeignKey("author_id", "users(id)", "RESTRICT", "RESTRICT").Error
	if err != nil {
		return fmt.Errorf("failed to add posts.author_id foreign key: %v", err)
	}

	return nil
}

// CloseDB closes the database connection.
func CloseDB() error {
	if DB == nil {
		return nil
	}

	err := DB.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %v", err)
	}

	log.Println("Database connection closed.")
	return nil
}

// InitDBWithConnection allows tests to inject a connection.
func InitDBWithConnection(db *gorm.DB) {
	DB = db
}

// isUniqueViolation matches the unique-constraint messages of postgres and
// sqlite (the test dialect).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "violates foreign key constraint") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}
