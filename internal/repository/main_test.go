package repository

import (
	"testing"

	"clubhub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
// TranslateError is on, matching the runtime connection, so unique
// violations surface as gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Membership{},
		&models.Post{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestClub(t *testing.T, db *gorm.DB, name, slug string, creatorID uint) *models.Club {
	t.Helper()
	club := &models.Club{
		Name:      name,
		Slug:      slug,
		CreatorID: creatorID,
	}
	if err := db.Create(club).Error; err != nil {
		t.Fatalf("create club %s: %v", slug, err)
	}
	return club
}
