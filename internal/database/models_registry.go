package database

import "clubhub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Club{},
		&models.Membership{},
		&models.Post{},
	}
}
