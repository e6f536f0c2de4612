// Package seed populates the database with built-in and demo data.
package seed

import (
	_ "embed"
	"fmt"

	"clubhub/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed clubs.yml
var builtInClubsYAML []byte

// BuiltInClub is a permanent starter club shipped with the application.
type BuiltInClub struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type builtInClubsFile struct {
	Clubs []BuiltInClub `yaml:"clubs"`
}

// BuiltInClubs returns the embedded starter club fixture.
func BuiltInClubs() ([]BuiltInClub, error) {
	var file builtInClubsFile
	if err := yaml.Unmarshal(builtInClubsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse built-in clubs fixture: %w", err)
	}
	return file.Clubs, nil
}

// Clubs seeds the built-in starter clubs owned by ownerID, each with an
// approved admin membership for the owner. Idempotent: reruns update name
// and description in place and never duplicate memberships.
func Clubs(db *gorm.DB, ownerID uint) error {
	builtIns, err := BuiltInClubs()
	if err != nil {
		return err
	}

	for _, item := range builtIns {
		err := db.Transaction(func(tx *gorm.DB) error {
			club := models.Club{
				Name:        item.Name,
				Slug:        item.Slug,
				Description: item.Description,
				CreatorID:   ownerID,
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "description", "updated_at"}),
			}).Create(&club).Error; err != nil {
				return err
			}

			if club.ID == 0 {
				if err := tx.Where("slug = ?", item.Slug).First(&club).Error; err != nil {
					return err
				}
			}

			var count int64
			if err := tx.Model(&models.Membership{}).
				Where("club_id = ? AND user_id = ? AND role = ?",
					club.ID, ownerID, models.MembershipRoleAdmin).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			membership := models.Membership{
				UserID: ownerID,
				ClubID: club.ID,
				Role:   models.MembershipRoleAdmin,
				Status: models.MembershipStatusApproved,
			}
			return tx.Create(&membership).Error
		})
		if err != nil {
			return fmt.Errorf("seed built-in club %s: %w", item.Slug, err)
		}
	}

	return nil
}
