package seed

import (
	"fmt"
	"strings"

	"clubhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoOptions control demo data volume.
type DemoOptions struct {
	Users        int
	PostsPerClub int
	Password     string // shared login password for generated accounts
}

// DefaultDemoOptions returns a small but representative demo data set.
func DefaultDemoOptions() DemoOptions {
	return DemoOptions{
		Users:        20,
		PostsPerClub: 6,
		Password:     "DemoPassword123!",
	}
}

// Demo fills the database with fake users, memberships in the built-in clubs,
// and published posts. Intended for development environments only.
func Demo(db *gorm.DB, opts DemoOptions) error {
	if opts.Users <= 0 {
		opts = DefaultDemoOptions()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	var clubs []models.Club
	if err := db.Find(&clubs).Error; err != nil {
		return err
	}
	if len(clubs) == 0 {
		return fmt.Errorf("no clubs to seed demo data into; seed built-in clubs first")
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hashed),
		}
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}
		users = append(users, user)
	}

	statuses := []models.MembershipStatus{
		models.MembershipStatusApproved,
		models.MembershipStatusApproved,
		models.MembershipStatusPending,
		models.MembershipStatusRejected,
	}

	for i, user := range users {
		// Each user touches two or three clubs.
		for j := 0; j < 2+i%2; j++ {
			club := clubs[(i+j*3)%len(clubs)]

			var existing int64
			if err := db.Model(&models.Membership{}).
				Where("user_id = ? AND club_id = ?", user.ID, club.ID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			membership := models.Membership{
				UserID: user.ID,
				ClubID: club.ID,
				Role:   models.MembershipRoleMember,
				Status: statuses[(i+j)%len(statuses)],
			}
			if err := db.Create(&membership).Error; err != nil {
				return fmt.Errorf("seed demo membership: %w", err)
			}
		}
	}

	for _, club := range clubs {
		var authors []models.Membership
		if err := db.Where("club_id = ? AND status = ?", club.ID, models.MembershipStatusApproved).
			Find(&authors).Error; err != nil {
			return err
		}
		if len(authors) == 0 {
			continue
		}

		var existing int64
		if err := db.Model(&models.Post{}).Where("club_id = ?", club.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		for k := 0; k < opts.PostsPerClub; k++ {
			author := authors[k%len(authors)]
			postType := models.PostTypeBlog
			// News comes from the admin row seeded with the club.
			if k%3 == 0 {
				for _, a := range authors {
					if a.Role == models.MembershipRoleAdmin {
						author = a
						postType = models.PostTypeNews
						break
					}
				}
			}

			post := models.Post{
				Title:       gofakeit.Sentence(5),
				Body:        gofakeit.Paragraph(2, 4, 12, " "),
				Type:        postType,
				ClubID:      club.ID,
				AuthorID:    author.UserID,
				IsPublished: true,
			}
			if err := db.Create(&post).Error; err != nil {
				return fmt.Errorf("seed demo post: %w", err)
			}
		}
	}

	return nil
}
