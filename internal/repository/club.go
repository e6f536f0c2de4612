package repository

import (
	"context"
	"strings"

	"clubhub/internal/models"
	"clubhub/internal/observability"

	"gorm.io/gorm"
)

// ClubFilter narrows club listings by case-insensitive substring match.
type ClubFilter struct {
	NameContains        string
	DescriptionContains string
	Limit               int
	Offset              int
}

// ClubRepository defines the interface for club data operations
type ClubRepository interface {
	// CreateWithAdminMembership persists the club and an approved admin
	// membership for its creator in a single transaction.
	CreateWithAdminMembership(ctx context.Context, club *models.Club) error
	List(ctx context.Context, filter ClubFilter) ([]*models.Club, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Club, error)
	GetByID(ctx context.Context, id uint) (*models.Club, error)
	NameOrSlugTaken(ctx context.Context, name, slug string) (bool, error)
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) CreateWithAdminMembership(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		membership := models.Membership{
			UserID: club.CreatorID,
			ClubID: club.ID,
			Role:   models.MembershipRoleAdmin,
			Status: models.MembershipStatusApproved,
		}
		return tx.Create(&membership).Error
	})
}

// memberCountSelect exposes the approved-member count as a computed column.
const memberCountSelect = "clubs.*, " +
	"(SELECT COUNT(*) FROM memberships m WHERE m.club_id = clubs.id AND m.status = ?) AS member_count"

func (r *clubRepository) List(ctx context.Context, filter ClubFilter) ([]*models.Club, int64, error) {
	defer observability.TrackQuery("list", "clubs")()

	base := r.db.WithContext(ctx).Model(&models.Club{})
	if q := strings.TrimSpace(filter.NameContains); q != "" {
		base = base.Where("LOWER(clubs.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if q := strings.TrimSpace(filter.DescriptionContains); q != "" {
		base = base.Where("LOWER(clubs.description) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clubs []*models.Club
	err := base.
		Select(memberCountSelect, models.MembershipStatusApproved).
		Preload("Creator").
		Order("clubs.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&clubs).Error
	if err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

func (r *clubRepository) GetBySlug(ctx context.Context, slug string) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).
		Select(memberCountSelect, models.MembershipStatusApproved).
		Preload("Creator").
		Where("clubs.slug = ?", slug).
		First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) GetByID(ctx context.Context, id uint) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) NameOrSlugTaken(ctx context.Context, name, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Club{}).
		Where("LOWER(name) = ? OR slug = ?", strings.ToLower(name), slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
