package repository

import (
	"context"
	"errors"
	"strings"

	"clubhub/internal/models"

	"gorm.io/gorm"
)

// MemberFilter narrows member listings by username substring and role.
type MemberFilter struct {
	UsernameContains string
	Role             models.MembershipRole
}

// MembershipRepository defines the interface for membership data operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	GetByID(ctx context.Context, id uint) (*models.Membership, error)
	// GetByUserAndClub returns the latest membership row for the pair, or
	// (nil, nil) when none exists.
	GetByUserAndClub(ctx context.Context, userID, clubID uint) (*models.Membership, error)
	ListApprovedByClub(ctx context.Context, clubID uint, filter MemberFilter) ([]*models.Membership, error)
	ListPendingByClub(ctx context.Context, clubID uint, usernameContains string) ([]*models.Membership, error)
	Save(ctx context.Context, membership *models.Membership) error
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *membershipRepository) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Club").
		First(&membership, id).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) GetByUserAndClub(ctx context.Context, userID, clubID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Order("created_at DESC, id DESC").
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) ListApprovedByClub(ctx context.Context, clubID uint, filter MemberFilter) ([]*models.Membership, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.club_id = ? AND memberships.status = ?", clubID, models.MembershipStatusApproved)

	if u := strings.TrimSpace(filter.UsernameContains); u != "" {
		q = q.Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(u)+"%")
	}
	if filter.Role != "" {
		q = q.Where("memberships.role = ?", filter.Role)
	}

	var memberships []*models.Membership
	err := q.Order("memberships.created_at DESC").Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) ListPendingByClub(ctx context.Context, clubID uint, usernameContains string) ([]*models.Membership, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.club_id = ? AND memberships.status = ?", clubID, models.MembershipStatusPending)

	if u := strings.TrimSpace(usernameContains); u != "" {
		q = q.Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(u)+"%")
	}

	var memberships []*models.Membership
	err := q.Order("memberships.created_at DESC").Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) Save(ctx context.Context, membership *models.Membership) error {
	// User/Club may be preloaded on the row; never write them back.
	return r.db.WithContext(ctx).Omit("User", "Club").Save(membership).Error
}
