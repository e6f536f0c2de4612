package repository

import (
	"context"

	"clubhub/internal/cache"
	"clubhub/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetPublishedByID returns gorm.ErrRecordNotFound for both missing and
	// unpublished posts; unpublished rows are invisible to readers.
	GetPublishedByID(ctx context.Context, id uint) (*models.Post, error)
	RecentPublishedByClub(ctx context.Context, clubID uint, postType models.PostType, limit int) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Club/Author are only carried for cache invalidation; never write them.
	err := r.db.WithContext(ctx).Omit("Club", "Author").Create(post).Error
	if err == nil && post.Club != nil {
		cache.InvalidateClub(ctx, post.Club.Slug)
	}
	return err
}

func (r *postRepository) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Club").
		Preload("Author").
		Where("is_published = ?", true).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) RecentPublishedByClub(ctx context.Context, clubID uint, postType models.PostType, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("club_id = ? AND type = ? AND is_published = ?", clubID, postType, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
