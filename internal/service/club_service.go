// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"strings"

	"clubhub/internal/cache"
	"clubhub/internal/models"
	"clubhub/internal/repository"
	"clubhub/internal/validation"

	"gorm.io/gorm"
)

// ClubsPerPage is the page size for club listings.
const ClubsPerPage = 12

const recentPostsPerType = 5

type ClubService struct {
	clubRepo repository.ClubRepository
	postRepo repository.PostRepository
	memRepo  repository.MembershipRepository
}

type CreateClubInput struct {
	CreatorID   uint
	Name        string
	Description string
}

type ListClubsInput struct {
	Name        string
	Description string
	Page        int
}

// ClubDetail is the aggregate returned for a club page: the club itself, its
// five most recent published posts of each type, and the caller's membership.
type ClubDetail struct {
	Club           *models.Club       `json:"club"`
	NewsPosts      []*models.Post     `json:"news_posts"`
	BlogPosts      []*models.Post     `json:"blog_posts"`
	UserMembership *models.Membership `json:"user_membership,omitempty"`
}

func NewClubService(
	clubRepo repository.ClubRepository,
	postRepo repository.PostRepository,
	memRepo repository.MembershipRepository,
) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		postRepo: postRepo,
		memRepo:  memRepo,
	}
}

// CreateClub persists a new club and, atomically, an approved admin
// membership for its creator.
func (s *ClubService) CreateClub(ctx context.Context, in CreateClubInput) (*models.Club, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)

	if err := validation.ValidateClubName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	slug := validation.Slugify(name)
	if err := validation.ValidateClubSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	taken, err := s.clubRepo.NameOrSlugTaken(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("A club with this name already exists")
	}

	club := &models.Club{
		Name:        name,
		Slug:        slug,
		Description: description,
		CreatorID:   in.CreatorID,
	}
	if err := s.clubRepo.CreateWithAdminMembership(ctx, club); err != nil {
		// Lost a race with a concurrent creation of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("A club with this name already exists")
		}
		return nil, err
	}
	return club, nil
}

// ListClubs returns a page of clubs, newest first, with approved-member counts.
func (s *ClubService) ListClubs(ctx context.Context, in ListClubsInput) ([]*models.Club, int64, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	return s.clubRepo.List(ctx, repository.ClubFilter{
		NameContains:        in.Name,
		DescriptionContains: in.Description,
		Limit:               ClubsPerPage,
		Offset:              (page - 1) * ClubsPerPage,
	})
}

// GetClubDetail assembles the club page aggregate. Anonymous reads go through
// the Redis cache; the caller's membership is always fetched fresh.
func (s *ClubService) GetClubDetail(ctx context.Context, slug string, currentUserID uint) (*ClubDetail, error) {
	var detail ClubDetail

	fetch := func() error {
		club, err := s.clubRepo.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		news, err := s.postRepo.RecentPublishedByClub(ctx, club.ID, models.PostTypeNews, recentPostsPerType)
		if err != nil {
			return err
		}
		blogs, err := s.postRepo.RecentPublishedByClub(ctx, club.ID, models.PostTypeBlog, recentPostsPerType)
		if err != nil {
			return err
		}
		detail.Club = club
		detail.NewsPosts = news
		detail.BlogPosts = blogs
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ClubKey(slug), &detail, cache.ClubTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Club", slug)
		}
		return nil, err
	}

	if currentUserID != 0 {
		membership, err := s.memRepo.GetByUserAndClub(ctx, currentUserID, detail.Club.ID)
		if err != nil {
			return nil, err
		}
		detail.UserMembership = membership
	}

	return &detail, nil
}
