package service

import (
	"context"
	"errors"
	"strings"

	"clubhub/internal/cache"
	"clubhub/internal/models"
	"clubhub/internal/repository"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
	memRepo  repository.MembershipRepository
	clubRepo repository.ClubRepository
}

type CreatePostInput struct {
	ClubID   uint
	AuthorID uint
	Title    string
	Body     string
	Type     models.PostType
}

// PostDetail is the aggregate returned for a post page.
type PostDetail struct {
	Post           *models.Post       `json:"post"`
	UserMembership *models.Membership `json:"user_membership,omitempty"`
}

func NewPostService(
	postRepo repository.PostRepository,
	memRepo repository.MembershipRepository,
	clubRepo repository.ClubRepository,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		memRepo:  memRepo,
		clubRepo: clubRepo,
	}
}

// CreatePost publishes a post in a club. The author must hold an approved
// membership; NEWS additionally requires moderator or admin role. The role
// check here is authoritative regardless of what the client offered.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	postType := in.Type
	if postType == "" {
		postType = models.PostTypeBlog
	}
	switch postType {
	case models.PostTypeBlog, models.PostTypeNews:
		// valid
	default:
		return nil, models.NewValidationError("Invalid post type")
	}

	const maxTitleLen = 200
	const maxBodyLen = 50000

	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return nil, models.NewValidationError("Body too long (max 50000 characters)")
	}

	club, err := s.clubRepo.GetByID(ctx, in.ClubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Club", in.ClubID)
		}
		return nil, err
	}

	membership, err := s.memRepo.GetByUserAndClub(ctx, in.AuthorID, club.ID)
	if err != nil {
		return nil, err
	}
	if !membership.IsApprovedMember() {
		return nil, models.NewForbiddenError("You must be a member to create posts")
	}
	if postType == models.PostTypeNews && !membership.IsModeratorOrAbove() {
		return nil, models.NewForbiddenError("Only admins and moderators can create news posts")
	}

	post := &models.Post{
		Title:       title,
		Body:        body,
		Type:        postType,
		ClubID:      club.ID,
		Club:        club,
		AuthorID:    in.AuthorID,
		IsPublished: true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a published post with its club and author. Unpublished or
// missing posts are indistinguishable (both NotFound). Anonymous reads are
// served through the Redis cache.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*PostDetail, error) {
	var post models.Post

	fetch := func() error {
		p, err := s.postRepo.GetPublishedByID(ctx, id)
		if err != nil {
			return err
		}
		post = *p
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}

	detail := &PostDetail{Post: &post}
	if currentUserID != 0 {
		membership, err := s.memRepo.GetByUserAndClub(ctx, currentUserID, post.ClubID)
		if err != nil {
			return nil, err
		}
		detail.UserMembership = membership
	}
	return detail, nil
}
