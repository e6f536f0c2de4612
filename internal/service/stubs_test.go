package service

import (
	"context"

	"clubhub/internal/models"
	"clubhub/internal/repository"

	"gorm.io/gorm"
)

// clubRepoStub is a stub for repository.ClubRepository.
type clubRepoStub struct {
	createWithAdminFn func(context.Context, *models.Club) error
	listFn            func(context.Context, repository.ClubFilter) ([]*models.Club, int64, error)
	getBySlugFn       func(context.Context, string) (*models.Club, error)
	getByIDFn         func(context.Context, uint) (*models.Club, error)
	nameOrSlugTakenFn func(context.Context, string, string) (bool, error)
}

func (s *clubRepoStub) CreateWithAdminMembership(ctx context.Context, club *models.Club) error {
	return s.createWithAdminFn(ctx, club)
}
func (s *clubRepoStub) List(ctx context.Context, filter repository.ClubFilter) ([]*models.Club, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *clubRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Club, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *clubRepoStub) GetByID(ctx context.Context, id uint) (*models.Club, error) {
	return s.getByIDFn(ctx, id)
}
func (s *clubRepoStub) NameOrSlugTaken(ctx context.Context, name, slug string) (bool, error) {
	return s.nameOrSlugTakenFn(ctx, name, slug)
}

func noopClubRepo() *clubRepoStub {
	return &clubRepoStub{
		createWithAdminFn: func(_ context.Context, _ *models.Club) error { return nil },
		listFn: func(_ context.Context, _ repository.ClubFilter) ([]*models.Club, int64, error) {
			return nil, 0, nil
		},
		getBySlugFn: func(_ context.Context, _ string) (*models.Club, error) {
			return nil, gorm.ErrRecordNotFound
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Club, error) {
			return &models.Club{ID: id, Name: "Chess Club", Slug: "chess-club"}, nil
		},
		nameOrSlugTakenFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
	}
}

// membershipRepoStub is a stub for repository.MembershipRepository.
type membershipRepoStub struct {
	createFn             func(context.Context, *models.Membership) error
	getByIDFn            func(context.Context, uint) (*models.Membership, error)
	getByUserAndClubFn   func(context.Context, uint, uint) (*models.Membership, error)
	listApprovedByClubFn func(context.Context, uint, repository.MemberFilter) ([]*models.Membership, error)
	listPendingByClubFn  func(context.Context, uint, string) ([]*models.Membership, error)
	saveFn               func(context.Context, *models.Membership) error
}

func (s *membershipRepoStub) Create(ctx context.Context, m *models.Membership) error {
	return s.createFn(ctx, m)
}
func (s *membershipRepoStub) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	return s.getByIDFn(ctx, id)
}
func (s *membershipRepoStub) GetByUserAndClub(ctx context.Context, userID, clubID uint) (*models.Membership, error) {
	return s.getByUserAndClubFn(ctx, userID, clubID)
}
func (s *membershipRepoStub) ListApprovedByClub(ctx context.Context, clubID uint, filter repository.MemberFilter) ([]*models.Membership, error) {
	return s.listApprovedByClubFn(ctx, clubID, filter)
}
func (s *membershipRepoStub) ListPendingByClub(ctx context.Context, clubID uint, usernameContains string) ([]*models.Membership, error) {
	return s.listPendingByClubFn(ctx, clubID, usernameContains)
}
func (s *membershipRepoStub) Save(ctx context.Context, m *models.Membership) error {
	return s.saveFn(ctx, m)
}

func noopMembershipRepo() *membershipRepoStub {
	return &membershipRepoStub{
		createFn:  func(_ context.Context, _ *models.Membership) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Membership, error) { return nil, gorm.ErrRecordNotFound },
		getByUserAndClubFn: func(_ context.Context, _, _ uint) (*models.Membership, error) {
			return nil, nil
		},
		listApprovedByClubFn: func(_ context.Context, _ uint, _ repository.MemberFilter) ([]*models.Membership, error) {
			return nil, nil
		},
		listPendingByClubFn: func(_ context.Context, _ uint, _ string) ([]*models.Membership, error) {
			return nil, nil
		},
		saveFn: func(_ context.Context, _ *models.Membership) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn                func(context.Context, *models.Post) error
	getPublishedByIDFn      func(context.Context, uint) (*models.Post, error)
	recentPublishedByClubFn func(context.Context, uint, models.PostType, int) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getPublishedByIDFn(ctx, id)
}
func (s *postRepoStub) RecentPublishedByClub(ctx context.Context, clubID uint, postType models.PostType, limit int) ([]*models.Post, error) {
	return s.recentPublishedByClubFn(ctx, clubID, postType, limit)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getPublishedByIDFn: func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		},
		recentPublishedByClubFn: func(_ context.Context, _ uint, _ models.PostType, _ int) ([]*models.Post, error) {
			return nil, nil
		},
	}
}
