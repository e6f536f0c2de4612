package service

import (
	"context"
	"testing"

	"clubhub/internal/featureflags"
	"clubhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMembershipService(memRepo *membershipRepoStub, clubRepo *clubRepoStub, flags string) *MembershipService {
	return NewMembershipService(memRepo, clubRepo, featureflags.NewManager(flags))
}

func adminMembership(userID, clubID uint) *models.Membership {
	return &models.Membership{
		ID: 100, UserID: userID, ClubID: clubID,
		Role: models.MembershipRoleAdmin, Status: models.MembershipStatusApproved,
	}
}

func TestRequestJoin_CreatesPending(t *testing.T) {
	t.Parallel()

	memRepo := noopMembershipRepo()
	var created *models.Membership
	memRepo.createFn = func(_ context.Context, m *models.Membership) error {
		created = m
		return nil
	}

	svc := newMembershipService(memRepo, noopClubRepo(), "")
	result, err := svc.RequestJoin(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.True(t, result.Created)
	require.NotNil(t, created)
	assert.Equal(t, models.MembershipStatusPending, created.Status)
	assert.Equal(t, models.MembershipRoleMember, created.Role)
	assert.Contains(t, result.Message, "has been submitted")
}

func TestRequestJoin_ExistingMembershipIsNoOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  models.MembershipStatus
		message string
	}{
		{"pending", models.MembershipStatusPending, "Your membership request is already pending."},
		{"approved", models.MembershipStatusApproved, "You are already a member of this club."},
		{"rejected", models.MembershipStatusRejected, "Your previous membership request was rejected."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			memRepo := noopMembershipRepo()
			existing := &models.Membership{ID: 5, UserID: 7, ClubID: 1, Status: tc.status}
			memRepo.getByUserAndClubFn = func(_ context.Context, _, _ uint) (*models.Membership, error) {
				return existing, nil
			}
			memRepo.createFn = func(_ context.Context, _ *models.Membership) error {
				t.Fatal("no new row may be created")
				return nil
			}

			svc := newMembershipService(memRepo, noopClubRepo(), "")
			result, err := svc.RequestJoin(context.Background(), 7, 1)
			require.NoError(t, err)

			assert.False(t, result.Created)
			assert.Equal(t, tc.message, result.Message)
			assert.Same(t, existing, result.Membership)
		})
	}
}

func TestRequestJoin_RejoinAfterRejectionFlag(t *testing.T) {
	t.Parallel()

	memRepo := noopMembershipRepo()
	rejected := &models.Membership{ID: 5, UserID: 7, ClubID: 1, Status: models.MembershipStatusRejected}
	memRepo.getByUserAndClubFn = func(_ context.Context, _, _ uint) (*models.Membership, error) {
		return rejected, nil
	}
	createdCalls := 0
	memRepo.createFn = func(_ context.Context, _ *models.Membership) error {
		createdCalls++
		return nil
	}

	svc := newMembershipService(memRepo, noopClubRepo(), "rejoin_after_rejection=on")
	result, err := svc.RequestJoin(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, 1, createdCalls)
}

func TestRequestJoin_DuplicateRaceReportsWinner(t *testing.T) {
	t.Parallel()

	memRepo := noopMembershipRepo()
	winner := &models.Membership{ID: 9, UserID: 7, ClubID: 1, Status: models.MembershipStatusPending}
	lookups := 0
	memRepo.getByUserAndClubFn = func(_ context.Context, _, _ uint) (*models.Membership, error) {
		lookups++
		if lookups == 1 {
			// First check sees no row; the concurrent request commits
			// between the check and our insert.
			return nil, nil
		}
		return winner, nil
	}
	memRepo.createFn = func(_ context.Context, _ *models.Membership) error {
		return gorm.ErrDuplicatedKey
	}

	svc := newMembershipService(memRepo, noopClubRepo(), "")
	result, err := svc.RequestJoin(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Same(t, winner, result.Membership)
	assert.Equal(t, "Your membership request is already pending.", result.Message)
}

func TestRequestJoin_MissingClub(t *testing.T) {
	t.Parallel()

	clubRepo := noopClubRepo()
	clubRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Club, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := newMembershipService(noopMembershipRepo(), clubRepo, "")
	_, err := svc.RequestJoin(context.Background(), 7, 999)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestApprove_PendingRequest(t *testing.T) {
	t.Parallel()

	memRepo := noopMembershipRepo()
	target := &models.Membership{
		ID: 5, UserID: 7, ClubID: 1,
		Role: models.MembershipRoleMember, Status: models.MembershipStatusPending,
		User: &models.User{ID: 7, Username: "joiner"},
		Club: &models.Club{ID: 1, Slug: "chess-club"},
	}
	memRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Membership, error) { return target, nil }
	memRepo.getByUserAndClubFn = func(_ context.Context, userID, clubID uint) (*models.Membership, error) {
		return adminMembership(userID, clubID), nil
	}
	var saved *models.Membership
	memRepo.saveFn = func(_ context.Context, m *models.Membership) error {
		saved = m
		return nil
	}

	svc := newMembershipService(memRepo, noopClubRepo(), "")
	result, err := svc.Approve(context.Background(), 5, 2)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	require.NotNil(t, saved)
	assert.Equal(t, models.MembershipStatusApproved, saved.Status)
	assert.Equal(t, "joiner has been approved as a member!", result.Message)
}

func TestApprove_NonAdminActorForbidden(t *testing.T) {
	t.Parallel()

	memRepo := noopMembershipRepo()
	target := &models.Membership{ID: 5, UserID: 7, ClubID: 1, Status: models.MembershipStatusPending}
	memRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Membership, error) { return target, nil }
	memRepo.getByUserAndClubFn = func(_ context.Context, userID, clubID uint) (*models.Membership, error) {
		// Approved moderator, not admin.
		return &models.Membership{
			UserID: userID, ClubID: clubID,
			Role: models.MembershipRoleModerator, Status: models.MembershipStatusApproved,
		}, nil
	}
	memRepo.saveFn = func(_ context.Context, _ *models.Membership) error {
		t.Fatal("save must not be called")
		return nil
	}

	svc := newMembershipService(memRepo, noopClubRepo(), "")
	_, err := svc.Approve(context.Background(), 5, 3)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestApproveReject_AlreadyProcessedIsNoOp(t *testing.T) {
	t.Parallel()

	for _, status := range []models.MembershipStatus{
		models.MembershipStatusApproved,
		models.MembershipStatusRejected,
	} {
		memRepo := noopMembershipRepo()
		target := &models.Membership{
			ID: 5, UserID: 7, ClubID: 1,
			Role: models.MembershipRoleMember, Status: status,
			User: &models.User{ID: 7, Username: "joiner"},
		}
		memRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Membership, error) { return target, nil }
		memRepo.getByUserAndClubFn = func(_ context.Context, userID, clubID uint) (*models.Membership, error) {
			return adminMembership(userID, clubID), nil
		}
		memRepo.saveFn = func(_ context.Context, _ *models.Membership) error {
			t.Fatal("save must not be called for processed requests")
			return nil
		}

		svc := newMembershipService(memRepo, noopClubRepo(), "")

		result, err := svc.Approve(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, "This membership request has already been processed.", result.Message)
		assert.Equal(t, status, target.Status)

		result, err = svc.Reject(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, status, target.Status)
	}
}

func TestReject_PendingRequest(t *testing.T) {
	t.Parallel()

	memRepo := noopMembershipRepo()
	target := &models.Membership{
		ID: 5, UserID: 7, ClubID: 1,
		Role: models.MembershipRoleMember, Status: models.MembershipStatusPending,
		User: &models.User{ID: 7, Username: "joiner"},
	}
	memRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Membership, error) { return target, nil }
	memRepo.getByUserAndClubFn = func(_ context.Context, userID, clubID uint) (*models.Membership, error) {
		return adminMembership(userID, clubID), nil
	}

	svc := newMembershipService(memRepo, noopClubRepo(), "")
	result, err := svc.Reject(context.Background(), 5, 2)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, models.MembershipStatusRejected, target.Status)
	assert.Equal(t, "joiner's request has been rejected.", result.Message)
}

func TestPromoteDemote_RoleTransitions(t *testing.T) {
	t.Parallel()

	newTarget := func(role models.MembershipRole, status models.MembershipStatus) *models.Membership {
		return &models.Membership{
			ID: 5, UserID: 7, ClubID: 1, Role: role, Status: status,
			User: &models.User{ID: 7, Username: "joiner"},
		}
	}

	setup := func(target *models.Membership) (*MembershipService, *bool) {
		memRepo := noopMembershipRepo()
		memRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Membership, error) { return target, nil }
		memRepo.getByUserAndClubFn = func(_ context.Context, userID, clubID uint) (*models.Membership, error) {
			return adminMembership(userID, clubID), nil
		}
		saved := false
		memRepo.saveFn = func(_ context.Context, _ *models.Membership) error {
			saved = true
			return nil
		}
		return newMembershipService(memRepo, noopClubRepo(), ""), &saved
	}

	t.Run("promote approved member", func(t *testing.T) {
		target := newTarget(models.MembershipRoleMember, models.MembershipStatusApproved)
		svc, saved := setup(target)

		result, err := svc.Promote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.True(t, *saved)
		assert.Equal(t, models.MembershipRoleModerator, target.Role)
		assert.Equal(t, "joiner has been promoted to Moderator!", result.Message)
	})

	t.Run("demote approved moderator", func(t *testing.T) {
		target := newTarget(models.MembershipRoleModerator, models.MembershipStatusApproved)
		svc, saved := setup(target)

		result, err := svc.Demote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.True(t, *saved)
		assert.Equal(t, models.MembershipRoleMember, target.Role)
	})

	t.Run("admin row is immutable", func(t *testing.T) {
		target := newTarget(models.MembershipRoleAdmin, models.MembershipStatusApproved)
		svc, saved := setup(target)

		result, err := svc.Promote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.False(t, *saved)
		assert.Equal(t, "Cannot change role of club admin.", result.Message)

		result, err = svc.Demote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, "Cannot change role of club admin.", result.Message)
		assert.Equal(t, models.MembershipRoleAdmin, target.Role)
	})

	t.Run("non-approved target cannot be promoted", func(t *testing.T) {
		target := newTarget(models.MembershipRoleMember, models.MembershipStatusPending)
		svc, saved := setup(target)

		result, err := svc.Promote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.False(t, *saved)
		assert.Equal(t, "Can only promote approved members.", result.Message)
	})

	t.Run("non-approved target cannot be demoted", func(t *testing.T) {
		target := newTarget(models.MembershipRoleModerator, models.MembershipStatusRejected)
		svc, _ := setup(target)

		result, err := svc.Demote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, "Can only demote approved members.", result.Message)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		target := newTarget(models.MembershipRoleModerator, models.MembershipStatusApproved)
		svc, saved := setup(target)

		result, err := svc.Promote(context.Background(), 5, 2)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.False(t, *saved)
	})
}

func TestTransition_MissingMembership(t *testing.T) {
	t.Parallel()

	svc := newMembershipService(noopMembershipRepo(), noopClubRepo(), "")
	_, err := svc.Approve(context.Background(), 999, 2)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
