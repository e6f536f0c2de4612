package service

import (
	"context"
	"errors"
	"fmt"

	"clubhub/internal/cache"
	"clubhub/internal/featureflags"
	"clubhub/internal/models"
	"clubhub/internal/repository"

	"gorm.io/gorm"
)

// MembershipService owns the membership state machine:
// NoMembership -> PENDING -> {APPROVED, REJECTED}, with the approved
// MEMBER <-> MODERATOR role transitions. ADMIN rows are created only
// alongside their club and are never modified.
type MembershipService struct {
	memRepo  repository.MembershipRepository
	clubRepo repository.ClubRepository
	flags    *featureflags.Manager
}

// JoinResult reports the outcome of a join request. Created is false when an
// existing membership made the request an informational no-op.
type JoinResult struct {
	Membership *models.Membership `json:"membership"`
	Created    bool               `json:"created"`
	Message    string             `json:"message"`
}

// TransitionResult reports the outcome of a membership state transition.
// Changed is false for idempotent no-ops (already-processed requests,
// admin rows, non-approved promote/demote targets).
type TransitionResult struct {
	Membership *models.Membership `json:"membership"`
	Changed    bool               `json:"changed"`
	Message    string             `json:"message"`
}

func NewMembershipService(
	memRepo repository.MembershipRepository,
	clubRepo repository.ClubRepository,
	flags *featureflags.Manager,
) *MembershipService {
	return &MembershipService{
		memRepo:  memRepo,
		clubRepo: clubRepo,
		flags:    flags,
	}
}

// RequestJoin submits a join request for the user. An existing membership in
// any status makes this a no-op that reports the current state; a rejected
// row permanently blocks re-application unless the rejoin_after_rejection
// flag is enabled.
func (s *MembershipService) RequestJoin(ctx context.Context, userID, clubID uint) (*JoinResult, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Club", clubID)
		}
		return nil, err
	}

	existing, err := s.memRepo.GetByUserAndClub(ctx, userID, clubID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		switch existing.Status {
		case models.MembershipStatusPending:
			return &JoinResult{
				Membership: existing,
				Message:    "Your membership request is already pending.",
			}, nil
		case models.MembershipStatusApproved:
			return &JoinResult{
				Membership: existing,
				Message:    "You are already a member of this club.",
			}, nil
		case models.MembershipStatusRejected:
			if !s.flags.Enabled(featureflags.RejoinAfterRejection, userID) {
				return &JoinResult{
					Membership: existing,
					Message:    "Your previous membership request was rejected.",
				}, nil
			}
			// Flag on: fall through and submit a fresh request.
		}
	}

	return s.createPending(ctx, userID, club)
}

func (s *MembershipService) createPending(ctx context.Context, userID uint, club *models.Club) (*JoinResult, error) {
	membership := &models.Membership{
		UserID: userID,
		ClubID: club.ID,
		Role:   models.MembershipRoleMember,
		Status: models.MembershipStatusPending,
	}
	if err := s.memRepo.Create(ctx, membership); err != nil {
		// A concurrent request won the partial unique index race; report
		// the surviving row instead of failing.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := s.memRepo.GetByUserAndClub(ctx, userID, club.ID)
			if findErr != nil {
				return nil, findErr
			}
			return &JoinResult{
				Membership: winner,
				Message:    "Your membership request is already pending.",
			}, nil
		}
		return nil, err
	}

	return &JoinResult{
		Membership: membership,
		Created:    true,
		Message:    fmt.Sprintf("Your request to join %q has been submitted!", club.Name),
	}, nil
}

// authorizeClubAdmin verifies the actor holds an approved admin membership in
// the club.
func (s *MembershipService) authorizeClubAdmin(ctx context.Context, actorID, clubID uint) error {
	actor, err := s.memRepo.GetByUserAndClub(ctx, actorID, clubID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Only club admins can manage memberships")
	}
	return nil
}

func (s *MembershipService) getMembership(ctx context.Context, id uint) (*models.Membership, error) {
	membership, err := s.memRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Membership", id)
		}
		return nil, err
	}
	return membership, nil
}

// Approve transitions a pending membership to approved. Non-pending rows are
// left untouched and reported as already processed.
func (s *MembershipService) Approve(ctx context.Context, membershipID, actorID uint) (*TransitionResult, error) {
	return s.resolveRequest(ctx, membershipID, actorID, models.MembershipStatusApproved)
}

// Reject transitions a pending membership to rejected, with the same
// idempotent no-op behavior as Approve.
func (s *MembershipService) Reject(ctx context.Context, membershipID, actorID uint) (*TransitionResult, error) {
	return s.resolveRequest(ctx, membershipID, actorID, models.MembershipStatusRejected)
}

func (s *MembershipService) resolveRequest(ctx context.Context, membershipID, actorID uint, target models.MembershipStatus) (*TransitionResult, error) {
	membership, err := s.getMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeClubAdmin(ctx, actorID, membership.ClubID); err != nil {
		return nil, err
	}

	if membership.Status != models.MembershipStatusPending {
		return &TransitionResult{
			Membership: membership,
			Message:    "This membership request has already been processed.",
		}, nil
	}

	membership.Status = target
	if err := s.memRepo.Save(ctx, membership); err != nil {
		return nil, err
	}
	s.invalidateClubCache(ctx, membership)

	message := fmt.Sprintf("%s has been approved as a member!", membership.User.Username)
	if target == models.MembershipStatusRejected {
		message = fmt.Sprintf("%s's request has been rejected.", membership.User.Username)
	}
	return &TransitionResult{
		Membership: membership,
		Changed:    true,
		Message:    message,
	}, nil
}

// Promote raises an approved member to moderator. Admin rows are immutable;
// non-approved rows cannot be promoted.
func (s *MembershipService) Promote(ctx context.Context, membershipID, actorID uint) (*TransitionResult, error) {
	return s.changeRole(ctx, membershipID, actorID, models.MembershipRoleModerator)
}

// Demote lowers an approved moderator back to member, with the same guards
// as Promote.
func (s *MembershipService) Demote(ctx context.Context, membershipID, actorID uint) (*TransitionResult, error) {
	return s.changeRole(ctx, membershipID, actorID, models.MembershipRoleMember)
}

func (s *MembershipService) changeRole(ctx context.Context, membershipID, actorID uint, target models.MembershipRole) (*TransitionResult, error) {
	membership, err := s.getMembership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeClubAdmin(ctx, actorID, membership.ClubID); err != nil {
		return nil, err
	}

	verb := "promote"
	if target == models.MembershipRoleMember {
		verb = "demote"
	}

	switch {
	case membership.Role == models.MembershipRoleAdmin:
		return &TransitionResult{
			Membership: membership,
			Message:    "Cannot change role of club admin.",
		}, nil
	case membership.Status != models.MembershipStatusApproved:
		return &TransitionResult{
			Membership: membership,
			Message:    fmt.Sprintf("Can only %s approved members.", verb),
		}, nil
	case membership.Role == target:
		return &TransitionResult{
			Membership: membership,
			Message:    fmt.Sprintf("%s already holds that role.", membership.User.Username),
		}, nil
	}

	membership.Role = target
	if err := s.memRepo.Save(ctx, membership); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s has been promoted to Moderator!", membership.User.Username)
	if target == models.MembershipRoleMember {
		message = fmt.Sprintf("%s has been demoted to Member.", membership.User.Username)
	}
	return &TransitionResult{
		Membership: membership,
		Changed:    true,
		Message:    message,
	}, nil
}

// ListMembers returns the approved members of a club. Route guards enforce
// that the caller is an approved member.
func (s *MembershipService) ListMembers(ctx context.Context, clubID uint, filter repository.MemberFilter) ([]*models.Membership, error) {
	return s.memRepo.ListApprovedByClub(ctx, clubID, filter)
}

// ListRequests returns the pending join requests of a club. Route guards
// enforce that the caller is the club admin.
func (s *MembershipService) ListRequests(ctx context.Context, clubID uint, usernameContains string) ([]*models.Membership, error) {
	return s.memRepo.ListPendingByClub(ctx, clubID, usernameContains)
}

// invalidateClubCache drops the cached club detail after a transition that
// changes the approved member count.
func (s *MembershipService) invalidateClubCache(ctx context.Context, membership *models.Membership) {
	if membership.Club != nil {
		cache.InvalidateClub(ctx, membership.Club.Slug)
	}
}
