package server

import (
	"context"

	"clubhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// transitionHandler adapts a membership transition method to a Fiber handler.
// Transitions that turn out to be no-ops still answer 200 with changed=false.
func (s *Server) transitionHandler(
	transition func(ctx context.Context, membershipID, actorID uint) (*service.TransitionResult, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID := c.Locals("userID").(uint)
		membershipID, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		result, err := transition(c.Context(), membershipID, actorID)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(result)
	}
}

// ApproveMembership handles POST /api/memberships/:id/approve
// @Summary Approve a join request
// @Description Approve a pending membership request. Club admin only. Already-processed requests are idempotent no-ops.
// @Tags memberships
// @Produce json
// @Param id path int true "Membership ID"
// @Success 200 {object} service.TransitionResult
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /memberships/{id}/approve [post]
func (s *Server) ApproveMembership(c *fiber.Ctx) error {
	return s.transitionHandler(s.membershipService.Approve)(c)
}

// RejectMembership handles POST /api/memberships/:id/reject
// @Summary Reject a join request
// @Description Reject a pending membership request. Club admin only. Already-processed requests are idempotent no-ops.
// @Tags memberships
// @Produce json
// @Param id path int true "Membership ID"
// @Success 200 {object} service.TransitionResult
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /memberships/{id}/reject [post]
func (s *Server) RejectMembership(c *fiber.Ctx) error {
	return s.transitionHandler(s.membershipService.Reject)(c)
}

// PromoteMembership handles POST /api/memberships/:id/promote
// @Summary Promote a member to moderator
// @Description Promote an approved member to moderator. Club admin only. Admin rows are immutable.
// @Tags memberships
// @Produce json
// @Param id path int true "Membership ID"
// @Success 200 {object} service.TransitionResult
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /memberships/{id}/promote [post]
func (s *Server) PromoteMembership(c *fiber.Ctx) error {
	return s.transitionHandler(s.membershipService.Promote)(c)
}

// DemoteMembership handles POST /api/memberships/:id/demote
// @Summary Demote a moderator to member
// @Description Demote an approved moderator back to member. Club admin only. Admin rows are immutable.
// @Tags memberships
// @Produce json
// @Param id path int true "Membership ID"
// @Success 200 {object} service.TransitionResult
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /memberships/{id}/demote [post]
func (s *Server) DemoteMembership(c *fiber.Ctx) error {
	return s.transitionHandler(s.membershipService.Demote)(c)
}
