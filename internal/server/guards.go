package server

import (
	"errors"

	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// clubMembership loads the caller's latest membership row for the club in the
// :id route parameter. A missing row comes back as nil; the predicates on
// Membership are nil-safe.
func (s *Server) clubMembership(c *fiber.Ctx) (*models.Membership, uint, error) {
	clubID, err := s.parseID(c, "id")
	if err != nil {
		return nil, 0, errResponseWritten
	}
	userID := c.Locals("userID").(uint)

	var count int64
	if err := s.db.WithContext(c.Context()).Model(&models.Club{}).
		Where("id = ?", clubID).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Club", clubID))
		return nil, 0, errResponseWritten
	}

	var membership models.Membership
	findErr := s.db.WithContext(c.Context()).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Order("created_at DESC, id DESC").
		First(&membership).Error
	if errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, clubID, nil
	}
	if findErr != nil {
		return nil, 0, findErr
	}
	return &membership, clubID, nil
}

// RequireClubMember returns middleware that rejects callers without an
// approved membership in the club named by the :id parameter. Must be placed
// after AuthRequired.
func (s *Server) RequireClubMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		membership, clubID, err := s.clubMembership(c)
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !membership.IsApprovedMember() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You must be a member to view this page"))
		}
		c.Locals("clubID", clubID)
		return c.Next()
	}
}

// RequireClubAdmin returns middleware that rejects callers who are not the
// admin of the club named by the :id parameter. Must be placed after
// AuthRequired.
func (s *Server) RequireClubAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		membership, clubID, err := s.clubMembership(c)
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !membership.IsAdmin() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Only club admins can manage memberships"))
		}
		c.Locals("clubID", clubID)
		return c.Next()
	}
}
