package server

import (
	"strings"

	"clubhub/internal/models"
	"clubhub/internal/repository"
	"clubhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetClubs handles GET /api/clubs
// @Summary List clubs
// @Description List clubs newest first with approved-member counts. Filterable by name and description substring.
// @Tags clubs
// @Produce json
// @Param name query string false "Name contains"
// @Param description query string false "Description contains"
// @Param page query int false "Page number (12 clubs per page)"
// @Success 200 {object} object{clubs=[]models.Club,total=int,page=int,per_page=int}
// @Router /clubs [get]
func (s *Server) GetClubs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	clubs, total, err := s.clubService.ListClubs(c.Context(), service.ListClubsInput{
		Name:        c.Query("name"),
		Description: c.Query("description"),
		Page:        page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if page < 1 {
		page = 1
	}
	return c.JSON(fiber.Map{
		"clubs":    clubs,
		"total":    total,
		"page":     page,
		"per_page": service.ClubsPerPage,
	})
}

// GetClubBySlug handles GET /api/clubs/:slug
// @Summary Get club detail
// @Description Fetch a club by slug with its five most recent published news and blog posts. With a valid bearer token the caller's membership is included.
// @Tags clubs
// @Produce json
// @Param slug path string true "Club slug"
// @Success 200 {object} service.ClubDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /clubs/{slug} [get]
func (s *Server) GetClubBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("slug is required"))
	}

	userID, _ := s.optionalUserID(c)

	detail, err := s.clubService.GetClubDetail(c.Context(), slug, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// CreateClub handles POST /api/clubs
// @Summary Create club
// @Description Create a club. The creator receives an approved admin membership atomically.
// @Tags clubs
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string} true "Club"
// @Success 201 {object} models.Club
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clubs [post]
func (s *Server) CreateClub(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	club, err := s.clubService.CreateClub(c.Context(), service.CreateClubInput{
		CreatorID:   userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(club)
}

// JoinClub handles POST /api/clubs/:id/join
// @Summary Request to join a club
// @Description Submit a membership request. Requests from users with an existing membership are informational no-ops.
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} service.JoinResult
// @Success 201 {object} service.JoinResult
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clubs/{id}/join [post]
func (s *Server) JoinClub(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	clubID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.membershipService.RequestJoin(c.Context(), userID, clubID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result)
}

// GetClubMembers handles GET /api/clubs/:id/members
// @Summary List club members
// @Description List approved members of a club. Requires an approved membership. Filterable by username substring and role.
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Param username query string false "Username contains"
// @Param role query string false "Role filter (ADMIN, MODERATOR, MEMBER)"
// @Success 200 {array} models.Membership
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clubs/{id}/members [get]
func (s *Server) GetClubMembers(c *fiber.Ctx) error {
	clubID := c.Locals("clubID").(uint)

	filter := repository.MemberFilter{
		UsernameContains: c.Query("username"),
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		filter.Role = models.MembershipRole(strings.ToUpper(role))
	}

	members, err := s.membershipService.ListMembers(c.Context(), clubID, filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(members)
}

// GetClubRequests handles GET /api/clubs/:id/requests
// @Summary List pending join requests
// @Description List pending membership requests for a club. Club admin only.
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Param username query string false "Username contains"
// @Success 200 {array} models.Membership
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clubs/{id}/requests [get]
func (s *Server) GetClubRequests(c *fiber.Ctx) error {
	clubID := c.Locals("clubID").(uint)

	requests, err := s.membershipService.ListRequests(c.Context(), clubID, c.Query("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(requests)
}
