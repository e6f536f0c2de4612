package server

import (
	"strings"

	"clubhub/internal/models"
	"clubhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/clubs/:id/posts
// @Summary Create a post in a club
// @Description Publish a blog or news post. Requires an approved membership; news additionally requires moderator or admin role.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Club ID"
// @Param request body object{title=string,body=string,type=string} true "Post (type BLOG or NEWS, defaults to BLOG)"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /clubs/{id}/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	clubID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Type  string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		ClubID:   clubID,
		AuthorID: userID,
		Title:    req.Title,
		Body:     req.Body,
		Type:     models.PostType(strings.ToUpper(strings.TrimSpace(req.Type))),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
// @Summary Get post detail
// @Description Fetch a published post with its club and author. Unpublished posts are invisible. With a valid bearer token the caller's membership in the post's club is included.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, _ := s.optionalUserID(c)

	detail, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}
