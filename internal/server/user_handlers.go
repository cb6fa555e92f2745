package server

import (
	"rolodex/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}
	return c.JSON(user)
}

// UpdateAvatar handles PATCH /api/users/avatar. Images are hosted
// externally; the endpoint stores the URL.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateAvatar(c.Context(), currentUserID(c), req.Avatar)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}
