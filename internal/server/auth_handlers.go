package server

import (
	"errors"

	"rolodex/internal/auth"
	"rolodex/internal/models"
	"rolodex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":   user,
		"detail": "User successfully created. Check your email for confirmation.",
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	token, err := s.userService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// RequestEmail handles POST /api/auth/request_email, re-sending the
// confirmation mail. The response never reveals whether the email exists.
func (s *Server) RequestEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	msg, err := s.userService.RequestEmailConfirmation(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": msg})
}

// ConfirmedEmail handles GET /api/auth/confirmed_email/:token. A malformed
// or mis-scoped token is a 422; a valid token for an unknown account is a 400.
func (s *Server) ConfirmedEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	msg, err := s.userService.ConfirmEmail(c.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity, err)
		}
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": msg})
}
