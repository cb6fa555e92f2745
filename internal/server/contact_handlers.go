package server

import (
	"rolodex/internal/models"
	"rolodex/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultContactLimit = 100

type contactRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       string `json:"birthday"`
	AdditionalData string `json:"additional_data"`
}

func (r contactRequest) toInput() service.ContactInput {
	return service.ContactInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
		Birthday:       r.Birthday,
		AdditionalData: r.AdditionalData,
	}
}

// GetContacts handles GET /api/contacts
func (s *Server) GetContacts(c *fiber.Ctx) error {
	p := parsePagination(c, defaultContactLimit)

	contacts, err := s.contactService.List(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return c.JSON(contacts)
}

// GetContact handles GET /api/contacts/:id
func (s *Server) GetContact(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	contact, err := s.contactService.GetByID(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(contact)
}

// CreateContact handles POST /api/contacts
func (s *Server) CreateContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contact, err := s.contactService.Create(c.Context(), currentUserID(c), req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// UpdateContact handles PUT /api/contacts/:id
func (s *Server) UpdateContact(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contact, err := s.contactService.Update(c.Context(), currentUserID(c), id, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(contact)
}

// DeleteContact handles DELETE /api/contacts/:id
func (s *Server) DeleteContact(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contactService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SearchContacts handles GET /api/contacts/search?text=
func (s *Server) SearchContacts(c *fiber.Ctx) error {
	p := parsePagination(c, defaultContactLimit)

	contacts, err := s.contactService.Search(c.Context(), currentUserID(c), c.Query("text"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return c.JSON(contacts)
}

// UpcomingBirthdays handles POST /api/contacts/upcoming-birthdays
func (s *Server) UpcomingBirthdays(c *fiber.Ctx) error {
	var req struct {
		Days int `json:"days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contacts, err := s.contactService.UpcomingBirthdays(c.Context(), currentUserID(c), req.Days)
	if err != nil {
		return respondServiceError(c, err)
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return c.JSON(contacts)
}
