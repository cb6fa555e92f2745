package service

import (
	"context"
	"strings"
	"time"

	"rolodex/internal/models"
	"rolodex/internal/repository"
	"rolodex/internal/validation"
)

const maxBirthdayWindowDays = 365

type ContactService struct {
	contactRepo repository.ContactRepository
}

type ContactInput struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       string
	AdditionalData string
}

func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

func (s *ContactService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Contact, error) {
	return s.contactRepo.List(ctx, userID, limit, offset)
}

func (s *ContactService) GetByID(ctx context.Context, userID, id uint) (*models.Contact, error) {
	return s.contactRepo.GetByID(ctx, userID, id)
}

func (s *ContactService) Create(ctx context.Context, userID uint, in ContactInput) (*models.Contact, error) {
	contact, err := buildContact(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, userID, id uint, in ContactInput) (*models.Contact, error) {
	contact, err := buildContact(userID, in)
	if err != nil {
		return nil, err
	}
	contact.ID = id
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return s.contactRepo.GetByID(ctx, userID, id)
}

func (s *ContactService) Delete(ctx context.Context, userID, id uint) error {
	return s.contactRepo.Delete(ctx, userID, id)
}

func (s *ContactService) Search(ctx context.Context, userID uint, text string, limit, offset int) ([]models.Contact, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("search text is required")
	}
	return s.contactRepo.Search(ctx, userID, text, limit, offset)
}

// UpcomingBirthdays returns the contacts whose birthday falls within the
// next `days` days, counted from today.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, userID uint, days int) ([]models.Contact, error) {
	if days < 1 || days > maxBirthdayWindowDays {
		return nil, models.NewValidationError("days must be between 1 and 365")
	}
	return s.contactRepo.UpcomingBirthdays(ctx, userID, time.Now().UTC(), days)
}

func buildContact(userID uint, in ContactInput) (*models.Contact, error) {
	if err := validation.ValidateContact(validation.ContactInput{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		AdditionalData: in.AdditionalData,
	}); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	birthday, err := time.Parse("2006-01-02", in.Birthday)
	if err != nil {
		return nil, models.NewValidationError("birthday must be a date in YYYY-MM-DD format")
	}

	return &models.Contact{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		PhoneNumber:    strings.TrimSpace(in.PhoneNumber),
		Birthday:       birthday,
		AdditionalData: strings.TrimSpace(in.AdditionalData),
		UserID:         userID,
	}, nil
}
