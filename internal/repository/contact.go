package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rolodex/internal/models"

	"gorm.io/gorm"
)

// ContactRepository defines persistence operations for contacts. Every
// operation is scoped to the owning user; a contact belonging to another
// user behaves exactly like a missing one.
type ContactRepository interface {
	List(ctx context.Context, userID uint, limit, offset int) ([]models.Contact, error)
	GetByID(ctx context.Context, userID, id uint) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, userID, id uint) error
	Search(ctx context.Context, userID uint, text string, limit, offset int) ([]models.Contact, error)
	UpcomingBirthdays(ctx context.Context, userID uint, from time.Time, days int) ([]models.Contact, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a new ContactRepository implementation.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context, userID uint, limit, offset int) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(limit).
		Offset(offset).
		Order("id").
		Find(&contacts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return contacts, nil
}

func (r *contactRepository) GetByID(ctx context.Context, userID, id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Contact", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &contact, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	res := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]any{
			"first_name":      contact.FirstName,
			"last_name":       contact.LastName,
			"email":           contact.Email,
			"phone_number":    contact.PhoneNumber,
			"birthday":        contact.Birthday,
			"additional_data": contact.AdditionalData,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Contact", contact.ID)
	}
	return nil
}

// Delete hard-deletes a contact. Deleting the same id twice reports
// not-found on the second call.
func (r *contactRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Contact{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Contact", id)
	}
	return nil
}

func (r *contactRepository) Search(ctx context.Context, userID uint, text string, limit, offset int) ([]models.Contact, error) {
	pattern := "%" + text + "%"
	var contacts []models.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(
			r.db.Where("LOWER(first_name) LIKE LOWER(?)", pattern).
				Or("LOWER(last_name) LIKE LOWER(?)", pattern).
				Or("LOWER(email) LIKE LOWER(?)", pattern).
				Or("LOWER(phone_number) LIKE LOWER(?)", pattern).
				Or("LOWER(additional_data) LIKE LOWER(?)", pattern),
		).
		Limit(limit).
		Offset(offset).
		Order("id").
		Find(&contacts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return contacts, nil
}

// UpcomingBirthdays returns contacts whose birthday month/day falls within
// [from, from+days]. The window may wrap across the end of the year; birth
// years are ignored.
func (r *contactRepository) UpcomingBirthdays(ctx context.Context, userID uint, from time.Time, days int) ([]models.Contact, error) {
	future := from.AddDate(0, 0, days)

	monthExpr, dayExpr := birthdayExprs(r.db.Dialector.Name())
	startEdge := fmt.Sprintf("(%s = ? AND %s >= ?)", monthExpr, dayExpr)
	endEdge := fmt.Sprintf("(%s = ? AND %s <= ?)", monthExpr, dayExpr)

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)

	wrapped := future.Year() > from.Year()
	switch {
	case !wrapped && from.Month() == future.Month():
		q = q.Where(
			fmt.Sprintf("%s = ? AND %s BETWEEN ? AND ?", monthExpr, dayExpr),
			int(from.Month()), from.Day(), future.Day(),
		)
	case !wrapped:
		between := fmt.Sprintf("(%s > ? AND %s < ?)", monthExpr, monthExpr)
		q = q.Where(
			startEdge+" OR "+endEdge+" OR "+between,
			int(from.Month()), from.Day(),
			int(future.Month()), future.Day(),
			int(from.Month()), int(future.Month()),
		)
	default:
		// The window crosses the end of the year: months strictly after the
		// start or strictly before the end are inside it.
		outside := fmt.Sprintf("(%s > ? OR %s < ?)", monthExpr, monthExpr)
		q = q.Where(
			startEdge+" OR "+endEdge+" OR "+outside,
			int(from.Month()), from.Day(),
			int(future.Month()), future.Day(),
			int(from.Month()), int(future.Month()),
		)
	}

	var contacts []models.Contact
	if err := q.Order("id").Find(&contacts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return contacts, nil
}

// birthdayExprs returns SQL expressions extracting month and day from the
// birthday column for the given dialect. Postgres is the production store;
// sqlite is covered because local development and handler tests run on it.
func birthdayExprs(dialect string) (month, day string) {
	if dialect == "sqlite" {
		return "CAST(strftime('%m', birthday) AS INTEGER)",
			"CAST(strftime('%d', birthday) AS INTEGER)"
	}
	return "EXTRACT(MONTH FROM birthday)", "EXTRACT(DAY FROM birthday)"
}
