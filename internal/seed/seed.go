// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"rolodex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	ContactsPerUser int
	ShouldClean     bool
}

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

// Seeder creates fake users and contacts.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Contacts go first so user deletion never
// trips the foreign key on stores without cascades enabled.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM contacts").Error; err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}
	if err := s.db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// Run populates the database per the given options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	total := 0
	for i := range users {
		n, err := s.createContacts(&users[i], opts.ContactsPerUser)
		if err != nil {
			return fmt.Errorf("failed to create contacts for %s: %w", users[i].Username, err)
		}
		total += n
	}
	log.Printf("✓ %d contacts created", total)

	return nil
}

func (s *Seeder) createUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		if len(username) > 30 {
			username = username[:30]
		}
		user := models.User{
			Username:  username,
			Email:     fmt.Sprintf("%d.%s", i, strings.ToLower(gofakeit.Email())),
			Password:  string(hash),
			Avatar:    fmt.Sprintf("https://i.pravatar.cc/300?u=%s", gofakeit.UUID()),
			Confirmed: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createContacts(user *models.User, n int) (int, error) {
	for i := 0; i < n; i++ {
		contact := models.Contact{
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			Email:       strings.ToLower(gofakeit.Email()),
			PhoneNumber: fmt.Sprintf("+1%d", gofakeit.Number(2000000000, 9999999999)),
			Birthday: gofakeit.DateRange(
				time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC),
			).Truncate(24 * time.Hour),
			UserID: user.ID,
		}
		if rand.Intn(2) == 0 {
			contact.AdditionalData = gofakeit.JobTitle()
		}
		if err := s.db.Create(&contact).Error; err != nil {
			return i, err
		}
	}
	return n, nil
}
