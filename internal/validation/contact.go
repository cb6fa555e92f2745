package validation

import (
	"fmt"
	"regexp"
)

const (
	maxFirstNameLen      = 50
	maxLastNameLen       = 50
	maxContactEmailLen   = 100
	maxPhoneNumberLen    = 20
	maxAdditionalDataLen = 150
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ()\-]{3,20}$`)

// ContactInput holds the validatable fields of a contact create/update request.
type ContactInput struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	AdditionalData string
}

// ValidateContact checks contact field presence and limits.
func ValidateContact(in ContactInput) error {
	if in.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if len(in.FirstName) > maxFirstNameLen {
		return fmt.Errorf("first name must not exceed %d characters", maxFirstNameLen)
	}
	if in.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if len(in.LastName) > maxLastNameLen {
		return fmt.Errorf("last name must not exceed %d characters", maxLastNameLen)
	}
	if in.Email == "" {
		return fmt.Errorf("email is required")
	}
	if len(in.Email) > maxContactEmailLen {
		return fmt.Errorf("email must not exceed %d characters", maxContactEmailLen)
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if in.PhoneNumber == "" {
		return fmt.Errorf("phone number is required")
	}
	if len(in.PhoneNumber) > maxPhoneNumberLen {
		return fmt.Errorf("phone number must not exceed %d characters", maxPhoneNumberLen)
	}
	if !phoneRegex.MatchString(in.PhoneNumber) {
		return fmt.Errorf("invalid phone number format")
	}
	if len(in.AdditionalData) > maxAdditionalDataLen {
		return fmt.Errorf("additional data must not exceed %d characters", maxAdditionalDataLen)
	}

	return nil
}
