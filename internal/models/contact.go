package models

import (
	"time"
)

// Contact is a single address-book entry. Every contact belongs to exactly
// one user; all reads and writes are filtered by the owning user.
type Contact struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"size:50;not null" json:"first_name"`
	LastName       string    `gorm:"size:50;not null" json:"last_name"`
	Email          string    `gorm:"size:100;not null" json:"email"`
	PhoneNumber    string    `gorm:"size:20;not null" json:"phone_number"`
	Birthday       time.Time `gorm:"type:date;not null" json:"birthday"`
	AdditionalData string    `gorm:"size:150" json:"additional_data,omitempty"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
