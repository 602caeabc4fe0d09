package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system. Travel preference fields are
// nullable; they are filled in from the profile page after signup.
type User struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"` // Hidden from JSON responses
	Username          string     `json:"username" db:"username"`
	DisplayName       *string    `json:"display_name" db:"display_name"`
	AvatarURL         *string    `json:"avatar_url" db:"avatar_url"`
	Phone             *string    `json:"phone" db:"phone"`
	Bio               *string    `json:"bio" db:"bio"`
	HomeCity          *string    `json:"home_city" db:"home_city"`
	HomeCountry       *string    `json:"home_country" db:"home_country"`
	PreferredCurrency *string    `json:"preferred_currency" db:"preferred_currency"`
	TravelStyle       *string    `json:"travel_style" db:"travel_style"` // budget | comfort | luxury
	Interests         *string    `json:"interests" db:"interests"`       // JSONB as string
	BirthDate         *time.Time `json:"birth_date" db:"birth_date"`
	Role              string     `json:"role" db:"role"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
