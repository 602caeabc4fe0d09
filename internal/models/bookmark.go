package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark marks an itinerary saved by a user. The pair (user, itinerary) is
// unique; toggling removes or recreates the row.
type Bookmark struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	ItineraryID uuid.UUID `json:"itinerary_id" db:"itinerary_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
