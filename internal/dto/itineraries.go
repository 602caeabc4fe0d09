package dto

import "WAYFARE_BACK-END/internal/models"

// CreateItineraryRequest represents the payload to create an itinerary
type CreateItineraryRequest struct {
	Title       string       `json:"title" validate:"required,min=1,max=200"`
	City        string       `json:"city" validate:"required"`
	Country     string       `json:"country"`
	Description string       `json:"description" validate:"max=2000"`
	StartDate   string       `json:"start_date" validate:"required"` // ISO 8601: YYYY-MM-DD or RFC3339
	EndDate     string       `json:"end_date" validate:"required"`   // ISO 8601: YYYY-MM-DD or RFC3339
	Status      string       `json:"status" validate:"omitempty,oneof=draft published archived"`
	Days        []models.Day `json:"days"`
}

// UpdateItineraryRequest represents fields allowed to update an itinerary.
// All fields are optional; the days document, when present, replaces the
// stored one whole. There are no day-level mutations.
type UpdateItineraryRequest struct {
	Title       *string       `json:"title"`
	City        *string       `json:"city"`
	Country     *string       `json:"country"`
	Description *string       `json:"description"`
	StartDate   *string       `json:"start_date"` // YYYY-MM-DD or RFC3339
	EndDate     *string       `json:"end_date"`   // YYYY-MM-DD or RFC3339
	Status      *string       `json:"status"`     // draft | published | archived
	Days        *[]models.Day `json:"days"`
}

// ItineraryResponse represents an itinerary object in responses
type ItineraryResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	City        string       `json:"city"`
	Country     string       `json:"country"`
	Description string       `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Status      string       `json:"status"`
	Days        []models.Day `json:"days"`
	CreatorID   string       `json:"creator_id"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

// CreateItineraryResponse envelope
type CreateItineraryResponse struct {
	Itinerary ItineraryResponse `json:"itinerary"`
}

// ItinerarySummary carries the derived date range and duration shown on
// cards and detail headers
type ItinerarySummary struct {
	DateRange     string `json:"date_range"`
	DurationDays  int    `json:"duration_days"`
	DurationLabel string `json:"duration_label"`
}

// ItineraryListItem minimal list item
type ItineraryListItem struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	City       string           `json:"city"`
	Country    string           `json:"country"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Status     string           `json:"status"`
	Summary    ItinerarySummary `json:"summary"`
	Bookmarked bool             `json:"bookmarked"`
	CreatorID  string           `json:"creator_id"`
	CreatedAt  string           `json:"created_at"`
}

// Pagination info
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ItineraryListResponse envelope
type ItineraryListResponse struct {
	Itineraries []ItineraryListItem `json:"itineraries"`
	Pagination  Pagination          `json:"pagination"`
}

// StatusGroupItem is one dashboard bucket of itineraries
type StatusGroupItem struct {
	Status      string              `json:"status"` // Current | Upcoming | Past
	Itineraries []ItineraryListItem `json:"itineraries"`
}

// GroupedItinerariesResponse envelope for the dashboard view
type GroupedItinerariesResponse struct {
	Groups []StatusGroupItem `json:"groups"`
}

// ItineraryPermissions for detail
type ItineraryPermissions struct {
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// ItineraryDetailResponse envelope
type ItineraryDetailResponse struct {
	Itinerary   ItineraryResponse    `json:"itinerary"`
	Summary     ItinerarySummary     `json:"summary"`
	Permissions ItineraryPermissions `json:"permissions"`
	Bookmarked  bool                 `json:"bookmarked"`
}
