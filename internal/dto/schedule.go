package dto

import "WAYFARE_BACK-END/internal/models"

// ScheduleDay is one calendar day of the itinerary schedule. Every day of
// the trip is present, including days with no activities yet.
type ScheduleDay struct {
	Day        int               `json:"day"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Label      string            `json:"label"`
	Activities []models.Activity `json:"activities"`
}

// ScheduleResponse envelope for GET /api/itineraries/{id}/schedule
type ScheduleResponse struct {
	ItineraryID string           `json:"itinerary_id"`
	Summary     ItinerarySummary `json:"summary"`
	Days        []ScheduleDay    `json:"days"`
}
