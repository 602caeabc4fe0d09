package dto

import "WAYFARE_BACK-END/internal/planner"

// LocationsResponse envelope for GET /api/itineraries/{id}/locations.
//
// Locations carries the map-facing display set for the current day filter;
// AllLocations carries every normalized record including ones without valid
// coordinates, for list views. Message is set when the display set is empty
// so the client has copy to show instead of a blank map.
type LocationsResponse struct {
	ItineraryID  string                   `json:"itinerary_id"`
	Day          *int                     `json:"day"`
	Strategy     string                   `json:"strategy"` // first | centroid
	Center       planner.LatLng           `json:"center"`
	Locations    []planner.LocationRecord `json:"locations"`
	AllLocations []planner.LocationRecord `json:"all_locations"`
	Message      string                   `json:"message,omitempty"`
}
