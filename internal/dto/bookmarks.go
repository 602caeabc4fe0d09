package dto

// BookmarkToggleResponse reports the bookmark state after a toggle
type BookmarkToggleResponse struct {
	ItineraryID string `json:"itinerary_id"`
	Bookmarked  bool   `json:"bookmarked"`
}

// BookmarkListResponse envelope for GET /api/bookmarks
type BookmarkListResponse struct {
	Itineraries []ItineraryListItem `json:"itineraries"`
	Pagination  Pagination          `json:"pagination"`
}
