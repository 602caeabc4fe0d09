package dto

// ProfileUpdateRequest represents fields allowed on PUT /api/profile.
// Nil leaves a field unchanged; an empty string clears it to NULL.
type ProfileUpdateRequest struct {
	Username          *string `json:"username"`
	DisplayName       *string `json:"display_name"`
	AvatarURL         *string `json:"avatar_url"`
	Phone             *string `json:"phone"`
	Bio               *string `json:"bio"`
	HomeCity          *string `json:"home_city"`
	HomeCountry       *string `json:"home_country"`
	PreferredCurrency *string `json:"preferred_currency"`
	TravelStyle       *string `json:"travel_style"`
	Interests         *string `json:"interests"`
	BirthDate         *string `json:"birth_date"` // "" => NULL, else YYYY-MM-DD or RFC3339
}

// ProfileResponse envelope
type ProfileResponse struct {
	User UserResponse `json:"user"`
}
