package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username          string  `json:"username" validate:"required,min=3,max=50"`
	Email             string  `json:"email" validate:"required,email"`
	Password          string  `json:"password" validate:"required,min=6"`
	DisplayName       *string `json:"display_name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	HomeCity          *string `json:"home_city,omitempty"`
	HomeCountry       *string `json:"home_country,omitempty"`
	PreferredCurrency *string `json:"preferred_currency,omitempty" validate:"omitempty,len=3"`
	TravelStyle       *string `json:"travel_style,omitempty" validate:"omitempty,oneof=budget comfort luxury"`
	Bio               *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	BirthDate         *string `json:"birth_date,omitempty"` // Will be parsed to time.Time
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	Username          string  `json:"username"`
	DisplayName       *string `json:"display_name"`
	AvatarURL         *string `json:"avatar_url"`
	Phone             *string `json:"phone"`
	Bio               *string `json:"bio"`
	HomeCity          *string `json:"home_city"`
	HomeCountry       *string `json:"home_country"`
	PreferredCurrency *string `json:"preferred_currency"`
	TravelStyle       *string `json:"travel_style"`
	Interests         *string `json:"interests"`
	BirthDate         *string `json:"birth_date,omitempty"`
	Role              string  `json:"role"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
