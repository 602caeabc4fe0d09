package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"WAYFARE_BACK-END/internal/dto"
	"WAYFARE_BACK-END/internal/models"
	"WAYFARE_BACK-END/internal/utils"
)

// ProfileHandler manages the travel profile endpoints
type ProfileHandler struct {
	pool *pgxpool.Pool
}

func NewProfileHandler(pool *pgxpool.Pool) *ProfileHandler {
	return &ProfileHandler{pool: pool}
}

// Handle dispatches /api/profile by HTTP method
func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetMe(w, r)
	case http.MethodPut, http.MethodPatch:
		h.Update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GetMe godoc
// @Summary      Get my travel profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	user, err := h.selectUser(r, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{User: toUserResponse(user)})
}

// Update godoc
// @Summary      Update my travel profile
// @Description  Partial update. Omitted fields stay; an empty string clears a field.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.ProfileUpdateRequest  true  "Profile update payload"
// @Success      200      {object}  dto.ProfileResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Build the SET clause dynamically: only fields present in the payload
	// are touched.
	set := []string{}
	args := []any{}
	i := 1

	addStr := func(col string, p *string, nullIfEmpty bool) {
		if p == nil {
			return
		}
		var v any = *p
		if nullIfEmpty && *p == "" {
			v = nil
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, v)
		i++
	}

	// username is unique and cannot be cleared
	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "username cannot be empty")
			return
		}
		addStr("username", req.Username, false)
	}
	if req.TravelStyle != nil && *req.TravelStyle != "" {
		switch *req.TravelStyle {
		case "budget", "comfort", "luxury":
		default:
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "travel_style must be budget, comfort, or luxury")
			return
		}
	}
	addStr("display_name", req.DisplayName, true)
	addStr("avatar_url", req.AvatarURL, true)
	addStr("phone", req.Phone, true)
	addStr("bio", req.Bio, true)
	addStr("home_city", req.HomeCity, true)
	addStr("home_country", req.HomeCountry, true)
	addStr("preferred_currency", req.PreferredCurrency, true)
	addStr("travel_style", req.TravelStyle, true)
	addStr("interests", req.Interests, true)

	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			set = append(set, fmt.Sprintf("birth_date = $%d", i))
			args = append(args, nil)
			i++
		} else if t, err := utils.ParseDate(*req.BirthDate); err == nil {
			set = append(set, fmt.Sprintf("birth_date = $%d", i))
			args = append(args, t)
			i++
		} else {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "birth_date must be ISO 8601 date or datetime")
			return
		}
	}

	if len(set) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "no fields to update")
		return
	}

	set = append(set, fmt.Sprintf("updated_at = $%d", i))
	args = append(args, time.Now())
	i++

	qUpdate := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), i)
	args = append(args, userID)

	ct, err := h.pool.Exec(r.Context(), qUpdate, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "username already taken")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	if ct.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User not found")
		return
	}

	user, err := h.selectUser(r, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"user":    toUserResponse(user),
		"message": "Profile updated successfully",
	})
}

func (h *ProfileHandler) selectUser(r *http.Request, userID any) (*models.User, error) {
	var user models.User
	err := h.pool.QueryRow(r.Context(),
		`SELECT id, email, password_hash, username, display_name, avatar_url, phone,
		 bio, home_city, home_country, preferred_currency, travel_style, interests,
		 birth_date, role, created_at, updated_at FROM users WHERE id = $1`,
		userID).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Username,
		&user.DisplayName, &user.AvatarURL, &user.Phone, &user.Bio, &user.HomeCity,
		&user.HomeCountry, &user.PreferredCurrency, &user.TravelStyle, &user.Interests,
		&user.BirthDate, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
