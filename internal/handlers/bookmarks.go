package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"WAYFARE_BACK-END/internal/dto"
	"WAYFARE_BACK-END/internal/models"
	"WAYFARE_BACK-END/internal/utils"
)

// BookmarksService toggles and queries itinerary bookmarks. Handlers that
// need bookmark state without the HTTP surface depend on this interface.
type BookmarksService interface {
	Toggle(ctx context.Context, userID, itineraryID uuid.UUID) (bool, error)
	IsBookmarked(ctx context.Context, userID, itineraryID uuid.UUID) (bool, error)
}

type bookmarksService struct {
	db *pgxpool.Pool
}

func NewBookmarksService(db *pgxpool.Pool) BookmarksService {
	return &bookmarksService{db: db}
}

// Toggle flips the bookmark state for one user and itinerary and returns the
// resulting state. A second toggle always undoes the first.
func (s *bookmarksService) Toggle(ctx context.Context, userID, itineraryID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, errors.New("user_id cannot be nil")
	}
	if itineraryID == uuid.Nil {
		return false, errors.New("itinerary_id cannot be nil")
	}

	opCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := s.db.Exec(opCtx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND itinerary_id = $2`,
		userID, itineraryID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(opCtx,
		`INSERT INTO bookmarks (user_id, itinerary_id, created_at)
         VALUES ($1, $2, $3)
         ON CONFLICT (user_id, itinerary_id) DO NOTHING`,
		userID, itineraryID, time.Now())
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *bookmarksService) IsBookmarked(ctx context.Context, userID, itineraryID uuid.UUID) (bool, error) {
	var bookmarked bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND itinerary_id = $2)`,
		userID, itineraryID,
	).Scan(&bookmarked)
	return bookmarked, err
}

// BookmarksHandler: HTTP endpoints (toggle, list)
type BookmarksHandler struct {
	db  *pgxpool.Pool
	svc BookmarksService
}

func NewBookmarksHandler(db *pgxpool.Pool) *BookmarksHandler {
	return &BookmarksHandler{
		db:  db,
		svc: NewBookmarksService(db),
	}
}

func (h *BookmarksHandler) Service() BookmarksService { return h.svc }

// ToggleBookmark handles POST /api/itineraries/{id}/bookmark
// @Summary Toggle a bookmark
// @Description Bookmark the itinerary, or remove the bookmark if one exists.
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID (UUID)"
// @Success 200 {object} dto.BookmarkToggleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id}/bookmark [post]
func (h *BookmarksHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	itinID, ok := itineraryIDFromPath(w, r)
	if !ok {
		return
	}

	var exists bool
	if err := h.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM itineraries WHERE id = $1)`, itinID,
	).Scan(&exists); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if !exists {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Itinerary not found")
		return
	}

	bookmarked, err := h.svc.Toggle(r.Context(), userID, itinID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.BookmarkToggleResponse{
		ItineraryID: itinID.String(),
		Bookmarked:  bookmarked,
	})
}

// ListBookmarks handles GET /api/bookmarks
// @Summary List bookmarked itineraries
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param limit query int false "items per page (default 20, max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} dto.BookmarkListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookmarks [get]
func (h *BookmarksHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "limit must be a positive integer")
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "offset must be a non-negative integer")
			return
		}
		offset = n
	}

	var total int
	if err := h.db.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM bookmarks WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT i.id, i.title, i.city, i.country, i.start_date, i.end_date, i.status, i.creator_id, i.created_at
         FROM bookmarks b
         JOIN itineraries i ON i.id = b.itinerary_id
         WHERE b.user_id = $1
         ORDER BY b.created_at DESC
         LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	items := []dto.ItineraryListItem{}
	for rows.Next() {
		var it models.Itinerary
		if err := rows.Scan(&it.ID, &it.Title, &it.City, &it.Country, &it.StartDate, &it.EndDate, &it.Status, &it.CreatorID, &it.CreatedAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		items = append(items, toListItem(&it, true))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.BookmarkListResponse{
		Itineraries: items,
		Pagination:  dto.Pagination{Total: total, Limit: limit, Offset: offset},
	})
}
