package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"WAYFARE_BACK-END/internal/config"
	"WAYFARE_BACK-END/internal/dto"
	"WAYFARE_BACK-END/internal/models"
	"WAYFARE_BACK-END/internal/planner"
	"WAYFARE_BACK-END/internal/utils"
)

// ItinerariesHandler manages itinerary endpoints
type ItinerariesHandler struct {
	db     *pgxpool.Pool
	config *config.Config
}

// NewItinerariesHandler creates a new ItinerariesHandler
func NewItinerariesHandler(db *pgxpool.Pool, cfg *config.Config) *ItinerariesHandler {
	return &ItinerariesHandler{db: db, config: cfg}
}

// Itineraries dispatches by HTTP method for /api/itineraries
func (h *ItinerariesHandler) Itineraries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateItinerary(w, r)
	case http.MethodGet:
		h.ListItineraries(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ItineraryByID dispatches /api/itineraries/{id} and its sub-resources
func (h *ItinerariesHandler) ItineraryByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/itineraries/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

	if len(parts) == 2 {
		switch parts[1] {
		case "schedule":
			h.Schedule(w, r)
		case "locations":
			h.Locations(w, r)
		default:
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Unknown itinerary resource")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.ItineraryDetail(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateItinerary(w, r)
	case http.MethodDelete:
		h.DeleteItinerary(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateItinerary handles POST /api/itineraries
// @Summary Create a new itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateItineraryRequest true "Itinerary payload"
// @Success 201 {object} dto.CreateItineraryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries [post]
func (h *ItinerariesHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Title = strings.TrimSpace(req.Title)
	req.City = strings.TrimSpace(req.City)
	req.Country = strings.TrimSpace(req.Country)
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if req.Status == "" {
		req.Status = "draft"
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	startAt, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	endAt, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	if endAt.Before(startAt) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date cannot be before start_date")
		return
	}

	days := req.Days
	if days == nil {
		days = []models.Day{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "days document is not serializable")
		return
	}

	now := time.Now()
	newID := uuid.New()

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO itineraries (id, title, city, country, description, start_date, end_date, status, days, creator_id, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11, $12)`,
		newID, req.Title, req.City, req.Country, req.Description, startAt, endAt, req.Status, daysJSON, userID, now, now,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	it := models.Itinerary{
		ID:          newID,
		Title:       req.Title,
		City:        req.City,
		Country:     req.Country,
		Description: req.Description,
		StartDate:   startAt,
		EndDate:     endAt,
		Status:      req.Status,
		Days:        days,
		CreatorID:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateItineraryResponse{
		Itinerary: toItineraryResponse(&it),
	})
}

// ListItineraries handles GET /api/itineraries with filters and pagination.
// With ?grouped=status the response is the dashboard view: itineraries
// bucketed into Current, Upcoming and Past relative to today.
// @Summary List my itineraries
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft|published|archived|all"
// @Param grouped query string false "status (dashboard grouping)"
// @Param limit query int false "items per page (default 20, max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} dto.ItineraryListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries [get]
func (h *ItinerariesHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	q := r.URL.Query()
	status := strings.ToLower(strings.TrimSpace(q.Get("status")))
	switch status {
	case "", "all":
		status = ""
	case "draft", "published", "archived":
	default:
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be draft, published, archived, or all")
		return
	}

	if strings.EqualFold(q.Get("grouped"), "status") {
		h.listGrouped(w, userID, status)
		return
	}

	limit := 20
	if v := q.Get("limit"); v != "" {
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
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "offset must be a non-negative integer")
			return
		}
		offset = n
	}

	var total int
	countSQL := `SELECT COUNT(1) FROM itineraries WHERE creator_id = $1`
	countArgs := []any{userID}
	if status != "" {
		countSQL += ` AND status = $2`
		countArgs = append(countArgs, status)
	}
	if err := h.db.QueryRow(context.Background(), countSQL, countArgs...).Scan(&total); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	listSQL := `SELECT i.id, i.title, i.city, i.country, i.start_date, i.end_date, i.status, i.creator_id, i.created_at,
                    EXISTS(SELECT 1 FROM bookmarks b WHERE b.itinerary_id = i.id AND b.user_id = $1)
                FROM itineraries i
                WHERE i.creator_id = $1`
	listArgs := []any{userID}
	if status != "" {
		listSQL += ` AND i.status = $2`
		listArgs = append(listArgs, status)
	}
	listSQL += ` ORDER BY i.start_date ASC, i.created_at DESC
                LIMIT $` + strconv.Itoa(len(listArgs)+1) + ` OFFSET $` + strconv.Itoa(len(listArgs)+2)
	listArgs = append(listArgs, limit, offset)

	rows, err := h.db.Query(context.Background(), listSQL, listArgs...)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	items := []dto.ItineraryListItem{}
	for rows.Next() {
		var it models.Itinerary
		var bookmarked bool
		if err := rows.Scan(&it.ID, &it.Title, &it.City, &it.Country, &it.StartDate, &it.EndDate, &it.Status, &it.CreatorID, &it.CreatedAt, &bookmarked); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		items = append(items, toListItem(&it, bookmarked))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryListResponse{
		Itineraries: items,
		Pagination:  dto.Pagination{Total: total, Limit: limit, Offset: offset},
	})
}

// listGrouped serves GET /api/itineraries?grouped=status. Buckets are
// recomputed against today's date on every request, never stored.
func (h *ItinerariesHandler) listGrouped(w http.ResponseWriter, userID uuid.UUID, status string) {
	listSQL := `SELECT i.id, i.title, i.city, i.country, i.start_date, i.end_date, i.status, i.creator_id, i.created_at
                FROM itineraries i
                WHERE i.creator_id = $1`
	listArgs := []any{userID}
	if status != "" {
		listSQL += ` AND i.status = $2`
		listArgs = append(listArgs, status)
	}

	rows, err := h.db.Query(context.Background(), listSQL, listArgs...)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	itins := []models.Itinerary{}
	for rows.Next() {
		var it models.Itinerary
		if err := rows.Scan(&it.ID, &it.Title, &it.City, &it.Country, &it.StartDate, &it.EndDate, &it.Status, &it.CreatorID, &it.CreatedAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		itins = append(itins, it)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	bookmarked, err := h.bookmarkedSet(userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	groups := planner.ClassifyByStatus(itins, time.Now())
	resp := dto.GroupedItinerariesResponse{Groups: []dto.StatusGroupItem{}}
	for _, g := range groups {
		item := dto.StatusGroupItem{Status: string(g.Status), Itineraries: []dto.ItineraryListItem{}}
		for i := range g.Items {
			it := &g.Items[i]
			item.Itineraries = append(item.Itineraries, toListItem(it, bookmarked[it.ID]))
		}
		resp.Groups = append(resp.Groups, item)
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// ItineraryDetail handles GET /api/itineraries/{id}
// @Summary Get itinerary detail
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID (UUID)"
// @Success 200 {object} dto.ItineraryDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [get]
func (h *ItinerariesHandler) ItineraryDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	it, done := h.loadItineraryForView(w, r, userID)
	if done {
		return
	}

	bookmarked, err := h.isBookmarked(userID, it.ID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	isCreator := it.CreatorID == userID
	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryDetailResponse{
		Itinerary:   toItineraryResponse(it),
		Summary:     summaryOf(it),
		Permissions: dto.ItineraryPermissions{CanEdit: isCreator, CanDelete: isCreator},
		Bookmarked:  bookmarked,
	})
}

// UpdateItinerary handles PUT/PATCH /api/itineraries/{id}. Only provided
// fields change; a days document in the payload replaces the stored one
// whole.
// @Summary Update an itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID (UUID)"
// @Param payload body dto.UpdateItineraryRequest true "Fields to update"
// @Success 200 {object} dto.ItineraryDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [put]
func (h *ItinerariesHandler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	itinID, ok := itineraryIDFromPath(w, r)
	if !ok {
		return
	}

	it, err := h.loadItinerary(itinID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Itinerary not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if it.CreatorID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the creator can update this itinerary")
		return
	}

	var req dto.UpdateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "title cannot be empty")
			return
		}
		it.Title = t
	}
	if req.City != nil {
		c := strings.TrimSpace(*req.City)
		if c == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "city cannot be empty")
			return
		}
		it.City = c
	}
	if req.Country != nil {
		it.Country = strings.TrimSpace(*req.Country)
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.StartDate != nil {
		startAt, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
			return
		}
		it.StartDate = startAt
	}
	if req.EndDate != nil {
		endAt, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
			return
		}
		it.EndDate = endAt
	}
	if it.EndDate.Before(it.StartDate) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date cannot be before start_date")
		return
	}
	if req.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*req.Status))
		switch s {
		case "draft", "published", "archived":
			it.Status = s
		default:
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be draft, published, or archived")
			return
		}
	}
	if req.Days != nil {
		it.Days = *req.Days
		if it.Days == nil {
			it.Days = []models.Day{}
		}
	}

	daysJSON, err := json.Marshal(it.Days)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "days document is not serializable")
		return
	}

	it.UpdatedAt = time.Now()
	_, err = h.db.Exec(context.Background(),
		`UPDATE itineraries
         SET title = $1, city = $2, country = $3, description = $4, start_date = $5, end_date = $6, status = $7, days = $8::jsonb, updated_at = $9
         WHERE id = $10`,
		it.Title, it.City, it.Country, it.Description, it.StartDate, it.EndDate, it.Status, daysJSON, it.UpdatedAt, it.ID,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	bookmarked, err := h.isBookmarked(userID, it.ID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryDetailResponse{
		Itinerary:   toItineraryResponse(it),
		Summary:     summaryOf(it),
		Permissions: dto.ItineraryPermissions{CanEdit: true, CanDelete: true},
		Bookmarked:  bookmarked,
	})
}

// DeleteItinerary handles DELETE /api/itineraries/{id}
// @Summary Delete an itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID (UUID)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [delete]
func (h *ItinerariesHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	itinID, ok := itineraryIDFromPath(w, r)
	if !ok {
		return
	}

	var creatorID uuid.UUID
	if err := h.db.QueryRow(context.Background(), `SELECT creator_id FROM itineraries WHERE id = $1`, itinID).Scan(&creatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Itinerary not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if creatorID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the creator can delete this itinerary")
		return
	}

	if _, err := h.db.Exec(context.Background(), `DELETE FROM bookmarks WHERE itinerary_id = $1`, itinID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if _, err := h.db.Exec(context.Background(), `DELETE FROM itineraries WHERE id = $1`, itinID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Itinerary deleted"})
}

// Schedule handles GET /api/itineraries/{id}/schedule. Every trip day is
// present in the response, activities or not.
// @Summary Get the day-by-day schedule
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID (UUID)"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id}/schedule [get]
func (h *ItinerariesHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	it, done := h.loadItineraryForView(w, r, userID)
	if done {
		return
	}

	schedule := planner.GroupActivitiesByDay(it)
	days := make([]dto.ScheduleDay, 0, len(schedule))
	for _, d := range schedule {
		days = append(days, dto.ScheduleDay{
			Day:        d.Day,
			Date:       utils.FormatDate(d.Date),
			Label:      d.Label,
			Activities: d.Activities,
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ScheduleResponse{
		ItineraryID: it.ID.String(),
		Summary:     summaryOf(it),
		Days:        days,
	})
}

// Locations handles GET /api/itineraries/{id}/locations. Locations are
// extracted and normalized from the stored days document on every request.
// The optional day filter narrows the map display set to pins referenced by
// that day; center picks the map center strategy.
// @Summary Get normalized itinerary locations
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID (UUID)"
// @Param day query int false "1-based day filter"
// @Param center query string false "first|centroid (default from config)"
// @Success 200 {object} dto.LocationsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id}/locations [get]
func (h *ItinerariesHandler) Locations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	it, done := h.loadItineraryForView(w, r, userID)
	if done {
		return
	}

	var selectedDay *int
	if v := r.URL.Query().Get("day"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "day must be a positive integer")
			return
		}
		selectedDay = &n
	}
	strategy := planner.ParseCenterStrategy(
		r.URL.Query().Get("center"),
		planner.CenterStrategy(h.config.Map.CenterStrategy),
	)

	records := planner.Dedupe(planner.Normalize(it))
	allValid := planner.SelectDisplayLocations(records, it, nil)
	display := planner.SelectDisplayLocations(records, it, selectedDay)

	fallback := planner.LatLng{
		Lat: h.config.Map.DefaultCenterLat,
		Lng: h.config.Map.DefaultCenterLng,
	}
	center := planner.MapCenter(display, allValid, strategy, fallback)

	resp := dto.LocationsResponse{
		ItineraryID:  it.ID.String(),
		Day:          selectedDay,
		Strategy:     string(strategy),
		Center:       center,
		Locations:    display,
		AllLocations: records,
	}
	if len(display) == 0 {
		if selectedDay != nil {
			resp.Message = "No locations with coordinates for this day"
		} else {
			resp.Message = "No locations with coordinates yet"
		}
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// --- helpers ---------------------------------------------------------------

// itineraryIDFromPath parses the UUID segment of /api/itineraries/{id}[/...].
// Writes a 400 and returns false on a malformed id.
func itineraryIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/itineraries/")
	idStr := strings.SplitN(strings.Trim(rest, "/"), "/", 2)[0]
	itinID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid itinerary ID format")
		return uuid.Nil, false
	}
	return itinID, true
}

// loadItinerary fetches a full itinerary row including the days document
func (h *ItinerariesHandler) loadItinerary(id uuid.UUID) (*models.Itinerary, error) {
	var it models.Itinerary
	var daysJSON []byte
	err := h.db.QueryRow(context.Background(),
		`SELECT id, title, city, country, description, start_date, end_date, status, days, creator_id, created_at, updated_at
         FROM itineraries WHERE id = $1`, id,
	).Scan(&it.ID, &it.Title, &it.City, &it.Country, &it.Description, &it.StartDate, &it.EndDate, &it.Status, &daysJSON, &it.CreatorID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.Days = []models.Day{}
	if len(daysJSON) > 0 {
		// Tolerant decode: a malformed days document degrades to empty days
		// instead of breaking every read endpoint.
		var days []models.Day
		if err := json.Unmarshal(daysJSON, &days); err == nil && days != nil {
			it.Days = days
		}
	}
	return &it, nil
}

// loadItineraryForView loads the itinerary at r's path and enforces read
// access: the creator always, anyone authenticated when published. When it
// returns done=true the response has already been written.
func (h *ItinerariesHandler) loadItineraryForView(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Itinerary, bool) {
	itinID, ok := itineraryIDFromPath(w, r)
	if !ok {
		return nil, true
	}
	it, err := h.loadItinerary(itinID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Itinerary not found")
			return nil, true
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return nil, true
	}
	if it.CreatorID != userID && it.Status != "published" {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "This itinerary is not published")
		return nil, true
	}
	return it, false
}

func (h *ItinerariesHandler) isBookmarked(userID, itinID uuid.UUID) (bool, error) {
	var bookmarked bool
	err := h.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND itinerary_id = $2)`,
		userID, itinID,
	).Scan(&bookmarked)
	return bookmarked, err
}

// bookmarkedSet returns the ids of every itinerary the user has bookmarked
func (h *ItinerariesHandler) bookmarkedSet(userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := h.db.Query(context.Background(),
		`SELECT itinerary_id FROM bookmarks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

func summaryOf(it *models.Itinerary) dto.ItinerarySummary {
	days := planner.TripDuration(it.StartDate, it.EndDate)
	return dto.ItinerarySummary{
		DateRange:     planner.FormatDateRange(it.StartDate, it.EndDate),
		DurationDays:  days,
		DurationLabel: planner.DurationLabel(days),
	}
}

func toItineraryResponse(it *models.Itinerary) dto.ItineraryResponse {
	days := it.Days
	if days == nil {
		days = []models.Day{}
	}
	return dto.ItineraryResponse{
		ID:          it.ID.String(),
		Title:       it.Title,
		City:        it.City,
		Country:     it.Country,
		Description: it.Description,
		StartDate:   utils.FormatDate(it.StartDate),
		EndDate:     utils.FormatDate(it.EndDate),
		Status:      it.Status,
		Days:        days,
		CreatorID:   it.CreatorID.String(),
		CreatedAt:   utils.FormatTimestamp(it.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(it.UpdatedAt),
	}
}

func toListItem(it *models.Itinerary, bookmarked bool) dto.ItineraryListItem {
	return dto.ItineraryListItem{
		ID:         it.ID.String(),
		Title:      it.Title,
		City:       it.City,
		Country:    it.Country,
		StartDate:  utils.FormatDate(it.StartDate),
		EndDate:    utils.FormatDate(it.EndDate),
		Status:     it.Status,
		Summary:    summaryOf(it),
		Bookmarked: bookmarked,
		CreatorID:  it.CreatorID.String(),
		CreatedAt:  utils.FormatTimestamp(it.CreatedAt),
	}
}
