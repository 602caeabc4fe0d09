package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WAYFARE_BACK-END/internal/models"
)

func TestItineraryIDFromPath(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		path   string
		wantOK bool
	}{
		{"detail", "/api/itineraries/" + id.String(), true},
		{"sub resource", "/api/itineraries/" + id.String() + "/schedule", true},
		{"trailing slash", "/api/itineraries/" + id.String() + "/", true},
		{"not a uuid", "/api/itineraries/not-a-uuid", false},
		{"empty", "/api/itineraries/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			got, ok := itineraryIDFromPath(w, r)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, id, got)
				assert.Equal(t, 200, w.Code)
			} else {
				assert.Equal(t, 400, w.Code)
			}
		})
	}
}

func TestSummaryOf(t *testing.T) {
	it := &models.Itinerary{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	s := summaryOf(it)
	assert.Equal(t, 3, s.DurationDays)
	assert.Equal(t, "3 days", s.DurationLabel)
	assert.Equal(t, "Jun 1 – Jun 3, 2024", s.DateRange)
}

func TestToItineraryResponse(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)
	it := &models.Itinerary{
		ID:        uuid.New(),
		Title:     "Paris long weekend",
		City:      "Paris",
		Country:   "France",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:    "draft",
		CreatorID: uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := toItineraryResponse(it)
	assert.Equal(t, it.ID.String(), resp.ID)
	assert.Equal(t, "2024-06-01", resp.StartDate)
	assert.Equal(t, "2024-06-03", resp.EndDate)
	assert.Equal(t, now.Format(time.RFC3339), resp.CreatedAt)

	// A nil days document renders as an empty array, never null
	require.NotNil(t, resp.Days)
	assert.Empty(t, resp.Days)
}
