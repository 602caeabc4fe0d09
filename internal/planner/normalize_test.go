package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WAYFARE_BACK-END/internal/models"
)

func itineraryWithDays(days ...models.Day) *models.Itinerary {
	return &models.Itinerary{Days: days}
}

func TestNormalizeNil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestNormalizeEncounterOrder(t *testing.T) {
	it := itineraryWithDays(
		models.Day{
			Day: 1,
			Locations: []models.Location{
				{ID: "A", Name: "Louvre", Latitude: 48.86, Longitude: 2.34},
			},
			Activities: []models.Activity{
				{Description: "Dinner", Time: "19:00", Location: &models.LocationRef{
					Location: &models.Location{ID: "B", Name: "Bistro", Latitude: 48.85, Longitude: 2.35},
				}},
			},
		},
		models.Day{
			Day: 2,
			Locations: []models.Location{
				{ID: "C", Name: "Orsay", Latitude: 48.86, Longitude: 2.33},
			},
		},
	)

	records := Normalize(it)
	require.Len(t, records, 3)

	// Explicit day locations come before activity-derived ones, days in
	// ascending encounter order.
	assert.Equal(t, "A", records[0].ID)
	assert.Equal(t, SourceDayList, records[0].Source)
	assert.Equal(t, "B", records[1].ID)
	assert.Equal(t, SourceActivity, records[1].Source)
	assert.Equal(t, "19:00", records[1].ActivityTime)
	assert.Equal(t, "Dinner", records[1].ActivityNote)
	assert.Equal(t, "C", records[2].ID)
	assert.Equal(t, 2, records[2].Day)
}

func TestNormalizeGeoJSONCoordinateOrder(t *testing.T) {
	// GeoJSON coordinates are [longitude, latitude]; swapping them is a
	// correctness bug, so pick a pair where the difference is visible.
	it := itineraryWithDays(models.Day{
		Day: 1,
		Locations: []models.Location{
			{ID: "eiffel", Geometry: &models.Geometry{Type: "Point", Coordinates: []float64{2.2945, 48.8584}}},
		},
	})

	records := Normalize(it)
	require.Len(t, records, 1)
	assert.True(t, records[0].Valid)
	assert.InDelta(t, 48.8584, records[0].Latitude, 1e-9)
	assert.InDelta(t, 2.2945, records[0].Longitude, 1e-9)
}

func TestNormalizeCoordinateShapes(t *testing.T) {
	tests := []struct {
		name      string
		loc       models.Location
		wantValid bool
		wantLat   float64
		wantLng   float64
	}{
		{"float fields", models.Location{Latitude: 48.85, Longitude: 2.35}, true, 48.85, 2.35},
		{"string fields", models.Location{Latitude: "48.85", Longitude: "2.35"}, true, 48.85, 2.35},
		{"json number", models.Location{Latitude: json.Number("48.85"), Longitude: json.Number("2.35")}, true, 48.85, 2.35},
		{"latitude out of range", models.Location{Latitude: 95.0, Longitude: 2.35}, false, 95, 2.35},
		{"longitude out of range", models.Location{Latitude: 48.85, Longitude: 181.0}, false, 48.85, 181},
		{"non numeric", models.Location{Latitude: "north", Longitude: "east"}, false, 0, 0},
		{"missing", models.Location{Name: "somewhere"}, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Normalize(itineraryWithDays(models.Day{Day: 1, Locations: []models.Location{tt.loc}}))
			require.Len(t, records, 1, "invalid records must be retained, not dropped")
			assert.Equal(t, tt.wantValid, records[0].Valid)
			assert.Equal(t, tt.wantLat, records[0].Latitude)
			assert.Equal(t, tt.wantLng, records[0].Longitude)
		})
	}
}

func TestNormalizeBareIDActivityLocation(t *testing.T) {
	it := itineraryWithDays(models.Day{
		Day: 2,
		Activities: []models.Activity{
			{Description: "Visit", Location: &models.LocationRef{ID: "L1"}},
		},
	})

	records := Normalize(it)
	require.Len(t, records, 1)
	assert.Equal(t, "L1", records[0].ID)
	assert.False(t, records[0].Valid, "bare ids are not resolved to coordinates")
	assert.False(t, records[0].Synthetic)
}

func TestNormalizeActivityWithoutLocation(t *testing.T) {
	it := itineraryWithDays(models.Day{
		Day:        1,
		Activities: []models.Activity{{Description: "Free morning"}},
	})
	assert.Empty(t, Normalize(it))
}

func TestNormalizeSyntheticIDsAreDeterministic(t *testing.T) {
	it := itineraryWithDays(models.Day{
		Day: 3,
		Locations: []models.Location{
			{Name: "Unnamed cafe", Latitude: 48.85, Longitude: 2.35},
		},
	})

	first := Normalize(it)
	second := Normalize(it)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0].Synthetic)
	assert.NotEmpty(t, first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID, "synthetic ids must be stable across recomputation")
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.True(t, ValidCoordinates(90, 180))
	assert.False(t, ValidCoordinates(90.0001, 0))
	assert.False(t, ValidCoordinates(0, -180.0001))
}

func TestDedupeByID(t *testing.T) {
	it := itineraryWithDays(models.Day{
		Day: 2,
		Locations: []models.Location{
			{ID: "L1", Name: "Louvre", Latitude: 48.85, Longitude: 2.35},
		},
		Activities: []models.Activity{
			{Description: "Guided tour", Location: &models.LocationRef{ID: "L1"}},
		},
	})

	records := Normalize(it)
	require.Len(t, records, 2, "raw candidates before dedup")

	deduped := Dedupe(records)
	require.Len(t, deduped, 1)
	assert.Equal(t, "L1", deduped[0].ID)
	assert.Equal(t, SourceDayList, deduped[0].Source, "first occurrence wins")
}

func TestDedupeByCoordinatesWithoutIDs(t *testing.T) {
	it := itineraryWithDays(models.Day{
		Day: 1,
		Activities: []models.Activity{
			{Description: "Coffee", Location: &models.LocationRef{Location: &models.Location{Latitude: 48.85, Longitude: 2.35}}},
			{Description: "More coffee", Location: &models.LocationRef{Location: &models.Location{Latitude: 48.85, Longitude: 2.35}}},
		},
	})

	deduped := Dedupe(Normalize(it))
	require.Len(t, deduped, 1)
	assert.Equal(t, "Coffee", deduped[0].ActivityNote)
}

func TestDedupeKeepsDistinctDays(t *testing.T) {
	it := itineraryWithDays(
		models.Day{Day: 1, Locations: []models.Location{{ID: "L1", Latitude: 48.85, Longitude: 2.35}}},
		models.Day{Day: 2, Locations: []models.Location{{ID: "L1", Latitude: 48.85, Longitude: 2.35}}},
	)

	deduped := Dedupe(Normalize(it))
	assert.Len(t, deduped, 2, "dedup is per day, not global")
}

func TestDayDecodeToleratesMalformedFields(t *testing.T) {
	// A day whose locations/activities fields are missing or not arrays
	// contributes zero records instead of failing the decode.
	payload := `{
		"days": [
			{"day": 1, "locations": "oops", "activities": null},
			{"day": 2, "locations": [{"id": "L1", "latitude": 48.85, "longitude": 2.35}]}
		]
	}`
	var it models.Itinerary
	require.NoError(t, json.Unmarshal([]byte(payload), &it))

	records := Normalize(&it)
	require.Len(t, records, 1)
	assert.Equal(t, "L1", records[0].ID)
	assert.Equal(t, 2, records[0].Day)
}
