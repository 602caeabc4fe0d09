package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WAYFARE_BACK-END/internal/models"
)

// scenarioItinerary is the worked example: a 3-day trip where day 2 has one
// explicit location and one activity referencing it by id, and day 1 has an
// unlocated activity only.
func scenarioItinerary() *models.Itinerary {
	return &models.Itinerary{
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		Days: []models.Day{
			{Day: 1, Activities: []models.Activity{{Description: "Arrive"}}},
			{
				Day: 2,
				Locations: []models.Location{
					{ID: "L1", Name: "Louvre", Latitude: 48.85, Longitude: 2.35},
				},
				Activities: []models.Activity{
					{Description: "Guided tour", Location: &models.LocationRef{ID: "L1"}},
				},
			},
			{Day: 3},
		},
	}
}

func TestSelectDisplayLocationsUnfiltered(t *testing.T) {
	it := scenarioItinerary()
	records := Normalize(it)
	require.Len(t, records, 2)

	display := SelectDisplayLocations(records, it, nil)
	require.Len(t, display, 1, "only valid records are map-facing")
	assert.Equal(t, "L1", display[0].ID)
}

func TestSelectDisplayLocationsByDay(t *testing.T) {
	it := scenarioItinerary()
	records := Normalize(it)

	day2 := 2
	display := SelectDisplayLocations(records, it, &day2)
	require.Len(t, display, 1)
	assert.Equal(t, "L1", display[0].ID)

	day1 := 1
	assert.Empty(t, SelectDisplayLocations(records, it, &day1), "no locations assigned to day 1")

	day9 := 9
	assert.Empty(t, SelectDisplayLocations(records, it, &day9), "unknown day yields an empty set, not an error")
}

func TestSelectDisplayLocationsSyntheticIDsNeverMatch(t *testing.T) {
	it := &models.Itinerary{Days: []models.Day{
		{Day: 1, Locations: []models.Location{
			{Name: "Unnamed", Latitude: 48.85, Longitude: 2.35},
		}},
	}}
	records := Normalize(it)
	require.Len(t, records, 1)
	require.True(t, records[0].Synthetic)

	day1 := 1
	assert.Empty(t, SelectDisplayLocations(records, it, &day1),
		"records lacking a source id cannot match a day filter")
	assert.Len(t, SelectDisplayLocations(records, it, nil), 1)
}

func TestToggleDay(t *testing.T) {
	selected := ToggleDay(nil, 2)
	require.NotNil(t, selected)
	assert.Equal(t, 2, *selected)

	other := ToggleDay(selected, 3)
	require.NotNil(t, other)
	assert.Equal(t, 3, *other)

	cleared := ToggleDay(other, 3)
	assert.Nil(t, cleared, "re-selecting the selected day clears the filter")
}

func TestToggleDayRoundTrip(t *testing.T) {
	it := scenarioItinerary()
	records := Normalize(it)
	before := SelectDisplayLocations(records, it, nil)

	selected := ToggleDay(nil, 2)
	cleared := ToggleDay(selected, 2)
	require.Nil(t, cleared)

	after := SelectDisplayLocations(records, it, cleared)
	assert.ElementsMatch(t, before, after, "toggling twice reproduces the full valid set")
}

func TestMapCenterFirstAnchor(t *testing.T) {
	display := []LocationRecord{
		{Latitude: 10, Longitude: 20, Valid: true},
		{Latitude: 30, Longitude: 40, Valid: true},
	}
	center := MapCenter(display, display, CenterFirst, LatLng{})
	assert.Equal(t, LatLng{Lat: 10, Lng: 20}, center)
}

func TestMapCenterCentroid(t *testing.T) {
	display := []LocationRecord{
		{Latitude: 10, Longitude: 20, Valid: true},
		{Latitude: 30, Longitude: 40, Valid: true},
	}
	center := MapCenter(display, display, CenterCentroid, LatLng{})
	assert.Equal(t, LatLng{Lat: 20, Lng: 30}, center)
}

func TestMapCenterFallbacks(t *testing.T) {
	paris := LatLng{Lat: 48.8566, Lng: 2.3522}
	allValid := []LocationRecord{{Latitude: 35.68, Longitude: 139.69, Valid: true}}

	// Empty display set falls back to the first valid location overall.
	center := MapCenter(nil, allValid, CenterFirst, paris)
	assert.Equal(t, LatLng{Lat: 35.68, Lng: 139.69}, center)

	// Nothing valid anywhere falls back to the configured default.
	assert.Equal(t, paris, MapCenter(nil, nil, CenterCentroid, paris))
}

func TestParseCenterStrategy(t *testing.T) {
	assert.Equal(t, CenterFirst, ParseCenterStrategy("first", CenterCentroid))
	assert.Equal(t, CenterCentroid, ParseCenterStrategy(" Centroid ", CenterFirst))
	assert.Equal(t, CenterFirst, ParseCenterStrategy("", CenterFirst))
	assert.Equal(t, CenterCentroid, ParseCenterStrategy("bogus", CenterCentroid))
}
