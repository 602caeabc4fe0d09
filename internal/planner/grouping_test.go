package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WAYFARE_BACK-END/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func itineraryNamed(title string, start, end time.Time) models.Itinerary {
	return models.Itinerary{Title: title, StartDate: start, EndDate: end}
}

func TestClassifyByStatus(t *testing.T) {
	today := date(2024, time.June, 15)
	itins := []models.Itinerary{
		itineraryNamed("past-old", date(2024, time.January, 1), date(2024, time.January, 5)),
		itineraryNamed("upcoming-late", date(2024, time.September, 1), date(2024, time.September, 10)),
		itineraryNamed("current", date(2024, time.June, 10), date(2024, time.June, 20)),
		itineraryNamed("past-recent", date(2024, time.May, 1), date(2024, time.May, 3)),
		itineraryNamed("upcoming-soon", date(2024, time.July, 1), date(2024, time.July, 4)),
	}

	groups := ClassifyByStatus(itins, today)
	require.Len(t, groups, 3)

	assert.Equal(t, StatusCurrent, groups[0].Status)
	require.Len(t, groups[0].Items, 1)
	assert.Equal(t, "current", groups[0].Items[0].Title)

	assert.Equal(t, StatusUpcoming, groups[1].Status)
	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "upcoming-soon", groups[1].Items[0].Title, "upcoming sorts soonest first")
	assert.Equal(t, "upcoming-late", groups[1].Items[1].Title)

	assert.Equal(t, StatusPast, groups[2].Status)
	require.Len(t, groups[2].Items, 2)
	assert.Equal(t, "past-recent", groups[2].Items[0].Title, "past sorts most recent first")
	assert.Equal(t, "past-old", groups[2].Items[1].Title)
}

func TestClassifyByStatusBoundaries(t *testing.T) {
	today := date(2024, time.June, 15)

	starts := ClassifyByStatus([]models.Itinerary{
		itineraryNamed("starts-today", today, date(2024, time.June, 20)),
	}, today)
	require.Len(t, starts, 1)
	assert.Equal(t, StatusCurrent, starts[0].Status)

	ends := ClassifyByStatus([]models.Itinerary{
		itineraryNamed("ends-today", date(2024, time.June, 10), today),
	}, today)
	require.Len(t, ends, 1)
	assert.Equal(t, StatusCurrent, ends[0].Status)

	// Today at 23:59 still counts as the same day.
	late := today.Add(23*time.Hour + 59*time.Minute)
	tomorrow := ClassifyByStatus([]models.Itinerary{
		itineraryNamed("tomorrow", date(2024, time.June, 16), date(2024, time.June, 18)),
	}, late)
	require.Len(t, tomorrow, 1)
	assert.Equal(t, StatusUpcoming, tomorrow[0].Status)
}

func TestClassifyByStatusOmitsEmptyGroups(t *testing.T) {
	today := date(2024, time.June, 15)
	groups := ClassifyByStatus([]models.Itinerary{
		itineraryNamed("only-upcoming", date(2024, time.July, 1), date(2024, time.July, 2)),
	}, today)
	require.Len(t, groups, 1)
	assert.Equal(t, StatusUpcoming, groups[0].Status)

	assert.Empty(t, ClassifyByStatus(nil, today))
}

func TestClassifyByStatusIsIdempotent(t *testing.T) {
	today := date(2024, time.June, 15)
	itins := []models.Itinerary{
		itineraryNamed("a", date(2024, time.May, 1), date(2024, time.May, 5)),
		itineraryNamed("b", date(2024, time.June, 14), date(2024, time.June, 16)),
		itineraryNamed("c", date(2024, time.August, 1), date(2024, time.August, 2)),
	}
	first := ClassifyByStatus(itins, today)
	second := ClassifyByStatus(itins, today)
	assert.Equal(t, first, second)
}

func TestGroupActivitiesByDay(t *testing.T) {
	it := &models.Itinerary{
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 3),
		Days: []models.Day{
			{Day: 2, Activities: []models.Activity{
				{Day: 2, Time: "10:00", Description: "Museum"},
				{Day: 2, Time: "14:00", Description: "Park"},
			}},
			{Day: 3, Activities: []models.Activity{
				{Day: 7, Description: "Out of range, dropped"},
			}},
		},
	}

	schedule := GroupActivitiesByDay(it)
	require.Len(t, schedule, 3, "one entry per calendar day, inclusive")

	assert.Equal(t, 1, schedule[0].Day)
	assert.Equal(t, date(2024, time.June, 1), schedule[0].Date)
	assert.NotNil(t, schedule[0].Activities)
	assert.Empty(t, schedule[0].Activities, "empty days are present, not omitted")

	require.Len(t, schedule[1].Activities, 2)
	assert.Equal(t, "Museum", schedule[1].Activities[0].Description)
	assert.Equal(t, date(2024, time.June, 2), schedule[1].Date)

	assert.Empty(t, schedule[2].Activities, "out-of-range activity is silently dropped")
	assert.Equal(t, "Day 3", schedule[2].Label)
}

func TestGroupActivitiesByDayImplicitDayIndex(t *testing.T) {
	// Activities without a day field inherit the owning Day entry's index.
	it := &models.Itinerary{
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 2),
		Days: []models.Day{
			{Day: 2, Activities: []models.Activity{{Description: "Beach"}}},
		},
	}
	schedule := GroupActivitiesByDay(it)
	require.Len(t, schedule, 2)
	require.Len(t, schedule[1].Activities, 1)
	assert.Equal(t, "Beach", schedule[1].Activities[0].Description)
}

func TestTripDuration(t *testing.T) {
	start := date(2024, time.June, 1)
	assert.Equal(t, 1, TripDuration(start, start), "a same-day trip is 1 day, never 0")
	assert.Equal(t, 3, TripDuration(start, start.AddDate(0, 0, 2)))
	assert.Equal(t, 8, TripDuration(start, start.AddDate(0, 0, 7)))
	assert.Equal(t, 0, TripDuration(start, start.AddDate(0, 0, -1)))
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "1 day", DurationLabel(1))
	assert.Equal(t, "5 days", DurationLabel(5))
}

func TestFormatDateRange(t *testing.T) {
	sameYear := FormatDateRange(date(2024, time.June, 1), date(2024, time.June, 3))
	assert.Equal(t, "Jun 1 – Jun 3, 2024", sameYear)

	crossYear := FormatDateRange(date(2024, time.December, 28), date(2025, time.January, 2))
	assert.Equal(t, "Dec 28, 2024 – Jan 2, 2025", crossYear)
}
