package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"WAYFARE_BACK-END/internal/models"
)

// Status classifies an itinerary relative to a reference date.
type Status string

const (
	StatusCurrent  Status = "Current"
	StatusUpcoming Status = "Upcoming"
	StatusPast     Status = "Past"
)

// StatusGroup is one dashboard bucket of itineraries.
type StatusGroup struct {
	Status Status             `json:"status"`
	Items  []models.Itinerary `json:"items"`
}

// ClassifyByStatus buckets itineraries relative to today, normalized to
// midnight: Current when today falls inside the date range inclusive,
// Upcoming when the start is still ahead, Past otherwise. Groups come out in
// fixed order Current, Upcoming, Past and empty groups are omitted. Current
// and Upcoming sort soonest start first; Past sorts most recent start first.
func ClassifyByStatus(itins []models.Itinerary, today time.Time) []StatusGroup {
	day := midnight(today)
	var current, upcoming, past []models.Itinerary
	for _, it := range itins {
		start := midnight(it.StartDate)
		end := midnight(it.EndDate)
		switch {
		case start.After(day):
			upcoming = append(upcoming, it)
		case !end.Before(day):
			current = append(current, it)
		default:
			past = append(past, it)
		}
	}
	byStartAsc := func(items []models.Itinerary) func(i, j int) bool {
		return func(i, j int) bool { return items[i].StartDate.Before(items[j].StartDate) }
	}
	sort.SliceStable(current, byStartAsc(current))
	sort.SliceStable(upcoming, byStartAsc(upcoming))
	sort.SliceStable(past, func(i, j int) bool { return past[i].StartDate.After(past[j].StartDate) })

	groups := make([]StatusGroup, 0, 3)
	if len(current) > 0 {
		groups = append(groups, StatusGroup{Status: StatusCurrent, Items: current})
	}
	if len(upcoming) > 0 {
		groups = append(groups, StatusGroup{Status: StatusUpcoming, Items: upcoming})
	}
	if len(past) > 0 {
		groups = append(groups, StatusGroup{Status: StatusPast, Items: past})
	}
	return groups
}

// DaySchedule is one calendar day of an itinerary with its activities.
type DaySchedule struct {
	Day        int               `json:"day"`
	Date       time.Time         `json:"date"`
	Label      string            `json:"label"`
	Activities []models.Activity `json:"activities"`
}

// GroupActivitiesByDay buckets an itinerary's activities into one entry per
// calendar day from the start date to the end date inclusive. Every day is
// present even when it has no activities yet. An activity pointing at a day
// outside that range is dropped; the range is defined by the itinerary dates,
// not by whatever day indexes the activities happen to carry.
func GroupActivitiesByDay(it *models.Itinerary) []DaySchedule {
	if it == nil {
		return nil
	}
	n := TripDuration(it.StartDate, it.EndDate)
	if n <= 0 {
		return nil
	}
	start := midnight(it.StartDate)
	schedule := make([]DaySchedule, n)
	for i := range schedule {
		schedule[i] = DaySchedule{
			Day:        i + 1,
			Date:       start.AddDate(0, 0, i),
			Label:      fmt.Sprintf("Day %d", i+1),
			Activities: []models.Activity{},
		}
	}
	for _, day := range it.Days {
		for _, act := range day.Activities {
			idx := act.Day
			if idx == 0 {
				// Older payloads leave the activity's day implicit and rely
				// on the owning Day entry.
				idx = day.Day
			}
			if idx < 1 || idx > n {
				continue
			}
			schedule[idx-1].Activities = append(schedule[idx-1].Activities, act)
		}
	}
	return schedule
}

// TripDuration returns the trip length in days, inclusive of both endpoints.
// A trip that starts and ends on the same date lasts one day, never zero.
func TripDuration(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// DurationLabel renders a day count for display.
func DurationLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatDateRange renders an inclusive date range. The start date's year is
// omitted when both dates fall in the same year.
func FormatDateRange(start, end time.Time) string {
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " – " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2, 2006") + " – " + end.Format("Jan 2, 2006")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
