package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"WAYFARE_BACK-END/internal/models"
)

// Source records where a normalized location came from.
type Source string

const (
	// SourceDayList marks a record taken from a day's explicit location list.
	SourceDayList Source = "day.locations"
	// SourceActivity marks a record derived from an activity's location.
	SourceActivity Source = "activity"
)

// LocationRecord is a read-only projection of one location occurrence within
// an itinerary. Records are rebuilt whenever the itinerary or the day filter
// changes and are never persisted.
//
// Records with invalid coordinates stay in the output so list views can show
// the unlocated entry; map-facing consumers filter on Valid.
type LocationRecord struct {
	ID           string  `json:"id"`
	Day          int     `json:"day"`
	Name         string  `json:"name,omitempty"`
	Address      string  `json:"address,omitempty"`
	Category     string  `json:"category,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Valid        bool    `json:"is_valid"`
	Source       Source  `json:"source"`
	ActivityTime string  `json:"activity_time,omitempty"`
	ActivityNote string  `json:"activity_note,omitempty"`

	// Synthetic is set when the source had no id and one was derived. A
	// synthetic id identifies the record across recomputations but never
	// matches a day filter, which works on source ids only.
	Synthetic bool `json:"-"`

	// hasCoords is set when a coordinate pair was extracted, valid or not.
	hasCoords bool
}

// Normalize flattens an itinerary into location records: each day's explicit
// locations first, then locations carried by its activities, days in the
// order they appear. Encounter order is preserved; nothing is resorted or
// dropped here.
func Normalize(it *models.Itinerary) []LocationRecord {
	if it == nil {
		return nil
	}
	records := make([]LocationRecord, 0)
	for _, day := range it.Days {
		for i, loc := range day.Locations {
			records = append(records, newRecord(&loc, day.Day, i, SourceDayList))
		}
		for i, act := range day.Activities {
			if act.Location == nil {
				continue
			}
			var rec LocationRecord
			if act.Location.Location != nil {
				rec = newRecord(act.Location.Location, day.Day, len(day.Locations)+i, SourceActivity)
			} else {
				// Bare id reference. This service does not resolve ids to
				// coordinates, so the record carries the id only and is
				// never map-facing.
				rec = LocationRecord{ID: act.Location.ID, Day: day.Day, Source: SourceActivity}
			}
			rec.ActivityTime = act.When()
			rec.ActivityNote = act.Description
			records = append(records, rec)
		}
	}
	return records
}

func newRecord(loc *models.Location, day, position int, src Source) LocationRecord {
	rec := LocationRecord{
		ID:       loc.ID,
		Day:      day,
		Name:     loc.Name,
		Address:  loc.Address,
		Category: loc.Category,
		Source:   src,
	}
	if lat, lng, ok := Coordinates(loc); ok {
		rec.Latitude = lat
		rec.Longitude = lng
		rec.hasCoords = true
		rec.Valid = ValidCoordinates(lat, lng)
	}
	if rec.ID == "" {
		rec.ID = syntheticID(day, position, rec.Latitude, rec.Longitude)
		rec.Synthetic = true
	}
	return rec
}

// Coordinates extracts a coordinate pair from either explicit
// latitude/longitude fields or a GeoJSON geometry. GeoJSON order is longitude
// first; the pair is returned latitude first.
func Coordinates(loc *models.Location) (lat, lng float64, ok bool) {
	if loc == nil {
		return 0, 0, false
	}
	lat, latOK := toFloat(loc.Latitude)
	lng, lngOK := toFloat(loc.Longitude)
	if latOK && lngOK {
		return lat, lng, true
	}
	if g := loc.Geometry; g != nil && len(g.Coordinates) >= 2 {
		return g.Coordinates[1], g.Coordinates[0], true
	}
	return 0, 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// ValidCoordinates reports whether the pair is a finite point on the globe:
// latitude in [-90,90], longitude in [-180,180].
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// syntheticID builds a stable id for a location the source did not name.
// It is derived from the record's position and rounded coordinates, so
// recomputing the same itinerary yields the same id; random ids here made
// map markers remount on every render.
func syntheticID(day, position int, lat, lng float64) string {
	return fmt.Sprintf("d%d-p%d-%.5f,%.5f", day, position, lat, lng)
}

// Dedupe collapses duplicate records within each day, keeping the first
// occurrence. Two records are duplicates when they share a non-empty source
// id, or, lacking ids, the exact same coordinates. Records with neither a
// source id nor coordinates are always kept.
func Dedupe(records []LocationRecord) []LocationRecord {
	seen := make(map[string]bool, len(records))
	out := make([]LocationRecord, 0, len(records))
	for _, rec := range records {
		key := dedupeKey(rec)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, rec)
	}
	return out
}

func dedupeKey(rec LocationRecord) string {
	if !rec.Synthetic && rec.ID != "" {
		return fmt.Sprintf("d%d:id:%s", rec.Day, rec.ID)
	}
	if rec.hasCoords {
		// Full-precision equality on purpose; near-duplicates are distinct.
		return fmt.Sprintf("d%d:at:%v,%v", rec.Day, rec.Latitude, rec.Longitude)
	}
	return ""
}
