// Package planner implements the itinerary location model: extracting and
// normalizing geo-located points from an itinerary, grouping activities into
// calendar days, classifying itineraries against today's date, and projecting
// a day-filtered location set with a map viewport center.
//
// Everything in this package is pure computation over the values passed in.
// Handlers fetch the itinerary and call in; nothing here touches the
// database, the clock (callers pass "today"), or any other ambient state.
// Derived records are recomputed on every call and never cached.
package planner

import "strings"

// LatLng is a map viewport center.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CenterStrategy selects how MapCenter positions the viewport over a
// non-empty display set.
type CenterStrategy string

const (
	// CenterFirst anchors the viewport on the first displayed location.
	CenterFirst CenterStrategy = "first"
	// CenterCentroid centers on the arithmetic mean of the displayed set.
	CenterCentroid CenterStrategy = "centroid"
)

// ParseCenterStrategy maps a request parameter onto a strategy, falling back
// to def for empty or unknown values.
func ParseCenterStrategy(s string, def CenterStrategy) CenterStrategy {
	switch CenterStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case CenterFirst:
		return CenterFirst
	case CenterCentroid:
		return CenterCentroid
	}
	return def
}
