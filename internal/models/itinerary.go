package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Itinerary represents a travel itinerary created by a user. Days are stored
// as a single JSONB document and only ever replaced whole; there are no
// day-level mutation endpoints.
type Itinerary struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	City        string    `json:"city" db:"city"`
	Country     string    `json:"country" db:"country"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"` // draft | published | archived
	Days        []Day     `json:"days" db:"days"`
	CreatorID   uuid.UUID `json:"creator_id" db:"creator_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Day is one chronological slot of an itinerary. The index is 1-based; the
// calendar date is derived by adding day-1 days to the itinerary start date.
type Day struct {
	Day        int        `json:"day"`
	Locations  []Location `json:"locations,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// UnmarshalJSON decodes a day tolerantly. Day payloads come straight from the
// SPA and are not always well formed: locations or activities may be missing,
// null, or not arrays at all. Anything that is not an array decodes as empty
// rather than failing the whole itinerary.
func (d *Day) UnmarshalJSON(b []byte) error {
	var raw struct {
		Day        int             `json:"day"`
		Locations  json.RawMessage `json:"locations"`
		Activities json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Day = raw.Day
	d.Locations = nil
	if len(raw.Locations) > 0 {
		var locs []Location
		if err := json.Unmarshal(raw.Locations, &locs); err == nil {
			d.Locations = locs
		}
	}
	d.Activities = nil
	if len(raw.Activities) > 0 {
		var acts []Activity
		if err := json.Unmarshal(raw.Activities, &acts); err == nil {
			d.Activities = acts
		}
	}
	return nil
}

// Activity is a scheduled item within a day, optionally tied to a location.
type Activity struct {
	ID          string       `json:"id,omitempty"`
	Day         int          `json:"day,omitempty"`
	Time        string       `json:"time,omitempty"`
	StartTime   string       `json:"start_time,omitempty"`
	Description string       `json:"description"`
	Location    *LocationRef `json:"location,omitempty"`
}

// When returns the activity's time of day, from whichever field the client
// sent.
func (a Activity) When() string {
	if a.Time != "" {
		return a.Time
	}
	return a.StartTime
}

// Location is a geo-located point of interest. Latitude and longitude are
// kept loosely typed because clients send them as numbers or numeric strings,
// and some location providers send a GeoJSON geometry instead.
type Location struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Address   string    `json:"address,omitempty"`
	Category  string    `json:"category,omitempty"`
	Latitude  any       `json:"latitude,omitempty"`
	Longitude any       `json:"longitude,omitempty"`
	Geometry  *Geometry `json:"geometry,omitempty"`
}

// Geometry is the GeoJSON point shape. Coordinates are longitude first, then
// latitude.
type Geometry struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// LocationRef is an activity's location: either an inline Location object or
// a bare id string referencing one. Bare ids are not resolved to coordinates
// by this service.
type LocationRef struct {
	ID       string
	Location *Location
}

// UnmarshalJSON accepts either a JSON string (bare id) or a location object.
func (l *LocationRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = LocationRef{ID: s}
		return nil
	}
	var loc Location
	if err := json.Unmarshal(b, &loc); err != nil {
		// Unrecognized shape; treat as no location rather than failing the
		// itinerary decode.
		*l = LocationRef{}
		return nil
	}
	*l = LocationRef{ID: loc.ID, Location: &loc}
	return nil
}

// MarshalJSON writes back the same shape that was received.
func (l LocationRef) MarshalJSON() ([]byte, error) {
	if l.Location != nil {
		return json.Marshal(l.Location)
	}
	if l.ID != "" {
		return json.Marshal(l.ID)
	}
	return []byte("null"), nil
}
