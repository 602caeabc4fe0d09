package planner

import "WAYFARE_BACK-END/internal/models"

// SelectDisplayLocations returns the records to render on the map for the
// given day filter. With no filter (nil) every valid record is shown. With a
// day selected, a record is shown when it is valid and its id is referenced
// by that day, either in the day's own location list or by one of its
// activities. Synthesized ids never appear in the reference set, so records
// without a source id cannot match a day filter.
//
// Matching id-less records by coordinates is deliberately not done here:
// identical coordinates on distinct places would make the match ambiguous
// without a distance tolerance.
func SelectDisplayLocations(records []LocationRecord, it *models.Itinerary, selectedDay *int) []LocationRecord {
	out := make([]LocationRecord, 0, len(records))
	if selectedDay == nil {
		for _, rec := range records {
			if rec.Valid {
				out = append(out, rec)
			}
		}
		return out
	}
	ids := dayReferenceIDs(it, *selectedDay)
	for _, rec := range records {
		if rec.Valid && !rec.Synthetic && ids[rec.ID] {
			out = append(out, rec)
		}
	}
	return out
}

// dayReferenceIDs collects the non-empty location ids referenced by the given
// day: its explicit locations plus its activities' locations, inline or bare.
func dayReferenceIDs(it *models.Itinerary, day int) map[string]bool {
	ids := make(map[string]bool)
	if it == nil {
		return ids
	}
	for _, d := range it.Days {
		if d.Day != day {
			continue
		}
		for _, loc := range d.Locations {
			if loc.ID != "" {
				ids[loc.ID] = true
			}
		}
		for _, act := range d.Activities {
			if act.Location != nil && act.Location.ID != "" {
				ids[act.Location.ID] = true
			}
		}
	}
	return ids
}

// ToggleDay applies day filter toggle semantics: clicking the already
// selected day clears the filter, clicking any other day selects it.
func ToggleDay(current *int, clicked int) *int {
	if current != nil && *current == clicked {
		return nil
	}
	day := clicked
	return &day
}

// MapCenter picks the viewport center for the displayed set. CenterFirst
// anchors on the first displayed record; CenterCentroid averages the
// displayed coordinates. An empty display set falls back to the first valid
// location overall, and an itinerary with no valid locations at all falls
// back to the configured default center.
func MapCenter(display, allValid []LocationRecord, strategy CenterStrategy, fallback LatLng) LatLng {
	if len(display) > 0 {
		if strategy == CenterCentroid {
			var lat, lng float64
			for _, rec := range display {
				lat += rec.Latitude
				lng += rec.Longitude
			}
			n := float64(len(display))
			return LatLng{Lat: lat / n, Lng: lng / n}
		}
		return LatLng{Lat: display[0].Latitude, Lng: display[0].Longitude}
	}
	if len(allValid) > 0 {
		return LatLng{Lat: allValid[0].Latitude, Lng: allValid[0].Longitude}
	}
	return fallback
}
