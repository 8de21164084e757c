package trip

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

// ApplyFix applies one suggested correction to a deep copy of the trip.
// The path grammar is closed: anything outside it, including an
// out-of-range leg index or an unparsable numeric value, is a silent
// no-op and the returned trip equals the input.
func ApplyFix(t dto.Trip, fix dto.SuggestedFix) dto.Trip {
	out := t.Clone()
	applyFix(&out, fix)

	return out
}

// ApplyFixes applies a batch sequentially against a single copy, so when
// two fixes target the same field the last one in iteration order wins.
func ApplyFixes(t dto.Trip, fixes []dto.SuggestedFix) dto.Trip {
	out := t.Clone()
	for _, fix := range fixes {
		applyFix(&out, fix)
	}

	return out
}

func applyFix(t *dto.Trip, fix dto.SuggestedFix) {
	field := fix.Field

	switch {
	case strings.HasPrefix(field, "legs."):
		applyLegFix(t, field, fix.Value)
	case strings.HasPrefix(field, "visibility."):
		setVisibilityFlag(&t.Visibility, strings.TrimPrefix(field, "visibility."), fix.Value)
	case field == "aircraft.tail_number":
		t.Aircraft.TailNumber = stringValue(fix.Value)
	}
}

func applyLegFix(t *dto.Trip, field string, value interface{}) {
	parts := strings.Split(field, ".")
	if len(parts) < 3 {
		return
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 || index >= len(t.Legs) {
		return
	}

	leg := &t.Legs[index]

	switch {
	case parts[2] == "metrics" && len(parts) > 3 && parts[3] == "block_time_minutes":
		if v, ok := intValue(value); ok {
			leg.Metrics.BlockTimeMinutes = &v
		}
	case parts[2] == "label":
		leg.Label = stringValue(value)
	case parts[2] == "departure" && len(parts) > 3:
		setAirportField(&leg.Departure, parts[3], stringValue(value))
	case parts[2] == "arrival" && len(parts) > 3:
		setAirportField(&leg.Arrival, parts[3], stringValue(value))
	}
}

func setAirportField(a *dto.Airport, name, value string) {
	switch name {
	case "airport_code":
		a.AirportCode = value
	case "airport_name":
		a.AirportName = value
	case "city":
		a.City = value
	case "state":
		a.State = value
	case "country":
		a.Country = value
	case "timezone":
		a.Timezone = value
	case "datetime_local":
		a.DatetimeLocal = value
	}
}

func setVisibilityFlag(v *dto.Visibility, name string, value interface{}) {
	flag := boolValue(value)

	switch name {
	case "show_tail_number":
		v.ShowTailNumber = flag
	case "show_fbo_name":
		v.ShowFBOName = flag
	case "show_fbo_contact":
		v.ShowFBOContact = flag
	case "show_passenger_names":
		v.ShowPassengerNames = flag
	case "show_weather":
		v.ShowWeather = flag
	case "show_crew_contact":
		v.ShowCrewContact = flag
	}
}

// boolValue passes a literal boolean through; anything else is compared
// case-insensitively against "true".
func boolValue(value interface{}) bool {
	if b, ok := value.(bool); ok {
		return b
	}

	return strings.EqualFold(stringValue(value), "true")
}

// intValue accepts JSON numbers and strings with a leading integer, the
// same shapes a lenient parseInt would take. ok is false when no integer
// prefix exists, which callers treat as a no-op.
func intValue(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}

		return int(v), true
	case string:
		return intPrefix(v)
	default:
		return 0, false
	}
}

func intPrefix(s string) (int, bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digits := end
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}

	if digits == end {
		return 0, false
	}

	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, false
	}

	return n, true
}

func stringValue(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}

	if value == nil {
		return ""
	}

	return fmt.Sprint(value)
}
