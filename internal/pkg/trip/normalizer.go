// Package trip turns the unreliable JSON produced by the document
// extraction model into a structurally sound, render-ready Trip, and
// applies suggested single-field corrections to it.
package trip

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

// Placeholder marks a required field the extraction could not determine.
const Placeholder = "TBD"

const tripIDLength = 9

const tripIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RepairFunc re-invokes the extraction with the original document plus a
// repair instruction, passing the prior raw JSON as context. Normalize
// calls it at most once.
type RepairFunc func(ctx context.Context, prior []byte) ([]byte, error)

// Raw mirror of the Trip shape. Everything is a pointer so a missing
// field is distinguishable from an empty one; the extraction schema asks
// for required fields but the far end does not actually enforce them.
type rawTrip struct {
	TripID     *string        `json:"trip_id"`
	Client     *rawClient     `json:"client"`
	Aircraft   *rawAircraft   `json:"aircraft"`
	Passengers []rawPassenger `json:"passengers"`
	Crew       []rawCrew      `json:"crew"`
	Legs       []rawLeg       `json:"legs"`
}

type rawClient struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
}

type rawAircraft struct {
	Model      *string `json:"model"`
	TailNumber *string `json:"tail_number"`
	Category   *string `json:"category"`
}

type rawPassenger struct {
	FullName *string `json:"full_name"`
	Notes    *string `json:"notes"`
}

type rawCrew struct {
	Role  *string `json:"role"`
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type rawLeg struct {
	Label     *string     `json:"label"`
	DateLocal *string     `json:"date_local"`
	Departure *rawAirport `json:"departure"`
	Arrival   *rawAirport `json:"arrival"`
	Metrics   *rawMetrics `json:"metrics"`
	Notes     *string     `json:"notes"`
}

type rawAirport struct {
	AirportCode   *string  `json:"airport_code"`
	AirportName   *string  `json:"airport_name"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	Country       *string  `json:"country"`
	Timezone      *string  `json:"timezone"`
	DatetimeLocal *string  `json:"datetime_local"`
	FBO           *dto.FBO `json:"fbo"`
}

type rawMetrics struct {
	DistanceNM       *float64 `json:"distance_nm"`
	BlockTimeMinutes *float64 `json:"block_time_minutes"`
}

func parseRaw(data []byte) rawTrip {
	var raw rawTrip
	// A malformed payload degrades to the zero value, which the gap
	// detector treats as critically incomplete.
	_ = json.Unmarshal(data, &raw)

	return raw
}

// HasCriticalGaps reports whether a raw payload is missing any of the
// fields the itinerary cannot render without. Pure predicate, no I/O.
func HasCriticalGaps(data []byte) bool {
	return hasCriticalGaps(parseRaw(data))
}

func hasCriticalGaps(raw rawTrip) bool {
	if raw.Client == nil || raw.Client.Name == nil || *raw.Client.Name == "" {
		return true
	}

	if raw.Aircraft == nil ||
		raw.Aircraft.Model == nil || *raw.Aircraft.Model == "" ||
		raw.Aircraft.TailNumber == nil || *raw.Aircraft.TailNumber == "" {
		return true
	}

	if len(raw.Legs) == 0 {
		return true
	}

	for _, leg := range raw.Legs {
		if leg.Departure == nil || emptyPtr(leg.Departure.AirportCode) ||
			emptyPtr(leg.Departure.DatetimeLocal) {
			return true
		}

		if leg.Arrival == nil || emptyPtr(leg.Arrival.AirportCode) ||
			emptyPtr(leg.Arrival.DatetimeLocal) {
			return true
		}
	}

	return false
}

func emptyPtr(s *string) bool {
	return s == nil || *s == ""
}

// Normalize converts a raw extraction payload into a complete Trip. When
// the payload is critically incomplete and a repair capability is
// supplied, the extraction is re-invoked exactly once; a second failure
// is accepted as best-effort and the gaps are filled with placeholders.
// The returned bool reports whether a repair call was made.
//
// Normalize never fails on malformed input.
func Normalize(ctx context.Context, data []byte, repair RepairFunc) (dto.Trip, bool) {
	raw := parseRaw(data)
	repaired := false

	if hasCriticalGaps(raw) && repair != nil {
		repaired = true

		fixed, err := repair(ctx, data)
		if err != nil {
			slog.WarnContext(ctx, "extraction repair failed, proceeding with placeholders",
				slog.String("error", err.Error()))
		} else {
			raw = parseRaw(fixed)
		}
	}

	trip := assemble(raw)
	fillDefaults(&trip)
	deriveBlockTimes(&trip)

	return trip, repaired
}

// assemble performs identity assignment and structural completion: stable
// leg ids in array order, positional labels, all-true visibility, and
// never-nil sub-objects.
func assemble(raw rawTrip) dto.Trip {
	trip := dto.Trip{
		TripID: strValue(raw.TripID),
		Visibility: dto.Visibility{
			ShowTailNumber:     true,
			ShowFBOName:        true,
			ShowFBOContact:     true,
			ShowPassengerNames: true,
			ShowWeather:        true,
			ShowCrewContact:    true,
		},
		Passengers: []dto.Passenger{},
		Crew:       []dto.CrewMember{},
		Legs:       []dto.Leg{},
	}

	// An explicit trip id is preserved byte-for-byte; only synthesize one
	// when the document had none.
	if trip.TripID == "" {
		trip.TripID = randomTripID()
	}

	if raw.Client != nil {
		trip.Client = dto.Client{
			Name:    strValue(raw.Client.Name),
			Company: strValue(raw.Client.Company),
			Email:   strValue(raw.Client.Email),
		}
	}

	if raw.Aircraft != nil {
		trip.Aircraft = dto.Aircraft{
			Model:      strValue(raw.Aircraft.Model),
			TailNumber: strValue(raw.Aircraft.TailNumber),
			Category:   strValue(raw.Aircraft.Category),
		}
	}

	for _, p := range raw.Passengers {
		trip.Passengers = append(trip.Passengers, dto.Passenger{
			FullName: strValue(p.FullName),
			Notes:    strValue(p.Notes),
		})
	}

	for _, c := range raw.Crew {
		trip.Crew = append(trip.Crew, dto.CrewMember{
			Role:  strValue(c.Role),
			Name:  strValue(c.Name),
			Phone: strValue(c.Phone),
		})
	}

	for i, rl := range raw.Legs {
		trip.Legs = append(trip.Legs, assembleLeg(rl, i, len(raw.Legs)))
	}

	if len(trip.Legs) == 0 {
		trip.Legs = append(trip.Legs, assembleLeg(rawLeg{}, 0, 1))
	}

	return trip
}

func assembleLeg(raw rawLeg, index, total int) dto.Leg {
	leg := dto.Leg{
		LegID:     legID(index),
		Label:     strValue(raw.Label),
		DateLocal: strValue(raw.DateLocal),
		Notes:     strValue(raw.Notes),
	}

	if leg.Label == "" {
		leg.Label = positionalLabel(index, total)
	}

	leg.Departure = assembleAirport(raw.Departure)
	leg.Arrival = assembleAirport(raw.Arrival)

	if raw.Metrics != nil {
		leg.Metrics.DistanceNM = raw.Metrics.DistanceNM
		if raw.Metrics.BlockTimeMinutes != nil {
			v := int(math.Round(*raw.Metrics.BlockTimeMinutes))
			leg.Metrics.BlockTimeMinutes = &v
		}
	}

	return leg
}

func assembleAirport(raw *rawAirport) dto.Airport {
	if raw == nil {
		return dto.Airport{}
	}

	return dto.Airport{
		AirportCode:   strValue(raw.AirportCode),
		AirportName:   strValue(raw.AirportName),
		City:          strValue(raw.City),
		State:         strValue(raw.State),
		Country:       strValue(raw.Country),
		Timezone:      strValue(raw.Timezone),
		DatetimeLocal: strValue(raw.DatetimeLocal),
		FBO:           raw.FBO,
	}
}

func legID(index int) string {
	return "leg-" + strconv.Itoa(index)
}

func positionalLabel(index, total int) string {
	switch {
	case index == 0:
		return "Outbound"
	case index == total-1:
		return "Return"
	default:
		return "Leg " + strconv.Itoa(index+1)
	}
}

// fillDefaults replaces empty or whitespace-only required text fields
// with the placeholder sentinel. date_local, state and timezone are
// cosmetic and stay blank when unknown.
func fillDefaults(trip *dto.Trip) {
	trip.Client.Name = safe(trip.Client.Name, Placeholder)
	trip.Aircraft.Model = safe(trip.Aircraft.Model, Placeholder)
	trip.Aircraft.TailNumber = safe(trip.Aircraft.TailNumber, Placeholder)

	for i := range trip.Legs {
		leg := &trip.Legs[i]
		leg.Label = safe(leg.Label, "Leg")
		leg.DateLocal = safe(leg.DateLocal, "")
		fillAirportDefaults(&leg.Departure)
		fillAirportDefaults(&leg.Arrival)
	}
}

func fillAirportDefaults(a *dto.Airport) {
	a.AirportCode = safe(a.AirportCode, Placeholder)
	a.AirportName = safe(a.AirportName, Placeholder)
	a.City = safe(a.City, Placeholder)
	a.Country = safe(a.Country, Placeholder)
	a.DatetimeLocal = safe(a.DatetimeLocal, Placeholder)
	a.State = safe(a.State, "")
	a.Timezone = safe(a.Timezone, "")
}

func safe(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}

	return val
}

// deriveBlockTimes computes block time for legs where the extraction did
// not supply it. Parse failure leaves the metric absent: absence means
// unknown, zero would mean a same-instant flight.
func deriveBlockTimes(trip *dto.Trip) {
	for i := range trip.Legs {
		leg := &trip.Legs[i]
		if leg.Metrics.BlockTimeMinutes != nil {
			continue
		}

		leg.Metrics.BlockTimeMinutes = calcBlockTimeMinutes(
			leg.Departure.DatetimeLocal, leg.Arrival.DatetimeLocal)
	}
}

var localDatetimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseLocalDatetime(value string) (time.Time, bool) {
	for _, layout := range localDatetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// calcBlockTimeMinutes derives elapsed minutes from local datetimes. A
// negative raw difference implies an unstated day rollover and gets 24h
// added. Known limitation: a leg genuinely longer than 24 hours
// under-reports, since the rollover heuristic cannot tell the two apart.
func calcBlockTimeMinutes(dep, arr string) *int {
	depTime, ok := parseLocalDatetime(dep)
	if !ok {
		return nil
	}

	arrTime, ok := parseLocalDatetime(arr)
	if !ok {
		return nil
	}

	diff := arrTime.Sub(depTime)
	if diff < 0 {
		diff += 24 * time.Hour
	}

	minutes := int(math.Round(diff.Minutes()))

	return &minutes
}

func randomTripID() string {
	b := make([]byte, tripIDLength)
	for i := range b {
		b[i] = tripIDAlphabet[rand.Intn(len(tripIDAlphabet))]
	}

	return string(b)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
