package dto

import "time"

// FBO is the ground-handler contact at an airport.
type FBO struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type Airport struct {
	AirportCode   string `json:"airport_code"`
	AirportName   string `json:"airport_name"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Timezone      string `json:"timezone"`
	DatetimeLocal string `json:"datetime_local"`
	FBO           *FBO   `json:"fbo,omitempty"`
}

type LegMetrics struct {
	DistanceNM       *float64 `json:"distance_nm,omitempty"`
	BlockTimeMinutes *int     `json:"block_time_minutes,omitempty"`
}

type Leg struct {
	LegID     string     `json:"leg_id"`
	Label     string     `json:"label"`
	DateLocal string     `json:"date_local"`
	Departure Airport    `json:"departure"`
	Arrival   Airport    `json:"arrival"`
	Metrics   LegMetrics `json:"metrics"`
	Notes     string     `json:"notes,omitempty"`
}

type Passenger struct {
	FullName string `json:"full_name"`
	Notes    string `json:"notes,omitempty"`
}

type CrewMember struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Client struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
}

type Aircraft struct {
	Model      string `json:"model"`
	TailNumber string `json:"tail_number"`
	Category   string `json:"category,omitempty"`
}

// Visibility controls what a client-facing rendering reveals.
type Visibility struct {
	ShowTailNumber     bool `json:"show_tail_number"`
	ShowFBOName        bool `json:"show_fbo_name"`
	ShowFBOContact     bool `json:"show_fbo_contact"`
	ShowPassengerNames bool `json:"show_passenger_names"`
	ShowWeather        bool `json:"show_weather"`
	ShowCrewContact    bool `json:"show_crew_contact"`
}

// Trip is the central entity: one charter itinerary owned by a single
// editing session.
type Trip struct {
	TripID     string       `json:"trip_id"`
	Client     Client       `json:"client"`
	Aircraft   Aircraft     `json:"aircraft"`
	Passengers []Passenger  `json:"passengers"`
	Crew       []CrewMember `json:"crew"`
	Legs       []Leg        `json:"legs"`
	Visibility Visibility   `json:"visibility"`
}

// Clone returns a deep copy. Mutations on the copy never leak back into
// the receiver, which is what the copy-on-write editing model relies on.
func (t Trip) Clone() Trip {
	out := t

	out.Passengers = make([]Passenger, len(t.Passengers))
	copy(out.Passengers, t.Passengers)

	out.Crew = make([]CrewMember, len(t.Crew))
	copy(out.Crew, t.Crew)

	out.Legs = make([]Leg, len(t.Legs))
	for i, leg := range t.Legs {
		cloned := leg
		cloned.Departure = cloneAirport(leg.Departure)
		cloned.Arrival = cloneAirport(leg.Arrival)
		cloned.Metrics = cloneMetrics(leg.Metrics)
		out.Legs[i] = cloned
	}

	return out
}

func cloneAirport(a Airport) Airport {
	out := a
	if a.FBO != nil {
		fbo := *a.FBO
		out.FBO = &fbo
	}

	return out
}

func cloneMetrics(m LegMetrics) LegMetrics {
	out := m
	if m.DistanceNM != nil {
		v := *m.DistanceNM
		out.DistanceNM = &v
	}
	if m.BlockTimeMinutes != nil {
		v := *m.BlockTimeMinutes
		out.BlockTimeMinutes = &v
	}

	return out
}

// AISuggestion is an advisory record proposing a single-field correction.
type AISuggestion struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	Message       string        `json:"message"`
	Explanation   string        `json:"explanation"`
	AffectedLegID string        `json:"affected_leg_id,omitempty"`
	SuggestedFix  *SuggestedFix `json:"suggested_fix,omitempty"`
}

// SuggestedFix addresses a field by a dotted path into the Trip tree,
// e.g. "legs.1.metrics.block_time_minutes". Value arrives as whatever the
// model emitted, usually a string.
type SuggestedFix struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// StoredTrip is one entry in a user's trip history.
type StoredTrip struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	ClientName string    `json:"client_name"`
	Route      string    `json:"route"`
	Trip       Trip      `json:"trip"`
	Template   string    `json:"template"`
	CreatedAt  time.Time `json:"created_at"`
}

// SharedTrip is the tuple behind a public share link.
type SharedTrip struct {
	Trip          Trip          `json:"trip"`
	BrokerProfile BrokerProfile `json:"broker_profile"`
	Template      string        `json:"template"`
	UserID        string        `json:"user_id"`
	CreatedAt     time.Time     `json:"created_at"`
}
