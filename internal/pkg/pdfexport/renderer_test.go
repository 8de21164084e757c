package pdfexport

import (
	"bytes"
	"context"
	"testing"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

func sampleTrip() dto.Trip {
	blockTime := 62

	return dto.Trip{
		TripID:   "CHTR-8841",
		Client:   dto.Client{Name: "Jordan Reyes", Company: "Acme Charters"},
		Aircraft: dto.Aircraft{Model: "Citation XLS+", TailNumber: "N562XL"},
		Passengers: []dto.Passenger{
			{FullName: "Jordan Reyes"},
			{FullName: "Sam Okafor", Notes: "vegetarian catering"},
		},
		Crew: []dto.CrewMember{
			{Role: "Captain", Name: "A. Lindqvist", Phone: "310-555-0188"},
		},
		Legs: []dto.Leg{
			{
				LegID:     "leg-0",
				Label:     "Outbound",
				DateLocal: "2026-03-14",
				Departure: dto.Airport{
					AirportCode:   "VNY",
					AirportName:   "Van Nuys",
					City:          "Los Angeles",
					State:         "CA",
					DatetimeLocal: "2026-03-14T09:00:00",
					Timezone:      "PST",
					FBO:           &dto.FBO{Name: "Clay Lacy", Phone: "818-555-0100"},
				},
				Arrival: dto.Airport{
					AirportCode:   "SJC",
					AirportName:   "San Jose Intl",
					City:          "San Jose",
					State:         "CA",
					DatetimeLocal: "2026-03-14T10:02:00",
					Timezone:      "PST",
				},
				Metrics: dto.LegMetrics{BlockTimeMinutes: &blockTime},
			},
			{
				LegID:     "leg-1",
				Label:     "Return",
				DateLocal: "2026-03-16",
				Departure: dto.Airport{AirportCode: "SJC", DatetimeLocal: "2026-03-16T17:00:00"},
				Arrival:   dto.Airport{AirportCode: "VNY", DatetimeLocal: "2026-03-16T18:00:00"},
			},
		},
		Visibility: dto.Visibility{
			ShowTailNumber:     true,
			ShowFBOName:        true,
			ShowFBOContact:     true,
			ShowPassengerNames: true,
			ShowCrewContact:    true,
		},
	}
}

func TestRenderer_Render_Closure(t *testing.T) {
	renderRequest := func(trip dto.Trip, template, shareURL, wantName string) func(t *testing.T) {
		return func(t *testing.T) {
			r := NewRenderer()

			content, name, err := r.Render(context.Background(), trip,
				dto.DefaultBrokerProfile(), template, shareURL)
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			if !bytes.HasPrefix(content, []byte("%PDF")) {
				t.Fatal("expected PDF magic bytes")
			}
			if name != wantName {
				t.Fatalf("expected file name %q, got %q", wantName, name)
			}
		}
	}

	t.Run("classic_template", renderRequest(sampleTrip(),
		dto.TemplateClassic, "", "itinerary-CHTR-8841.pdf"))

	t.Run("premium_with_share_qr", renderRequest(sampleTrip(),
		dto.TemplatePremium, "https://example.com/share/abc", "itinerary-CHTR-8841.pdf"))

	t.Run("file_name_sanitized", renderRequest(func() dto.Trip {
		trip := sampleTrip()
		trip.TripID = "itn 0042/B"

		return trip
	}(), dto.TemplateExecutive, "", "itinerary-itn-0042-B.pdf"))

	t.Run("empty_trip_still_renders", renderRequest(dto.Trip{TripID: "ABC123XYZ"},
		dto.TemplateClassic, "", "itinerary-ABC123XYZ.pdf"))
}

func TestParseHexColor_Closure(t *testing.T) {
	parseRequest := func(hex string, wantR, wantG, wantB int) func(t *testing.T) {
		return func(t *testing.T) {
			r, g, b := parseHexColor(hex)
			if r != wantR || g != wantG || b != wantB {
				t.Fatalf("expected (%d,%d,%d), got (%d,%d,%d)",
					wantR, wantG, wantB, r, g, b)
			}
		}
	}

	t.Run("teal", parseRequest("#008080", 0, 128, 128))
	t.Run("red", parseRequest("#dc2626", 220, 38, 38))
	t.Run("no_hash", parseRequest("112233", 17, 34, 51))
	t.Run("garbage_falls_back", parseRequest("not-a-color", 0, 128, 128))
	t.Run("empty_falls_back", parseRequest("", 0, 128, 128))
}
