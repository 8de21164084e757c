package routemap

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

func legsFromCodes(pairs ...[2]string) []dto.Leg {
	legs := make([]dto.Leg, len(pairs))
	for i, p := range pairs {
		legs[i] = dto.Leg{
			Departure: dto.Airport{AirportCode: p[0]},
			Arrival:   dto.Airport{AirportCode: p[1]},
		}
	}

	return legs
}

func TestLookup(t *testing.T) {
	lookupRequest := func(code string, wantOK bool, want LatLon) func(t *testing.T) {
		return func(t *testing.T) {
			got, ok := Lookup(code)
			if ok != wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", code, ok, wantOK)
			}
			if wantOK {
				assert.InDelta(t, want.Lat, got.Lat, 1e-9)
				assert.InDelta(t, want.Lon, got.Lon, 1e-9)
			}
		}
	}

	t.Run("iata", lookupRequest("VNY", true, LatLon{34.2098, -118.4909}))
	t.Run("lowercase", lookupRequest("sjc", true, LatLon{37.3626, -121.9289}))
	t.Run("us_icao_k_prefix", lookupRequest("KVNY", true, LatLon{34.2098, -118.4909}))
	t.Run("four_letter_icao", lookupRequest("EGLL", true, LatLon{51.4775, -0.4614}))
	t.Run("unknown", lookupRequest("ZZZ", false, LatLon{}))
	t.Run("empty", lookupRequest("", false, LatLon{}))
}

func TestProjectStatic_RoundTrip(t *testing.T) {
	legs := legsFromCodes([2]string{"VNY", "SJC"}, [2]string{"SJC", "VNY"})

	points := ProjectStatic(legs, StaticOptions{})

	assert.Len(t, points, 3)
	assert.Equal(t, []string{"VNY", "SJC", "VNY"},
		[]string{points[0].Code, points[1].Code, points[2].Code})

	// First and last stop are the same airport, so they project to the
	// same canvas position.
	assert.InDelta(t, points[0].X, points[2].X, 1e-9)
	assert.InDelta(t, points[0].Y, points[2].Y, 1e-9)

	// All points stay inside the padded canvas.
	opts := DefaultStaticOptions()
	for _, p := range points {
		assert.GreaterOrEqual(t, p.X, opts.Padding)
		assert.LessOrEqual(t, p.X, opts.Width-opts.Padding)
		assert.GreaterOrEqual(t, p.Y, opts.Padding)
		assert.LessOrEqual(t, p.Y, opts.Height-opts.Padding)
	}
}

func TestProjectStatic_DegeneracyGuard(t *testing.T) {
	t.Run("identical_coordinates", func(t *testing.T) {
		legs := legsFromCodes([2]string{"VNY", "VNY"}, [2]string{"VNY", "VNY"})

		points := ProjectStatic(legs, StaticOptions{})

		assert.Len(t, points, 3)
		for i := range points {
			for j := i + 1; j < len(points); j++ {
				dist := math.Hypot(points[i].X-points[j].X, points[i].Y-points[j].Y)
				assert.Greater(t, dist, 1.0,
					"points %d and %d overlap", i, j)
			}
		}
	})

	t.Run("zero_range_on_one_axis", func(t *testing.T) {
		// JFK and LGA are close; VNY and BUR share almost the same
		// latitude. None of these may produce NaN or Inf.
		legs := legsFromCodes([2]string{"VNY", "BUR"})

		points := ProjectStatic(legs, StaticOptions{})

		for _, p := range points {
			assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0), "x = %v", p.X)
			assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0), "y = %v", p.Y)
		}
	})
}

func TestProjectStatic_UnknownCodesFallback(t *testing.T) {
	legs := legsFromCodes([2]string{"XXA", "XXB"}, [2]string{"XXB", "XXC"})

	points := ProjectStatic(legs, StaticOptions{})

	// Every code keeps a labeled point even though none resolved.
	assert.Len(t, points, 3)
	assert.Equal(t, []string{"XXA", "XXB", "XXC"},
		[]string{points[0].Code, points[1].Code, points[2].Code})

	// Zig-zag layout alternates the vertical offset.
	assert.NotEqual(t, points[0].Y, points[1].Y)
	assert.Equal(t, points[0].Y, points[2].Y)
	assert.Less(t, points[0].X, points[1].X)
	assert.Less(t, points[1].X, points[2].X)
}

func TestProjectStatic_NoLegs(t *testing.T) {
	points := ProjectStatic(nil, StaticOptions{})

	// Placeholder padding guarantees at least two labeled stops.
	assert.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, "TBD", p.Code)
	}
}

func TestBuildTileMap(t *testing.T) {
	t.Run("resolved_route", func(t *testing.T) {
		legs := legsFromCodes([2]string{"VNY", "SJC"}, [2]string{"SJC", "TEB"})

		bootstrap, ok := BuildTileMap(legs)

		assert.True(t, ok)
		assert.Len(t, bootstrap.Pins, 3)
		assert.False(t, bootstrap.Interactive)
		assert.Equal(t, fitPadding, bootstrap.FitPadding)

		assert.Equal(t, colorFirst, bootstrap.Pins[0].Color)
		assert.Equal(t, colorInterior, bootstrap.Pins[1].Color)
		assert.Equal(t, colorLast, bootstrap.Pins[2].Color)
		assert.Equal(t, 14, bootstrap.Pins[0].Size)
		assert.Equal(t, 11, bootstrap.Pins[1].Size)
	})

	t.Run("city_labels_preferred", func(t *testing.T) {
		legs := []dto.Leg{{
			Departure: dto.Airport{AirportCode: "VNY", City: "Van Nuys"},
			Arrival:   dto.Airport{AirportCode: "SJC", City: "San Jose"},
		}}

		bootstrap, ok := BuildTileMap(legs)

		assert.True(t, ok)
		assert.Equal(t, "Van Nuys", bootstrap.Pins[0].Label)
		assert.Equal(t, "San Jose", bootstrap.Pins[1].Label)
	})

	t.Run("unresolvable_route_falls_back", func(t *testing.T) {
		legs := legsFromCodes([2]string{"XXA", "XXB"})

		bootstrap, ok := BuildTileMap(legs)

		assert.False(t, ok)
		assert.Nil(t, bootstrap)
	})

	t.Run("partially_resolvable", func(t *testing.T) {
		legs := legsFromCodes([2]string{"VNY", "XXB"})

		_, ok := BuildTileMap(legs)

		assert.False(t, ok)
	})
}

func TestRenderSVG(t *testing.T) {
	legs := legsFromCodes([2]string{"VNY", "SJC"}, [2]string{"SJC", "VNY"})

	svg := RenderSVG(legs, StaticOptions{})

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Equal(t, 2, strings.Count(svg, ">VNY</text>"))
	assert.Equal(t, 1, strings.Count(svg, ">SJC</text>"))
	assert.Contains(t, svg, `stroke-dasharray="6 5"`)
	assert.Contains(t, svg, "linearGradient")
}

func TestRenderSVG_EscapesLabels(t *testing.T) {
	legs := []dto.Leg{{
		Departure: dto.Airport{AirportCode: "<VNY>"},
		Arrival:   dto.Airport{AirportCode: "SJC"},
	}}

	svg := RenderSVG(legs, StaticOptions{})

	assert.NotContains(t, svg, "><VNY></text>")
	assert.Contains(t, svg, "&lt;VNY&gt;")
}
