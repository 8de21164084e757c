// Package routemap renders an ordered sequence of airport codes as a 2-D
// route, either as a bootstrap descriptor for a client-side tile map or
// as a deterministic equirectangular SVG projection for export.
package routemap

import (
	"math"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

// Colors shared by both rendering modes: first pin, last pin, interior
// pins, matching the dashed red route line.
const (
	colorFirst    = "#dc2626"
	colorLast     = "#16a34a"
	colorInterior = "#2563eb"
)

const (
	tileURL         = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	tileAttribution = "© CARTO"
	fitPadding      = 28
)

// Minimum axis range for the projection; a degenerate bounding box is
// floored here so the linear mapping never divides by zero.
const minAxisRange = 0.001

// Point is one projected route stop in canvas coordinates.
type Point struct {
	X    float64
	Y    float64
	Code string
}

// StaticOptions sizes the static projection canvas.
type StaticOptions struct {
	Width   float64
	Height  float64
	Padding float64
}

// DefaultStaticOptions matches the itinerary preview panel.
func DefaultStaticOptions() StaticOptions {
	return StaticOptions{Width: 640, Height: 200, Padding: 28}
}

func (o StaticOptions) withDefaults() StaticOptions {
	def := DefaultStaticOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Padding <= 0 {
		o.Padding = def.Padding
	}

	return o
}

// routeCodes flattens legs into the visitation order: first departure,
// then every arrival.
func routeCodes(legs []dto.Leg) []string {
	codes := make([]string, 0, len(legs)+1)
	for i, leg := range legs {
		if i == 0 {
			codes = append(codes, leg.Departure.AirportCode)
		}
		codes = append(codes, leg.Arrival.AirportCode)
	}

	return codes
}

// buildRoutePoints resolves the code sequence against the coordinate
// table. Unresolvable codes drop out of the coordinate path but stay as
// labels. Fewer than two codes get "TBD" padding so something always
// renders.
func buildRoutePoints(legs []dto.Leg) ([]string, []LatLon) {
	codes := routeCodes(legs)

	coords := make([]LatLon, 0, len(codes))
	for _, code := range codes {
		if c, ok := Lookup(code); ok {
			coords = append(coords, c)
		}
	}

	if len(codes) < 2 {
		codes = append(codes, "TBD", "TBD")
	}

	return codes, coords
}

// ProjectStatic maps the route onto a fixed canvas. With two or more
// resolved coordinates it uses an equirectangular projection; otherwise
// it falls back to an evenly spaced zig-zag so an itinerary full of
// unrecognized codes still produces a visual artifact.
func ProjectStatic(legs []dto.Leg, opts StaticOptions) []Point {
	opts = opts.withDefaults()
	codes, coords := buildRoutePoints(legs)

	if len(coords) >= 2 && !fullyDegenerate(coords) {
		return projectCoords(codes, coords, opts)
	}

	return zigzagLayout(codes, opts)
}

func projectCoords(codes []string, coords []LatLon, opts StaticOptions) []Point {
	minLat, maxLat := coords[0].Lat, coords[0].Lat
	minLon, maxLon := coords[0].Lon, coords[0].Lon
	for _, c := range coords[1:] {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLon = math.Max(maxLon, c.Lon)
	}

	latRange := math.Max(minAxisRange, maxLat-minLat)
	lonRange := math.Max(minAxisRange, maxLon-minLon)

	points := make([]Point, len(coords))
	for i, c := range coords {
		// Screen y grows downward while latitude grows northward, hence
		// the inversion on the y axis.
		points[i] = Point{
			X:    opts.Padding + (c.Lon-minLon)/lonRange*(opts.Width-opts.Padding*2),
			Y:    opts.Padding + (maxLat-c.Lat)/latRange*(opts.Height-opts.Padding*2),
			Code: labelFor(codes, i),
		}
	}

	return points
}

// zigzagLayout spreads points evenly across the canvas with alternating
// vertical offsets, purely so placeholder stops and labels render when
// coordinates are unknown.
func zigzagLayout(codes []string, opts StaticOptions) []Point {
	points := make([]Point, len(codes))
	denom := math.Max(1, float64(len(codes)-1))

	for i := range codes {
		offset := 12.0
		if i%2 == 0 {
			offset = -12.0
		}

		points[i] = Point{
			X:    opts.Padding + float64(i)/denom*(opts.Width-opts.Padding*2),
			Y:    opts.Height/2 + offset,
			Code: labelFor(codes, i),
		}
	}

	return points
}

// fullyDegenerate reports whether every resolved coordinate collapses to
// one spot (a shuttle run between the same field). The projection would
// stack all pins on a single pixel, so the caller switches to the
// zig-zag layout to keep the stops visually distinct.
func fullyDegenerate(coords []LatLon) bool {
	for _, c := range coords[1:] {
		if math.Abs(c.Lat-coords[0].Lat) >= minAxisRange ||
			math.Abs(c.Lon-coords[0].Lon) >= minAxisRange {
			return false
		}
	}

	return true
}

func labelFor(codes []string, i int) string {
	if i < len(codes) && codes[i] != "" {
		return codes[i]
	}

	return "TBD"
}

func pinColor(i, total int) string {
	switch {
	case i == 0:
		return colorFirst
	case i == total-1:
		return colorLast
	default:
		return colorInterior
	}
}

// BuildTileMap assembles the display-only bootstrap for the interactive
// tile map: pins in visitation order, the dashed polyline style, and
// fit-bounds padding. ok is false when fewer than two codes resolve, in
// which case the caller must fall back to the static projection.
func BuildTileMap(legs []dto.Leg) (*dto.TileMapBootstrap, bool) {
	codes := routeCodes(legs)

	pins := make([]dto.MapPin, 0, len(codes))
	for i, code := range codes {
		coords, ok := Lookup(code)
		if !ok {
			continue
		}

		pins = append(pins, dto.MapPin{
			Code:  code,
			Label: pinLabel(legs, i, code),
			Lat:   coords.Lat,
			Lon:   coords.Lon,
		})
	}

	if len(pins) < 2 {
		return nil, false
	}

	for i := range pins {
		pins[i].Color = pinColor(i, len(pins))
		pins[i].Size = 11
		if i == 0 || i == len(pins)-1 {
			pins[i].Size = 14
		}
	}

	return &dto.TileMapBootstrap{
		TileURL:     tileURL,
		Attribution: tileAttribution,
		FitPadding:  fitPadding,
		Interactive: false,
		Polyline: dto.PolylineStyle{
			Color:     colorFirst,
			Weight:    2.5,
			DashArray: "8 5",
			Opacity:   0.85,
		},
		Pins: pins,
	}, true
}

// pinLabel prefers the city attached to the leg that visits this stop.
func pinLabel(legs []dto.Leg, codeIndex int, code string) string {
	var city string
	if codeIndex < len(legs) {
		city = legs[codeIndex].Departure.City
	} else if len(legs) > 0 {
		city = legs[len(legs)-1].Arrival.City
	}

	if city != "" {
		return city
	}

	return code
}
