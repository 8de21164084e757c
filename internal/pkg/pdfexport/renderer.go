// Package pdfexport renders a branded itinerary PDF. The route map is
// always drawn as static vector shapes; the interactive tile mode has no
// print form.
package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/routemap"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/utils"
)

const (
	pageWidth  = 210.0
	marginX    = 15.0
	contentW   = pageWidth - 2*marginX
	mapHeightM = 52.0
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the itinerary document and a download file name.
func (r *Renderer) Render(ctx context.Context, trip dto.Trip, profile dto.BrokerProfile,
	template, shareURL string) ([]byte, string, error) {

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 15, marginX)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	r.drawHeader(pdf, trip, profile, template)
	r.drawClientBlock(pdf, trip)
	r.drawLegs(pdf, trip)
	r.drawRouteMap(pdf, trip.Legs)
	r.drawPeople(pdf, trip)
	r.drawFooter(pdf, profile, shareURL)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}

	name := fmt.Sprintf("itinerary-%s.pdf", sanitizeFileName(trip.TripID))

	return buf.Bytes(), name, nil
}

func (r *Renderer) drawHeader(pdf *gofpdf.Fpdf, trip dto.Trip, profile dto.BrokerProfile, template string) {
	hr, hg, hb := headerColor(profile, template)

	pdf.SetFillColor(hr, hg, hb)
	pdf.Rect(0, 0, pageWidth, 34, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginX, 8)
	pdf.Cell(120, 8, profile.CompanyName)

	if profile.Tagline != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginX, 17)
		pdf.Cell(120, 5, profile.Tagline)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(pageWidth-marginX-60, 8)
	pdf.CellFormat(60, 6, "FLIGHT ITINERARY", "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(pageWidth-marginX-60, 15)
	pdf.CellFormat(60, 5, fmt.Sprintf("Trip #%s", trip.TripID), "", 0, "R", false, 0, "")

	pdf.SetTextColor(30, 41, 59)
	pdf.SetY(40)
}

func (r *Renderer) drawClientBlock(pdf *gofpdf.Fpdf, trip dto.Trip) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Prepared for")
	pdf.SetFont("Helvetica", "", 10)

	client := trip.Client.Name
	if trip.Client.Company != "" {
		client = fmt.Sprintf("%s, %s", client, trip.Client.Company)
	}
	pdf.Cell(90, 6, client)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(20, 6, "Aircraft")
	pdf.SetFont("Helvetica", "", 10)

	aircraft := trip.Aircraft.Model
	if trip.Visibility.ShowTailNumber && trip.Aircraft.TailNumber != "" {
		aircraft = fmt.Sprintf("%s (%s)", aircraft, trip.Aircraft.TailNumber)
	}
	pdf.CellFormat(0, 6, aircraft, "", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func (r *Renderer) drawLegs(pdf *gofpdf.Fpdf, trip dto.Trip) {
	for _, leg := range trip.Legs {
		r.drawLeg(pdf, leg, trip.Visibility)
	}
}

func (r *Renderer) drawLeg(pdf *gofpdf.Fpdf, leg dto.Leg, vis dto.Visibility) {
	pdf.SetFillColor(241, 245, 249)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("  %s", leg.Label), "", 1, "L", true, 0, "")

	if leg.DateLocal != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(contentW, 5, fmt.Sprintf("  %s", leg.DateLocal), "", 1, "L", false, 0, "")
		pdf.SetTextColor(30, 41, 59)
	}

	half := contentW / 2
	y := pdf.GetY()

	r.drawAirport(pdf, marginX, y, half, "DEPARTURE", leg.Departure, vis)
	depY := pdf.GetY()
	r.drawAirport(pdf, marginX+half, y, half, "ARRIVAL", leg.Arrival, vis)

	if pdf.GetY() < depY {
		pdf.SetY(depY)
	}

	if leg.Metrics.BlockTimeMinutes != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5,
			fmt.Sprintf("Block time: %s", utils.ConvertMinutesToDuration(int64(*leg.Metrics.BlockTimeMinutes))),
			"", 1, "L", false, 0, "")
	}

	if leg.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, fmt.Sprintf("Note: %s", leg.Notes), "", "L", false)
	}

	pdf.Ln(4)
}

func (r *Renderer) drawAirport(pdf *gofpdf.Fpdf, x, y, width float64,
	title string, airport dto.Airport, vis dto.Visibility) {

	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(width, 5, title, "", 2, "L", false, 0, "")
	pdf.SetTextColor(30, 41, 59)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 6, airport.AirportCode, "", 2, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(width, 4, airport.AirportName, "", 2, "L", false, 0, "")
	pdf.CellFormat(width, 4, cityLine(airport), "", 2, "L", false, 0, "")

	if airport.DatetimeLocal != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(width, 5, localTime(airport), "", 2, "L", false, 0, "")
	}

	if airport.FBO != nil && vis.ShowFBOName && airport.FBO.Name != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(width, 4, fmt.Sprintf("FBO: %s", airport.FBO.Name), "", 2, "L", false, 0, "")

		if vis.ShowFBOContact {
			if airport.FBO.Address != "" {
				pdf.CellFormat(width, 4, airport.FBO.Address, "", 2, "L", false, 0, "")
			}
			if airport.FBO.Phone != "" {
				pdf.CellFormat(width, 4, airport.FBO.Phone, "", 2, "L", false, 0, "")
			}
		}

		pdf.SetTextColor(30, 41, 59)
	}
}

// drawRouteMap scales the projector's pixel layout into a fixed band on
// the page and draws dashed great-line segments between the stops.
func (r *Renderer) drawRouteMap(pdf *gofpdf.Fpdf, legs []dto.Leg) {
	points := routemap.ProjectStatic(legs, routemap.DefaultStaticOptions())
	if len(points) < 2 {
		return
	}

	opts := routemap.DefaultStaticOptions()
	y0 := pdf.GetY()

	scaleX := contentW / float64(opts.Width)
	scaleY := mapHeightM / float64(opts.Height)

	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(marginX, y0, contentW, mapHeightM, "F")

	pdf.SetDrawColor(220, 38, 38)
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{1.5, 1.2}, 0)

	for i := 0; i < len(points)-1; i++ {
		pdf.Line(
			marginX+points[i].X*scaleX, y0+points[i].Y*scaleY,
			marginX+points[i+1].X*scaleX, y0+points[i+1].Y*scaleY)
	}

	pdf.SetDashPattern([]float64{}, 0)

	for i, p := range points {
		cr, cg, cb := pinColor(i, len(points))
		pdf.SetFillColor(cr, cg, cb)
		pdf.Circle(marginX+p.X*scaleX, y0+p.Y*scaleY, 1.6, "F")

		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetTextColor(71, 85, 105)
		pdf.SetXY(marginX+p.X*scaleX-8, y0+p.Y*scaleY+2.5)
		pdf.CellFormat(16, 3, p.Code, "", 0, "C", false, 0, "")
	}

	pdf.SetTextColor(30, 41, 59)
	pdf.SetY(y0 + mapHeightM + 5)
}

func (r *Renderer) drawPeople(pdf *gofpdf.Fpdf, trip dto.Trip) {
	if trip.Visibility.ShowPassengerNames && len(trip.Passengers) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Passengers", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)

		for i, p := range trip.Passengers {
			line := fmt.Sprintf("%d. %s", i+1, p.FullName)
			if p.Notes != "" {
				line = fmt.Sprintf("%s — %s", line, p.Notes)
			}
			pdf.CellFormat(contentW, 5, line, "", 1, "L", false, 0, "")
		}

		pdf.Ln(2)
	}

	if len(trip.Crew) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Crew", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)

		for _, c := range trip.Crew {
			line := fmt.Sprintf("%s: %s", c.Role, c.Name)
			if trip.Visibility.ShowCrewContact && c.Phone != "" {
				line = fmt.Sprintf("%s (%s)", line, c.Phone)
			}
			pdf.CellFormat(contentW, 5, line, "", 1, "L", false, 0, "")
		}

		pdf.Ln(2)
	}
}

func (r *Renderer) drawFooter(pdf *gofpdf.Fpdf, profile dto.BrokerProfile, shareURL string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 116, 139)

	var contact []string
	for _, v := range []string{profile.Phone, profile.Email, profile.Website, profile.Address} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	pdf.MultiCell(contentW, 4, strings.Join(contact, "  |  "), "", "L", false)

	if shareURL == "" {
		return
	}

	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		return
	}

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("share-qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("share-qr", pageWidth-marginX-24, pdf.GetY()+2, 24, 24, false, imgOpts, 0, "")

	pdf.CellFormat(contentW-28, 4, "Scan to view this itinerary online", "", 1, "L", false, 0, "")
}

func cityLine(a dto.Airport) string {
	parts := make([]string, 0, 2)
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}

	return strings.Join(parts, ", ")
}

func localTime(a dto.Airport) string {
	if a.Timezone != "" {
		return fmt.Sprintf("%s %s", a.DatetimeLocal, a.Timezone)
	}

	return a.DatetimeLocal
}

// headerColor resolves the banner fill. Executive and premium layouts use
// fixed dark banners; classic takes the broker's primary color.
func headerColor(profile dto.BrokerProfile, template string) (int, int, int) {
	switch template {
	case dto.TemplateExecutive:
		return 31, 41, 55
	case dto.TemplatePremium:
		return 15, 23, 42
	}

	return parseHexColor(profile.PrimaryColor)
}

func parseHexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 128, 128
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 128, 128
	}

	return r, g, b
}

func pinColor(index, total int) (int, int, int) {
	switch {
	case index == 0:
		return 220, 38, 38
	case index == total-1:
		return 22, 163, 74
	default:
		return 37, 99, 235
	}
}

func sanitizeFileName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, id)
}
