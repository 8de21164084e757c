package routemap

import (
	"fmt"
	"strings"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

// RenderSVG produces the static route schematic: a gradient dashed path
// through the stops in order, a colored dot per stop, and a code label
// under each dot. Used for PDF export and whenever the tile map is
// unavailable or deselected.
func RenderSVG(legs []dto.Leg, opts StaticOptions) string {
	opts = opts.withDefaults()
	points := ProjectStatic(legs, opts)

	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="100%%" height="%.0f" style="display:block;background:#f8fafc">`,
		opts.Width, opts.Height, opts.Height)
	b.WriteString(`<defs><linearGradient id="routeLine" x1="0" y1="0" x2="1" y2="0">`)
	fmt.Fprintf(&b, `<stop offset="0%%" stop-color="%s"/>`, colorFirst)
	fmt.Fprintf(&b, `<stop offset="100%%" stop-color="%s"/>`, colorLast)
	b.WriteString(`</linearGradient></defs>`)

	fmt.Fprintf(&b,
		`<path d="%s" fill="none" stroke="url(#routeLine)" stroke-width="2.5" stroke-dasharray="6 5"/>`,
		pathData(points))

	for i, p := range points {
		radius := 4.0
		if i == 0 || i == len(points)-1 {
			radius = 6.0
		}

		fmt.Fprintf(&b,
			`<circle cx="%.2f" cy="%.2f" r="%.0f" fill="%s" stroke="#fff" stroke-width="2"/>`,
			p.X, p.Y, radius, pinColor(i, len(points)))
		fmt.Fprintf(&b,
			`<text x="%.2f" y="%.2f" text-anchor="middle" font-size="9" font-weight="700" fill="#475569">%s</text>`,
			p.X, p.Y+16, escapeText(p.Code))
	}

	b.WriteString(`</svg>`)

	return b.String()
}

func pathData(points []Point) string {
	var b strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.2f,%.2f", cmd, p.X, p.Y)
		if i < len(points)-1 {
			b.WriteByte(' ')
		}
	}

	return b.String()
}

func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)

	return replacer.Replace(s)
}
