package dto

// Template identifiers for the three itinerary layouts.
const (
	TemplateClassic   = "classic"
	TemplateExecutive = "executive"
	TemplatePremium   = "premium"
)

// Map rendering styles. MapStyleSVG is forced during PDF export.
const (
	MapStyleLeaflet = "leaflet"
	MapStyleSVG     = "svg"
)

// TemplateFlags is a per-template boolean switch.
type TemplateFlags struct {
	Classic   bool `json:"classic"`
	Executive bool `json:"executive"`
	Premium   bool `json:"premium"`
}

// TemplateMapStyle selects the map rendering mode per template.
type TemplateMapStyle struct {
	Classic   string `json:"classic"`
	Executive string `json:"executive"`
	Premium   string `json:"premium"`
}

// BrokerProfile is the white-label identity of the tool's user. Image
// fields hold either base64 data URLs or externally hosted URLs.
type BrokerProfile struct {
	CompanyName          string            `json:"company_name"`
	Tagline              string            `json:"tagline,omitempty"`
	LogoDataURL          string            `json:"logo_dataurl,omitempty"`
	ExteriorImageDataURL string            `json:"exterior_image_dataurl,omitempty"`
	InteriorImageDataURL string            `json:"interior_image_dataurl,omitempty"`
	ImageUsage           *TemplateFlags    `json:"image_usage,omitempty"`
	MapStyle             *TemplateMapStyle `json:"map_style,omitempty"`
	PrimaryColor         string            `json:"primary_color"`
	Address              string            `json:"address,omitempty"`
	Phone                string            `json:"phone,omitempty"`
	Email                string            `json:"email,omitempty"`
	Website              string            `json:"website,omitempty"`
}

// DefaultBrokerProfile returns the profile a fresh session starts with.
func DefaultBrokerProfile() BrokerProfile {
	return BrokerProfile{
		CompanyName:  "24|7 Jet",
		Tagline:      "Private Charter",
		PrimaryColor: "#008080",
		Address:      "7426 Hayvenhurst Ave., Van Nuys, CA 91406",
		Phone:        "818-247-5387",
		Email:        "charter@247jet.com",
		ImageUsage: &TemplateFlags{
			Classic: true,
		},
		MapStyle: &TemplateMapStyle{
			Classic:   MapStyleLeaflet,
			Executive: MapStyleLeaflet,
			Premium:   MapStyleLeaflet,
		},
	}
}

// MapStyleFor resolves the map mode for a template, defaulting to the
// interactive style when the profile does not say otherwise.
func (p BrokerProfile) MapStyleFor(template string) string {
	if p.MapStyle == nil {
		return MapStyleLeaflet
	}

	var style string
	switch template {
	case TemplateExecutive:
		style = p.MapStyle.Executive
	case TemplatePremium:
		style = p.MapStyle.Premium
	default:
		style = p.MapStyle.Classic
	}

	if style == "" {
		return MapStyleLeaflet
	}

	return style
}
