package dto

import (
	"net/http"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/exception"
)

// ExtractRequest carries an uploaded trip-sheet document. FileData is
// either a bare base64 payload or a full data URL; the service strips the
// prefix before handing bytes to the extraction model.
type ExtractRequest struct {
	UserID   string `json:"-"`
	FileData string `json:"file_data" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	FileName string `json:"file_name,omitempty"`
}

func (r *ExtractRequest) Bind(req *http.Request) error {
	r.UserID = userIDFromRequest(req)

	return validateBind(r)
}

type ExtractResponse struct {
	Trip        Trip           `json:"trip"`
	Suggestions []AISuggestion `json:"suggestions"`
	Metadata    ExtractionMeta `json:"metadata"`
}

type ExtractionMeta struct {
	RepairAttempted bool `json:"repair_attempted"`
	ElapsedMs       int  `json:"elapsed_ms"`
}

type SuggestRequest struct {
	Trip Trip `json:"trip" validate:"required"`
}

func (r *SuggestRequest) Bind(req *http.Request) error {
	return validateBind(r)
}

type SuggestResponse struct {
	Suggestions []AISuggestion `json:"suggestions"`
}

// ApplyFixesRequest applies one or more suggested fixes to a trip and
// returns the edited copy.
type ApplyFixesRequest struct {
	Trip  Trip           `json:"trip" validate:"required"`
	Fixes []SuggestedFix `json:"fixes" validate:"required,min=1"`
}

func (r *ApplyFixesRequest) Bind(req *http.Request) error {
	return validateBind(r)
}

type ApplyFixesResponse struct {
	Trip Trip `json:"trip"`
}

type SaveTripRequest struct {
	UserID   string `json:"-"`
	Trip     Trip   `json:"trip" validate:"required"`
	Template string `json:"template" validate:"required,oneof=classic executive premium"`
}

func (r *SaveTripRequest) Bind(req *http.Request) error {
	r.UserID = userIDFromRequest(req)
	if r.UserID == "" {
		return errMissingUserID
	}

	return validateBind(r)
}

type SaveTripResponse struct {
	ID string `json:"id"`
}

type ListTripsRequest struct {
	UserID string `json:"-"`
}

type ListTripsResponse struct {
	Trips []StoredTrip `json:"trips"`
}

type DeleteTripRequest struct {
	UserID string `json:"-"`
	ID     string `json:"-"`
}

type ShareRequest struct {
	UserID        string        `json:"-"`
	Trip          Trip          `json:"trip" validate:"required"`
	BrokerProfile BrokerProfile `json:"broker_profile" validate:"required"`
	Template      string        `json:"template" validate:"required,oneof=classic executive premium"`
}

func (r *ShareRequest) Bind(req *http.Request) error {
	r.UserID = userIDFromRequest(req)
	if r.UserID == "" {
		return errMissingUserID
	}

	return validateBind(r)
}

type ShareResponse struct {
	ShareID string `json:"share_id"`
}

type GetShareRequest struct {
	ShareID string `json:"-"`
}

type GetShareResponse struct {
	Trip          Trip          `json:"trip"`
	BrokerProfile BrokerProfile `json:"broker_profile"`
	Template      string        `json:"template"`
}

type SaveBrokerProfileRequest struct {
	UserID  string        `json:"-"`
	Profile BrokerProfile `json:"profile" validate:"required"`
}

func (r *SaveBrokerProfileRequest) Bind(req *http.Request) error {
	r.UserID = userIDFromRequest(req)
	if r.UserID == "" {
		return errMissingUserID
	}

	return validateBind(r)
}

type GetBrokerProfileRequest struct {
	UserID string `json:"-"`
}

type BrokerProfileResponse struct {
	Profile BrokerProfile `json:"profile"`
}

// RouteMapRequest asks for a route rendering of the given legs. Style is
// optional; when empty the broker profile's per-template choice applies.
type RouteMapRequest struct {
	Legs     []Leg  `json:"legs" validate:"required,min=1"`
	Style    string `json:"style,omitempty" validate:"omitempty,oneof=leaflet svg"`
	Height   int    `json:"height,omitempty" validate:"omitempty,min=80,max=1200"`
	ForPrint bool   `json:"for_print,omitempty"`
}

func (r *RouteMapRequest) Bind(req *http.Request) error {
	return validateBind(r)
}

type RouteMapResponse struct {
	Mode    string            `json:"mode"`
	SVG     string            `json:"svg,omitempty"`
	TileMap *TileMapBootstrap `json:"tile_map,omitempty"`
}

// TileMapBootstrap is everything a client-side tile map needs to render
// the route without further decisions: pins in visitation order, the
// dashed polyline, and fit-bounds padding. Interactive is always false;
// the map is display only.
type TileMapBootstrap struct {
	TileURL     string        `json:"tile_url"`
	Attribution string        `json:"attribution"`
	FitPadding  int           `json:"fit_padding"`
	Interactive bool          `json:"interactive"`
	Polyline    PolylineStyle `json:"polyline"`
	Pins        []MapPin      `json:"pins"`
}

type PolylineStyle struct {
	Color     string  `json:"color"`
	Weight    float64 `json:"weight"`
	DashArray string  `json:"dash_array"`
	Opacity   float64 `json:"opacity"`
}

type MapPin struct {
	Code  string  `json:"code"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Size  int     `json:"size"`
}

type ExportRequest struct {
	UserID        string        `json:"-"`
	CustomerID    string        `json:"-"`
	Trip          Trip          `json:"trip" validate:"required"`
	BrokerProfile BrokerProfile `json:"broker_profile" validate:"required"`
	Template      string        `json:"template" validate:"required,oneof=classic executive premium"`
	ShareURL      string        `json:"share_url,omitempty"`
}

func (r *ExportRequest) Bind(req *http.Request) error {
	r.UserID = userIDFromRequest(req)
	if r.UserID == "" {
		return errMissingUserID
	}
	r.CustomerID = req.Header.Get("X-Customer-Id")

	return validateBind(r)
}

type ExportResponse struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"-"`
}

var errMissingUserID = exception.ApplicationError{
	StatusCode: http.StatusUnauthorized,
	Message:    "X-User-Id header is required",
}

func userIDFromRequest(req *http.Request) string {
	if req == nil {
		return ""
	}

	return req.Header.Get("X-User-Id")
}

func validateBind(req interface{}) error {
	if err := ValidateSingleError(req); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}
