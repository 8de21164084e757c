package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/routemap"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/trip"
)

type Extractor interface {
	Extract(ctx context.Context, file []byte, mimeType string) ([]byte, error)
	Repair(ctx context.Context, prior, file []byte, mimeType string) ([]byte, error)
	Suggest(ctx context.Context, t dto.Trip) ([]dto.AISuggestion, error)
}

type TripStore interface {
	SaveTrip(ctx context.Context, userID string, t dto.Trip, template string) (string, error)
	ListTrips(ctx context.Context, userID string) ([]dto.StoredTrip, error)
	DeleteTrip(ctx context.Context, userID, id string) error
	SaveBrokerProfile(ctx context.Context, userID string, profile dto.BrokerProfile) error
	GetBrokerProfile(ctx context.Context, userID string) (dto.BrokerProfile, error)
	CreateShare(ctx context.Context, userID string, t dto.Trip,
		profile dto.BrokerProfile, template string) (string, error)
	GetShare(ctx context.Context, shareID string) (dto.SharedTrip, error)
	AcquireUploadLock(ctx context.Context, userID string, timeout time.Duration) (bool, error)
	ReleaseUploadLock(ctx context.Context, userID string) error
}

type EntitlementGate interface {
	Allow(ctx context.Context, userID, customerID string) error
	Consume(ctx context.Context, userID, customerID string) error
}

type PDFRenderer interface {
	Render(ctx context.Context, t dto.Trip, profile dto.BrokerProfile,
		template, shareURL string) ([]byte, string, error)
}

type ItineraryService struct {
	Extractor         Extractor
	Store             TripStore
	Gate              EntitlementGate
	Renderer          PDFRenderer
	UploadLockTimeout time.Duration
}

func NewItineraryService(extractor Extractor, store TripStore, gate EntitlementGate,
	renderer PDFRenderer, uploadLockTimeout time.Duration) *ItineraryService {
	return &ItineraryService{
		Extractor:         extractor,
		Store:             store,
		Gate:              gate,
		Renderer:          renderer,
		UploadLockTimeout: uploadLockTimeout,
	}
}

// ExtractTrip runs the full upload pipeline: decode the document, send
// it through the model, normalize the unreliable JSON into a complete
// trip, then fetch advisory suggestions.
// ExtractTrip godoc
// @Summary      Extract a trip from an uploaded trip sheet
// @Tags         Trips
// @Param        request  body      dto.ExtractRequest  true  "Document payload"
// @Success      200      {object}  dto.ExtractResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/trips/extract [post]
func (s *ItineraryService) ExtractTrip(
	ctx context.Context,
	req dto.ExtractRequest,
) (dto.ExtractResponse, error) {
	startTime := time.Now()

	file, err := decodeFilePayload(req.FileData)
	if err != nil {
		return dto.ExtractResponse{}, ErrInvalidFilePayload.WithCause(err)
	}

	// One extraction per user at a time. Concurrent uploads from the
	// same user would double-spend model quota for the same document.
	if req.UserID != "" {
		acquired, err := s.Store.AcquireUploadLock(ctx, req.UserID, s.UploadLockTimeout)
		if err != nil {
			return dto.ExtractResponse{}, fmt.Errorf("failed to acquire upload lock: %w", err)
		}

		if !acquired {
			return dto.ExtractResponse{}, ErrExtractionInFlight
		}

		defer func() {
			if err := s.Store.ReleaseUploadLock(ctx, req.UserID); err != nil {
				slog.WarnContext(ctx, "failed to release upload lock",
					slog.String("error", err.Error()))
			}
		}()
	}

	raw, err := s.Extractor.Extract(ctx, file, req.MimeType)
	if err != nil {
		return dto.ExtractResponse{}, fmt.Errorf("extraction failed: %w", err)
	}

	normalized, repairAttempted := trip.Normalize(ctx, raw,
		func(ctx context.Context, prior []byte) ([]byte, error) {
			return s.Extractor.Repair(ctx, prior, file, req.MimeType)
		})

	// Suggestions are advisory; their failure never fails the upload.
	suggestions, err := s.Extractor.Suggest(ctx, normalized)
	if err != nil {
		slog.WarnContext(ctx, "suggestion pass failed, continuing without",
			slog.String("error", err.Error()))

		suggestions = []dto.AISuggestion{}
	}

	return dto.ExtractResponse{
		Trip:        normalized,
		Suggestions: suggestions,
		Metadata: dto.ExtractionMeta{
			RepairAttempted: repairAttempted,
			ElapsedMs:       int(time.Since(startTime).Milliseconds()),
		},
	}, nil
}

// SuggestCorrections re-runs the advisory pass against an edited trip.
func (s *ItineraryService) SuggestCorrections(
	ctx context.Context,
	req dto.SuggestRequest,
) (dto.SuggestResponse, error) {
	suggestions, err := s.Extractor.Suggest(ctx, req.Trip)
	if err != nil {
		return dto.SuggestResponse{}, fmt.Errorf("suggestion pass failed: %w", err)
	}

	return dto.SuggestResponse{Suggestions: suggestions}, nil
}

// ApplyFixes folds the accepted suggestions into a copy of the trip.
func (s *ItineraryService) ApplyFixes(
	_ context.Context,
	req dto.ApplyFixesRequest,
) (dto.ApplyFixesResponse, error) {
	return dto.ApplyFixesResponse{Trip: trip.ApplyFixes(req.Trip, req.Fixes)}, nil
}

func (s *ItineraryService) SaveTrip(
	ctx context.Context,
	req dto.SaveTripRequest,
) (dto.SaveTripResponse, error) {
	id, err := s.Store.SaveTrip(ctx, req.UserID, req.Trip, req.Template)
	if err != nil {
		return dto.SaveTripResponse{}, fmt.Errorf("failed to save trip: %w", err)
	}

	return dto.SaveTripResponse{ID: id}, nil
}

func (s *ItineraryService) ListTrips(
	ctx context.Context,
	req dto.ListTripsRequest,
) (dto.ListTripsResponse, error) {
	trips, err := s.Store.ListTrips(ctx, req.UserID)
	if err != nil {
		return dto.ListTripsResponse{}, fmt.Errorf("failed to list trips: %w", err)
	}

	return dto.ListTripsResponse{Trips: trips}, nil
}

func (s *ItineraryService) DeleteTrip(ctx context.Context, req dto.DeleteTripRequest) error {
	if err := s.Store.DeleteTrip(ctx, req.UserID, req.ID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	return nil
}

func (s *ItineraryService) ShareTrip(
	ctx context.Context,
	req dto.ShareRequest,
) (dto.ShareResponse, error) {
	shareID, err := s.Store.CreateShare(ctx, req.UserID, req.Trip, req.BrokerProfile, req.Template)
	if err != nil {
		return dto.ShareResponse{}, fmt.Errorf("failed to create share: %w", err)
	}

	return dto.ShareResponse{ShareID: shareID}, nil
}

func (s *ItineraryService) GetShare(
	ctx context.Context,
	req dto.GetShareRequest,
) (dto.GetShareResponse, error) {
	shared, err := s.Store.GetShare(ctx, req.ShareID)
	if err != nil {
		return dto.GetShareResponse{}, fmt.Errorf("failed to get share: %w", err)
	}

	return dto.GetShareResponse{
		Trip:          shared.Trip,
		BrokerProfile: shared.BrokerProfile,
		Template:      shared.Template,
	}, nil
}

func (s *ItineraryService) SaveBrokerProfile(
	ctx context.Context,
	req dto.SaveBrokerProfileRequest,
) (dto.BrokerProfileResponse, error) {
	if err := s.Store.SaveBrokerProfile(ctx, req.UserID, req.Profile); err != nil {
		return dto.BrokerProfileResponse{}, fmt.Errorf("failed to save broker profile: %w", err)
	}

	return dto.BrokerProfileResponse{Profile: req.Profile}, nil
}

func (s *ItineraryService) GetBrokerProfile(
	ctx context.Context,
	req dto.GetBrokerProfileRequest,
) (dto.BrokerProfileResponse, error) {
	profile, err := s.Store.GetBrokerProfile(ctx, req.UserID)
	if err != nil {
		return dto.BrokerProfileResponse{}, fmt.Errorf("failed to get broker profile: %w", err)
	}

	return dto.BrokerProfileResponse{Profile: profile}, nil
}

// RouteMap resolves the rendering mode and produces either an inline SVG
// or a tile-map bootstrap. Print always gets the static form, and so
// does any route too unresolved for tiles.
func (s *ItineraryService) RouteMap(
	_ context.Context,
	req dto.RouteMapRequest,
) (dto.RouteMapResponse, error) {
	style := req.Style
	if style == "" {
		style = dto.MapStyleLeaflet
	}

	if req.ForPrint {
		style = dto.MapStyleSVG
	}

	if style == dto.MapStyleLeaflet {
		if tileMap, ok := routemap.BuildTileMap(req.Legs); ok {
			return dto.RouteMapResponse{
				Mode:    dto.MapStyleLeaflet,
				TileMap: tileMap,
			}, nil
		}
	}

	opts := routemap.DefaultStaticOptions()
	if req.Height > 0 {
		opts.Height = float64(req.Height)
	}

	return dto.RouteMapResponse{
		Mode: dto.MapStyleSVG,
		SVG:  routemap.RenderSVG(req.Legs, opts),
	}, nil
}

// ExportPDF gates the render behind the entitlement check and charges
// the free-tier counter only after a successful render.
func (s *ItineraryService) ExportPDF(
	ctx context.Context,
	req dto.ExportRequest,
) (dto.ExportResponse, error) {
	if err := s.Gate.Allow(ctx, req.UserID, req.CustomerID); err != nil {
		return dto.ExportResponse{}, fmt.Errorf("export not allowed: %w", err)
	}

	content, fileName, err := s.Renderer.Render(ctx, req.Trip, req.BrokerProfile,
		req.Template, req.ShareURL)
	if err != nil {
		return dto.ExportResponse{}, fmt.Errorf("failed to render itinerary: %w", err)
	}

	if err := s.Gate.Consume(ctx, req.UserID, req.CustomerID); err != nil {
		slog.WarnContext(ctx, "failed to charge export counter",
			slog.String("error", err.Error()))
	}

	return dto.ExportResponse{FileName: fileName, Content: content}, nil
}

// decodeFilePayload accepts either a bare base64 string or a full data
// URL and returns the document bytes.
func decodeFilePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		_, rest, found := strings.Cut(payload, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL")
		}

		payload = rest
	}

	file, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}

	if len(file) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	return file, nil
}
