package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/config"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/endpoints"
	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/exception"
	httptransport "github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	_ *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	itinerary := endpts.ItineraryEndpoint

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Route("/trips", func(router chi.Router) {
			router.Post("/extract", httptransport.MakeHandlerFunc(
				itinerary.ExtractTrip,
				httptransport.DecodeRequest[dto.ExtractRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/suggestions", httptransport.MakeHandlerFunc(
				itinerary.SuggestFixes,
				httptransport.DecodeRequest[dto.SuggestRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/fixes", httptransport.MakeHandlerFunc(
				itinerary.ApplyFixes,
				httptransport.DecodeRequest[dto.ApplyFixesRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/", httptransport.MakeHandlerFunc(
				itinerary.SaveTrip,
				httptransport.DecodeRequest[dto.SaveTripRequest],
				httptransport.ResponseWithBody,
			))

			router.Get("/", httptransport.MakeHandlerFunc(
				itinerary.ListTrips,
				decodeListTripsRequest,
				httptransport.ResponseWithBody,
			))

			router.Delete("/{id}", httptransport.MakeHandlerFunc(
				itinerary.DeleteTrip,
				decodeDeleteTripRequest,
				httptransport.NoContentResponse,
			))

			router.Post("/share", httptransport.MakeHandlerFunc(
				itinerary.ShareTrip,
				httptransport.DecodeRequest[dto.ShareRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/routemap", httptransport.MakeHandlerFunc(
				itinerary.RouteMap,
				httptransport.DecodeRequest[dto.RouteMapRequest],
				httptransport.ResponseWithBody,
			))

			router.Post("/export", httptransport.MakeHandlerFunc(
				itinerary.ExportPDF,
				httptransport.DecodeRequest[dto.ExportRequest],
				httptransport.PDFResponse,
			))
		})

		router.Get("/share/{id}", httptransport.MakeHandlerFunc(
			itinerary.GetShare,
			decodeGetShareRequest,
			httptransport.ResponseWithBody,
		))

		router.Route("/broker-profile", func(router chi.Router) {
			router.Put("/", httptransport.MakeHandlerFunc(
				itinerary.SaveBrokerProfile,
				httptransport.DecodeRequest[dto.SaveBrokerProfileRequest],
				httptransport.ResponseWithBody,
			))

			router.Get("/", httptransport.MakeHandlerFunc(
				itinerary.GetBrokerProfile,
				decodeGetBrokerProfileRequest,
				httptransport.ResponseWithBody,
			))
		})
	})

	return router
}

var errUserIDRequired = exception.ApplicationError{
	StatusCode: http.StatusUnauthorized,
	Message:    "X-User-Id header is required",
}

// Decoders for the bodyless routes. The JSON-body routes go through the
// generic DecodeRequest instead.

func decodeListTripsRequest(_ context.Context, req *http.Request) (interface{}, error) {
	userID := req.Header.Get("X-User-Id")
	if userID == "" {
		return nil, errUserIDRequired
	}

	return &dto.ListTripsRequest{UserID: userID}, nil
}

func decodeDeleteTripRequest(_ context.Context, req *http.Request) (interface{}, error) {
	userID := req.Header.Get("X-User-Id")
	if userID == "" {
		return nil, errUserIDRequired
	}

	return &dto.DeleteTripRequest{
		UserID: userID,
		ID:     chi.URLParam(req, "id"),
	}, nil
}

func decodeGetShareRequest(_ context.Context, req *http.Request) (interface{}, error) {
	return &dto.GetShareRequest{ShareID: chi.URLParam(req, "id")}, nil
}

func decodeGetBrokerProfileRequest(_ context.Context, req *http.Request) (interface{}, error) {
	userID := req.Header.Get("X-User-Id")
	if userID == "" {
		return nil, errUserIDRequired
	}

	return &dto.GetBrokerProfileRequest{UserID: userID}, nil
}
