package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

type ItineraryService interface {
	ExtractTrip(ctx context.Context, req dto.ExtractRequest) (dto.ExtractResponse, error)
	SuggestCorrections(ctx context.Context, req dto.SuggestRequest) (dto.SuggestResponse, error)
	ApplyFixes(ctx context.Context, req dto.ApplyFixesRequest) (dto.ApplyFixesResponse, error)
	SaveTrip(ctx context.Context, req dto.SaveTripRequest) (dto.SaveTripResponse, error)
	ListTrips(ctx context.Context, req dto.ListTripsRequest) (dto.ListTripsResponse, error)
	DeleteTrip(ctx context.Context, req dto.DeleteTripRequest) error
	ShareTrip(ctx context.Context, req dto.ShareRequest) (dto.ShareResponse, error)
	GetShare(ctx context.Context, req dto.GetShareRequest) (dto.GetShareResponse, error)
	SaveBrokerProfile(ctx context.Context, req dto.SaveBrokerProfileRequest) (dto.BrokerProfileResponse, error)
	GetBrokerProfile(ctx context.Context, req dto.GetBrokerProfileRequest) (dto.BrokerProfileResponse, error)
	RouteMap(ctx context.Context, req dto.RouteMapRequest) (dto.RouteMapResponse, error)
	ExportPDF(ctx context.Context, req dto.ExportRequest) (dto.ExportResponse, error)
}

type ItineraryEndpoint struct {
	ExtractTrip       endpoint.Endpoint
	SuggestFixes      endpoint.Endpoint
	ApplyFixes        endpoint.Endpoint
	SaveTrip          endpoint.Endpoint
	ListTrips         endpoint.Endpoint
	DeleteTrip        endpoint.Endpoint
	ShareTrip         endpoint.Endpoint
	GetShare          endpoint.Endpoint
	SaveBrokerProfile endpoint.Endpoint
	GetBrokerProfile  endpoint.Endpoint
	RouteMap          endpoint.Endpoint
	ExportPDF         endpoint.Endpoint
}

func MakeItineraryEndpoint(service ItineraryService) ItineraryEndpoint {
	return ItineraryEndpoint{
		ExtractTrip:       makeExtractTripEndpoint(service),
		SuggestFixes:      makeSuggestFixesEndpoint(service),
		ApplyFixes:        makeApplyFixesEndpoint(service),
		SaveTrip:          makeSaveTripEndpoint(service),
		ListTrips:         makeListTripsEndpoint(service),
		DeleteTrip:        makeDeleteTripEndpoint(service),
		ShareTrip:         makeShareTripEndpoint(service),
		GetShare:          makeGetShareEndpoint(service),
		SaveBrokerProfile: makeSaveBrokerProfileEndpoint(service),
		GetBrokerProfile:  makeGetBrokerProfileEndpoint(service),
		RouteMap:          makeRouteMapEndpoint(service),
		ExportPDF:         makeExportPDFEndpoint(service),
	}
}

func makeExtractTripEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ExtractRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ExtractTrip(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeSuggestFixesEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SuggestRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.SuggestCorrections(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeApplyFixesEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ApplyFixesRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ApplyFixes(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeSaveTripEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SaveTripRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.SaveTrip(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeListTripsEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ListTripsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ListTrips(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeDeleteTripEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.DeleteTripRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		if err := service.DeleteTrip(ctx, *request); err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return dto.Response{Message: "trip deleted"}, nil
	}
}

func makeShareTripEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ShareRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ShareTrip(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeGetShareEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.GetShareRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.GetShare(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeSaveBrokerProfileEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SaveBrokerProfileRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.SaveBrokerProfile(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeGetBrokerProfileEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.GetBrokerProfileRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.GetBrokerProfile(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeRouteMapEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.RouteMapRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.RouteMap(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}

func makeExportPDFEndpoint(service ItineraryService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ExportRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := service.ExportPDF(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("itinerary service: %w", err)
		}

		return resp, nil
	}
}
