package service

import (
	"net/http"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/exception"
)

var ErrInvalidFilePayload = exception.ApplicationError{
	Message:    "file payload is not valid base64 or data URL",
	StatusCode: http.StatusBadRequest,
}

var ErrExtractionInFlight = exception.ApplicationError{
	Message:    "an extraction is already running for this user",
	StatusCode: http.StatusConflict,
}
