package tripstore

import (
	"net/http"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/exception"
)

var ErrShareNotFound = exception.ApplicationError{
	StatusCode: http.StatusNotFound,
	Message:    "shared trip not found or expired",
}
