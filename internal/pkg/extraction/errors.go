package extraction

import (
	"net/http"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/exception"
)

var ErrModelUnavailable = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "extraction model unavailable or temporarily failing",
}

var ErrModelRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "extraction model rate limit exceeded",
}
