package entitlement

import (
	"net/http"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/pkg/exception"
)

var ErrPaymentRequired = exception.ApplicationError{
	StatusCode: http.StatusPaymentRequired,
	Message:    "free export limit reached, subscription required",
}
