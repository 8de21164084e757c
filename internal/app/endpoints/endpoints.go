package endpoints

// Endpoints collects every endpoint group the HTTP router exposes.
type Endpoints struct {
	ItineraryEndpoint ItineraryEndpoint
}
