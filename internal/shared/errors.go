package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrForbidden        = fmt.Errorf("permission denied")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoToken          = fmt.Errorf("no token available")

	// Transport and API errors
	ErrNetwork           = fmt.Errorf("network request failed")
	ErrMalformedResponse = fmt.Errorf("malformed response")
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrRequestRejected   = fmt.Errorf("request rejected")

	// Domain errors
	ErrItineraryNotFound = fmt.Errorf("itinerary not found")
	ErrJobNotFound       = fmt.Errorf("no tracked job")
	ErrNotCompleted      = fmt.Errorf("itinerary not completed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
