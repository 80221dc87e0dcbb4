package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and provider errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrEmptyResponse      = fmt.Errorf("empty response")
	ErrMalformedResponse  = fmt.Errorf("malformed response")

	// Catalog errors
	ErrArtistNotFound = fmt.Errorf("artist not found")
	ErrEventNotFound  = fmt.Errorf("event not found")
	ErrDuplicateID    = fmt.Errorf("duplicate id")

	// Storage errors
	ErrStorage = fmt.Errorf("storage failure")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
	ErrInvalidFormat   = fmt.Errorf("invalid export format")
)
