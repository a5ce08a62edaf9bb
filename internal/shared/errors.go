package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Data provider errors
	ErrFetchFailed      = fmt.Errorf("fetch failed")
	ErrUnexpectedStatus = fmt.Errorf("unexpected response status")
	ErrMalformedPayload = fmt.Errorf("malformed payload")

	// Lookup errors
	ErrReviewNotFound = fmt.Errorf("review not found")
	ErrYearNotFound   = fmt.Errorf("ranking year not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidMode     = fmt.Errorf("invalid search mode")
	ErrInvalidView     = fmt.Errorf("invalid view")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
