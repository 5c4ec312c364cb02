package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing API key")

	// Authentication errors
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// API and service errors
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrKeyNotFound        = fmt.Errorf("key not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// APIError is a well-formed failure envelope from the metadata API.
//
// Message holds the API's own error string and is surfaced to the user
// verbatim, so wrapping must not prepend to it.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is reports whether target is [ErrAPIRequest], letting callers match the
// whole class with errors.Is while errors.As extracts the verbatim message.
func (e *APIError) Is(target error) bool {
	return target == ErrAPIRequest
}
