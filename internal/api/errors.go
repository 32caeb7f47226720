package api

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for the transport error taxonomy. Callers classify with
// errors.Is and decide between inline form errors and toasts; nothing here
// propagates to a global handler.
var (
	// ErrUnreachable: the request produced no response at all.
	ErrUnreachable = goerr.New("server unreachable")
	// ErrAuthExpired: 401. The session cookie is gone or stale.
	ErrAuthExpired = goerr.New("authentication expired")
	// ErrValidation: 400. The server message, when it is a string, is
	// surfaced verbatim.
	ErrValidation = goerr.New("request rejected")
	// ErrConflict: 409, used for duplicate request attempts.
	ErrConflict = goerr.New("duplicate request")
	// ErrServerFault: 5xx.
	ErrServerFault = goerr.New("server error")
)

// classify maps an HTTP status to its taxonomy sentinel, or nil when the
// status has no dedicated class.
func classify(status int) error {
	switch {
	case status == 401:
		return ErrAuthExpired
	case status == 400:
		return ErrValidation
	case status == 409:
		return ErrConflict
	case status >= 500:
		return ErrServerFault
	}
	return nil
}

// UserMessage renders an error for display. Validation errors carry the
// server's own message; the rest get a fixed phrasing per class.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		var ge *goerr.Error
		if errors.As(err, &ge) {
			if msg, ok := ge.Values()["message"].(string); ok && msg != "" {
				return msg
			}
		}
		return "Invalid input. Please check the form and try again."
	case errors.Is(err, ErrUnreachable):
		return "Unable to connect to server. Please check your connection and try again."
	case errors.Is(err, ErrAuthExpired):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, ErrConflict):
		return "Request already exists."
	case errors.Is(err, ErrServerFault):
		return "Server error. Please try again later."
	}
	return "Something went wrong. Please try again."
}
