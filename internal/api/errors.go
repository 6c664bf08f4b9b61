package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a retrieval failure
type ErrorKind string

const (
	KindNetwork       ErrorKind = "network"
	KindAuthorization ErrorKind = "authorization"
	KindStatus        ErrorKind = "status"
	KindMalformed     ErrorKind = "malformed"
	KindNotFound      ErrorKind = "not_found"
)

// FetchError is returned by every Client request that fails
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // 0 unless the server answered
	URL        string
	Err        error
}

// Error implements the error interface for FetchError
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error fetching %s (HTTP %d): %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s error fetching %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage returns a message suitable for the status line
func (e *FetchError) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "Could not reach the sightings service. Check your connection and press r to retry."
	case KindAuthorization:
		return "Your session was rejected. Sign in again with a valid session token."
	case KindNotFound:
		return "The requested sighting does not exist."
	case KindMalformed:
		return "The sightings service returned data that could not be read."
	default:
		return fmt.Sprintf("The sightings service returned an error (HTTP %d).", e.StatusCode)
	}
}

// IsKind reports whether err is a FetchError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

// UserMessage returns a user-facing message for any error
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.UserMessage()
	}
	return err.Error()
}
