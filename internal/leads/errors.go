package leads

import "errors"

var (
	// ErrMissingEmail is returned when the email is absent
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingMessage is returned when the message is absent
	ErrMissingMessage = errors.New("message is required")
)
