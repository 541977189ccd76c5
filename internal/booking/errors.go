package booking

import "errors"

var (
	// ErrMissingUser is returned when no authenticated user id is available.
	ErrMissingUser = errors.New("user id is required")

	// ErrInvalidDate is returned when the appointment date cannot be parsed.
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrBookingRejected is returned when the upstream rejects the booking
	// create request; the wrapped message carries the server's reason.
	ErrBookingRejected = errors.New("booking was rejected")

	// ErrPaymentLink is returned when the booking exists but no checkout
	// link could be obtained.
	ErrPaymentLink = errors.New("could not obtain payment link")
)
