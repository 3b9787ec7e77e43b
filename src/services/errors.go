package services

import "errors"

var (
	// ErrPaymentNotFound signals a webhook or staff action referencing an
	// identifier no Payment (or deposit authorization) resolves to. Surfaced
	// as 400 to the gateway so it does not retry blindly.
	ErrPaymentNotFound = errors.New("payment not found")

	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyConfirmed rejects a manual confirmation of a settled payment.
	// The manual path is deliberately not idempotent: a second click signals a
	// workflow bug the staff UI should hear about.
	ErrAlreadyConfirmed = errors.New("payment already confirmed")

	// ErrGatewayUnavailable wraps external provider failures. Link-creation
	// callers must not persist anything when they see it.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	ErrForbidden = errors.New("forbidden")
)
