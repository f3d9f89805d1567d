// Package integration wraps the third-party services the booking system
// talks to: Stripe for checkout, Twilio for SMS and SendGrid for e-mail.
// Every outbound call runs behind a circuit breaker.
package integration

import "errors"

var (
	// ErrIntegrationUnavailable means the service has no credentials or its
	// breaker is open.
	ErrIntegrationUnavailable = errors.New("integration unavailable")
	// ErrExternalService wraps failures reported by the provider.
	ErrExternalService = errors.New("external service error")
)

// UnavailableError names the service that could not be used.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	return e.Service + " is " + e.Reason
}

// Unwrap lets errors.Is match ErrIntegrationUnavailable.
func (e *UnavailableError) Unwrap() error { return ErrIntegrationUnavailable }

func notConfigured(service string) error {
	return &UnavailableError{Service: service, Reason: "not configured"}
}
