package errors

import (
	"errors"
	"fmt"
)

// Common error types for the activity backend and the handshake orchestrator
var (
	// Configuration errors
	ErrMissingClientID     = errors.New("client id not configured")
	ErrMissingClientSecret = errors.New("client secret not configured")
	ErrInvalidConfig       = errors.New("invalid configuration")

	// Upstream token exchange errors (backend side, distinguishable in logs only)
	ErrUpstreamUnavailable       = errors.New("upstream unavailable")
	ErrExchangeRejected          = errors.New("exchange rejected by upstream")
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")

	// Handshake errors (client side)
	ErrHostDenied           = errors.New("host denied request")
	ErrExchangeFailed       = errors.New("code exchange failed")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrEnrichmentFailed     = errors.New("enrichment failed")
	ErrTransitionUsed       = errors.New("handshake transition already used")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
