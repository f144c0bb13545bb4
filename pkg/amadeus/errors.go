package amadeus

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned when a keyword lookup matches nothing.
	ErrLocationNotFound = errors.New("amadeus: no location found")

	// ErrTimeout is returned when an upstream call exceeds its deadline.
	ErrTimeout = errors.New("amadeus: upstream call timed out")
)

// TokenAcquisitionError reports a failed client-credentials exchange. The
// cached token state is untouched when this happens, so the next call simply
// retries the exchange.
type TokenAcquisitionError struct {
	// Status is the upstream HTTP status, 0 for transport failures.
	Status int
	Err    error
}

func (e *TokenAcquisitionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("amadeus: token acquisition failed with status %d", e.Status)
	}
	return fmt.Sprintf("amadeus: token acquisition failed: %v", e.Err)
}

func (e *TokenAcquisitionError) Unwrap() error { return e.Err }

// UpstreamError reports a non-2xx response from a lookup call that is not an
// authorization rejection.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("amadeus: upstream request failed with status %d", e.Status)
}
