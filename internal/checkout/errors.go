package checkout

import "errors"

var (
	// ErrValidation marks malformed input; the request is rejected with a
	// user-facing message and nothing runs.
	ErrValidation = errors.New("invalid checkout input")
	// ErrSignature marks a missing or failed payment signature check; the
	// order is never persisted.
	ErrSignature = errors.New("payment verification failed")
	// ErrUpstream marks a gateway that could not be reached or is not set
	// up for online payment at all.
	ErrUpstream = errors.New("payment gateway unavailable")
)
