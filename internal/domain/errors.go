package domain

import "errors"

// Validation error strings double as wire messages in the 400 response body,
// so their casing follows the client contract rather than Go convention.
var (
	ErrMissingPoses = errors.New("Missing 'poses' in request body")
	ErrEmptyPoses   = errors.New("Poses list is empty")
	ErrNoPoseData   = errors.New("No pose data provided")
	ErrEmptyRequest = errors.New("No data provided")

	ErrModelAuth     = errors.New("model gateway authentication failed")
	ErrUpstreamModel = errors.New("upstream model failure")
)
