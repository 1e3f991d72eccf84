package reactive

import "errors"

// Errors returned by store operations.
var (
	// ErrUnknownMethod indicates Call was given an unregistered method name.
	ErrUnknownMethod = errors.New("unknown store method")

	// ErrInvalidJSON indicates AssignJSON was given malformed JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrNoValue indicates Decode found nothing at the requested path.
	ErrNoValue = errors.New("no value at path")
)
