package removal

import "errors"

// Expected failure classes. The orchestrator converts all of these into a
// Result with Success=false; they never escape to the tool layer.
var (
	// ErrInvalidRequest marks malformed or missing request parameters.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrFileNotFound marks a missing or unreadable input path.
	ErrFileNotFound = errors.New("input file not found")

	// ErrGeneration marks failures while producing the output: decode
	// errors, backend session or inference failures, and write errors.
	ErrGeneration = errors.New("background removal failed")
)
