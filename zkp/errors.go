package zkp

import "errors"

// Phase errors. Every failure aborts the run; nothing is retried internally.
// A false verification result is not an error (see Verify).
var (
	// ErrAssignmentMissing marks a circuit value that was absent when a
	// concrete assignment was demanded. Expected for placeholder instances
	// during indexing, fatal during proving.
	ErrAssignmentMissing = errors.New("zkp: circuit assignment missing")

	ErrSetupFailed        = errors.New("zkp: universal setup failed")
	ErrIndexingFailed     = errors.New("zkp: indexing failed")
	ErrProvingFailed      = errors.New("zkp: proving failed")
	ErrVerificationFailed = errors.New("zkp: verification failed")
)
