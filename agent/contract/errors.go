package contract

import "errors"

var (
	// ErrNoAccountLoaded is returned by any operation that needs a loaded
	// account record before one has been looked up.
	ErrNoAccountLoaded = errors.New("no account loaded")

	// ErrAccountNotFound means the directory has no record for the stated
	// reference number. Distinct from ErrDirectoryUnavailable so the
	// orchestrator can pick different retry wording.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDirectoryUnavailable marks a transient lookup failure. The core
	// never retries internally; retry policy belongs to the orchestrator.
	ErrDirectoryUnavailable = errors.New("account directory unavailable")

	// ErrNotVerified gates disclosure and payment on the 2-of-3 tally.
	ErrNotVerified = errors.New("caller identity not verified")

	// ErrMissingContext is returned when a transfer is requested before the
	// session knows its call and participant identity.
	ErrMissingContext = errors.New("call context missing")
)
