package services

import "errors"

// Domain errors returned by the listing and report services. Handlers match
// these with errors.Is and translate them to HTTP statuses; the raw store
// error is never surfaced to clients.
var (
	// ErrMalformedID is returned before any store round-trip when an
	// identifier does not parse as a UUID.
	ErrMalformedID = errors.New("malformed id")

	// ErrValidation is returned when a mandatory listing attribute is
	// missing or empty.
	ErrValidation = errors.New("missing required listing fields")

	ErrListingNotFound = errors.New("food item not found")
	ErrReportNotFound  = errors.New("report not found")

	// Reservation state failures.
	ErrAlreadyReserved   = errors.New("food item is already reserved")
	ErrNoLongerAvailable = errors.New("food item is no longer available")

	// Completion failures. ErrNotReserver is an authorization failure, kept
	// distinct from the state failure ErrNotReserved.
	ErrNotReserved = errors.New("food item is not in reserved status")
	ErrNotReserver = errors.New("transaction reserved by someone else")

	// ErrStateChanged is returned when a conditional completion matched
	// nothing and the re-read shows the listing moved under the caller.
	ErrStateChanged = errors.New("food item state changed before completion")

	// ErrConflict covers a zero-match conditional write whose cause the
	// re-read could not classify.
	ErrConflict = errors.New("unexpected conflict while updating food item")

	ErrInvalidReviewStatus = errors.New("invalid review status")
)
