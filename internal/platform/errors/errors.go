package apperrors

import "errors"

var (
	// ErrValidation covers the pre-submit checks: student, therapist and at
	// least one program must be present.
	ErrValidation = errors.New("validation failed")

	// ErrEndpointUnset means the sheet endpoint URL is missing or still the
	// placeholder; no network call is attempted in that state.
	ErrEndpointUnset = errors.New("sheet endpoint not configured")

	// ErrPermissionDenied is the HTML-instead-of-JSON reply from the sheet
	// script, the usual symptom of a deployment not shared with "Anyone".
	ErrPermissionDenied = errors.New("sheet permission denied")

	// ErrTransport covers connection failures and non-success statuses.
	ErrTransport = errors.New("sheet transport failure")

	// ErrEndpointRejected is a well-formed JSON reply that does not signal
	// success.
	ErrEndpointRejected = errors.New("sheet rejected session")

	// ErrSummaryUnavailable means no summarizer is configured or reachable.
	ErrSummaryUnavailable = errors.New("summary unavailable")

	// ErrNoDraft means there is no session draft on disk.
	ErrNoDraft = errors.New("no session draft")
)
