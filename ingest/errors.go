package ingest

import "errors"

// Failure classes for one ingestion cycle. Nothing here is retried locally;
// every failure propagates to the Lambda runtime and the scheduler's
// redelivery policy decides what happens next.
var (
	// ErrSecretUnavailable indicates a vault parameter was missing,
	// unreadable, or empty.
	ErrSecretUnavailable = errors.New("secret unavailable")

	// ErrAuthentication indicates the vehicle backend refused the
	// account credentials.
	ErrAuthentication = errors.New("vehicle backend authentication failed")

	// ErrBackendUnreachable indicates a transient network or backend
	// failure while talking to the vehicle API.
	ErrBackendUnreachable = errors.New("vehicle backend unreachable")

	// ErrBackendRejected indicates the vehicle backend answered with a
	// response this client cannot use.
	ErrBackendRejected = errors.New("vehicle backend returned an unusable response")

	// ErrMapping indicates a snapshot that cannot be projected into a row.
	ErrMapping = errors.New("snapshot cannot be mapped")

	// ErrSinkRejected indicates the destination table refused the row
	// (schema mismatch, permissions, quota).
	ErrSinkRejected = errors.New("sink rejected the row")

	// ErrSinkUnavailable indicates a transient failure delivering the row.
	ErrSinkUnavailable = errors.New("sink unavailable")
)
