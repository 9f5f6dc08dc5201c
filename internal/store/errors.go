package store

import "errors"

// Sentinel errors returned by storage methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStorageUnavailable is returned when a backing file is missing and
	// cannot be initialized, or cannot be read or written at all
	// (disk or permission failure). Fatal for the calling operation.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedStorage is returned when an existing backing file cannot
	// be parsed with the primary encoding and the single latin-1 fallback
	// attempt also fails.
	ErrMalformedStorage = errors.New("malformed storage")

	// ErrDuplicateIdentity is returned when credential creation targets an
	// identity that already exists in the credential file. No state is
	// changed.
	ErrDuplicateIdentity = errors.New("identity already exists")

	// ErrCredentialNotFound is returned when a lookup expected to match a
	// credential record produces no result.
	ErrCredentialNotFound = errors.New("credential not found")
)
