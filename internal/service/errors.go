package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired = errors.New("token is expired")

	// ErrImportParse is returned when uploaded content does not parse as a
	// recognized tabular format. The backing store is left untouched.
	ErrImportParse = errors.New("import content could not be parsed")

	// ErrCreationNotSupported is returned when credential creation is
	// requested against the static verifier variant, whose table is fixed
	// at process start.
	ErrCreationNotSupported = errors.New("credential creation not supported")

	// ErrUnknownStatus is returned when a record mutation names a status
	// outside the configured enumeration.
	ErrUnknownStatus = errors.New("unknown status value")
)
