package http

import "errors"

// Sentinel errors used by the authentication middleware when the inbound
// Authorization header cannot be used.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty authorization header")
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	ErrEmptyToken                 = errors.New("empty token")
)
