package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token with convenience accessors for the
// authentication flow of the HTTP shell.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry).
// The authenticated identity travels in the "sub" claim and its role in
// the custom "role" claim, so the server never needs session storage.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// Role is the role granted to the identity at login time.
	Role Role `json:"role,omitempty"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Identity is the identity extracted from the "sub" claim; a cached
	// server-side copy populated during parsing.
	Identity string `json:"-"`
}

// GetIdentity extracts the identity from the token's "sub" (subject)
// claim. Returns an error if the claim is missing or empty.
func (t *Token) GetIdentity() (string, error) {
	identity, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting identity from token: %w", err)
	}
	if identity == "" {
		return "", fmt.Errorf("empty subject claim")
	}
	return identity, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
