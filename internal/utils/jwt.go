package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/repair-desk/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the authenticated identity
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - role:            the role granted to the identity at login time
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateJWTToken(issuer, identity string, role models.Role, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || identity == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	claims.Token = token
	claims.SignedString = tokenString
	claims.Identity = identity

	return *claims, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Returns the parsed [models.Token] with its cached Identity and Role, or
// an error if validation fails or claims are missing.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected token claims type")
	}

	identity, err := claims.GetIdentity()
	if err != nil {
		return models.Token{}, err
	}

	claims.Token = token
	claims.SignedString = tokenString
	claims.Identity = identity

	return *claims, nil
}
