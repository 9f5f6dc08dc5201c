// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/repair-desk/internal/config"
	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/store"
	"github.com/MKhiriev/repair-desk/internal/utils"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/pbkdf2"
)

// saltLength is the number of random bytes in a freshly generated
// credential salt.
const saltLength = 16

// derivedKeyLength is the PBKDF2 output size in bytes.
const derivedKeyLength = 32

// staticVerifier is the static credential variant: an in-memory table of
// plaintext secrets fixed at construction time. Secrets are compared
// exactly, case-sensitive, with no normalization.
type staticVerifier struct {
	credentials map[string]models.StaticCredential
}

// NewStaticVerifier constructs a [CredentialVerifier] over a fixed
// credential table. The map is copied; later changes to the argument do
// not affect the verifier.
func NewStaticVerifier(credentials map[string]models.StaticCredential) CredentialVerifier {
	table := make(map[string]models.StaticCredential, len(credentials))
	for identity, credential := range credentials {
		table[identity] = credential
	}
	return &staticVerifier{credentials: table}
}

// Verify implements [CredentialVerifier]. The role on success is the role
// stored in the table.
func (s *staticVerifier) Verify(ctx context.Context, identity, secret string) (models.AuthResult, error) {
	credential, ok := s.credentials[identity]
	if !ok || credential.Secret != secret {
		return models.AuthResult{}, nil
	}

	return models.AuthResult{Authenticated: true, Role: credential.Role}, nil
}

// hashedVerifier is the hashed credential variant: salted
// PBKDF2-HMAC-SHA256 records loaded from the credential file, creatable at
// runtime. The role is not stored per user; it is derived from the
// identity via [models.RoleFor].
type hashedVerifier struct {
	credentials store.CredentialRepository
	iterations  int
	logger      *logger.Logger
}

// NewHashedVerifier constructs the hashed [CredentialVerifier] over the
// given credential repository. iterations is the PBKDF2 cost used for
// newly created credentials; stored records carry their own count and
// verify under it.
//
// The returned value also implements [CredentialCreator].
func NewHashedVerifier(credentials store.CredentialRepository, iterations int, logger *logger.Logger) CredentialVerifier {
	return &hashedVerifier{
		credentials: credentials,
		iterations:  iterations,
		logger:      logger,
	}
}

// Verify implements [CredentialVerifier]. An unknown identity and a wrong
// secret produce the same not-authenticated result; only storage failures
// surface as errors.
func (h *hashedVerifier) Verify(ctx context.Context, identity, secret string) (models.AuthResult, error) {
	credential, err := h.credentials.Find(ctx, identity)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.AuthResult{}, nil
	}
	if err != nil {
		return models.AuthResult{}, err
	}

	salt, err := hex.DecodeString(credential.Salt)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: bad salt for %q", store.ErrMalformedStorage, identity)
	}

	derived := deriveHash(secret, salt, credential.Iterations)
	if subtle.ConstantTimeCompare([]byte(derived), []byte(credential.Hash)) != 1 {
		return models.AuthResult{}, nil
	}

	return models.AuthResult{Authenticated: true, Role: models.RoleFor(identity)}, nil
}

// Create implements [CredentialCreator]. It generates a fresh random salt,
// derives the PBKDF2 hash under the configured iteration count, and
// persists the record. An existing identity is rejected with
// [store.ErrDuplicateIdentity] and no state changes.
func (h *hashedVerifier) Create(ctx context.Context, identity, secret string) error {
	if identity == "" || secret == "" {
		return ErrInvalidDataProvided
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	credential := models.HashedCredential{
		Salt:       hex.EncodeToString(salt),
		Iterations: h.iterations,
		Hash:       deriveHash(secret, salt, h.iterations),
	}

	if err := h.credentials.Create(ctx, identity, credential); err != nil {
		return err
	}

	h.logger.Info().Str("identity", identity).Msg("credential created")
	return nil
}

// deriveHash computes the hex-encoded PBKDF2-HMAC-SHA256 derived key for a
// secret under the given salt and iteration count.
func deriveHash(secret string, salt []byte, iterations int) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(secret), salt, iterations, derivedKeyLength, sha256.New))
}

// authService is the concrete implementation of [AuthService]. It wraps a
// [CredentialVerifier] with the JWT session token lifecycle used by the
// HTTP shell. The cores themselves hold no session state; "being logged
// in" exists only in the token the shell carries.
type authService struct {
	verifier CredentialVerifier

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new [AuthService] over the given verifier,
// populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(verifier CredentialVerifier, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		verifier:      verifier,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Verify checks the submitted identity/secret pair against the configured
// verifier. Empty input is rejected up front with the same uniform
// not-authenticated result a wrong secret produces.
func (a *authService) Verify(ctx context.Context, identity, secret string) (models.AuthResult, error) {
	if identity == "" || secret == "" {
		return models.AuthResult{}, nil
	}

	return a.verifier.Verify(ctx, identity, secret)
}

// CreateCredential creates a new credential record via the verifier.
// Deployments running the static variant reject creation with
// [ErrCreationNotSupported].
func (a *authService) CreateCredential(ctx context.Context, identity, secret string) error {
	creator, ok := a.verifier.(CredentialCreator)
	if !ok {
		return ErrCreationNotSupported
	}

	return creator.Create(ctx, identity, secret)
}

// CreateToken issues a signed JWT session token carrying the identity in
// the subject claim and the granted role in the role claim.
func (a *authService) CreateToken(ctx context.Context, identity string, role models.Role) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity, role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("error generating JWT token")
		return models.Token{}, err
	}

	return token, nil
}

// ParseToken validates tokenString and returns the parsed token with its
// cached identity and role. An expired token maps to [ErrTokenIsExpired].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, err
	}

	return token, nil
}
