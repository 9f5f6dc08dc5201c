// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/repair-desk/internal/service"
	"github.com/MKhiriev/repair-desk/internal/store"
	"github.com/MKhiriev/repair-desk/internal/utils"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// credentialsBody serialises a credentials request to a JSON body string.
func credentialsBody(t *testing.T, identity, secret string) string {
	t.Helper()
	b, err := json.Marshal(credentialsRequest{Identity: identity, Secret: secret})
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// ─────────────────────────────────────────────
// login — success
// ─────────────────────────────────────────────

// TestLogin_Success verifies that valid credentials result in 200 OK, an
// Authorization header with the issued Bearer token, the verification
// result in the body, and a recorded login action.
func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		verifyFn: func(_ context.Context, identity, secret string) (models.AuthResult, error) {
			return models.AuthResult{Authenticated: true, Role: models.RoleAdmin}, nil
		},
		createTokenFn: func(_ context.Context, _ string, _ models.Role) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}
	audit := &mockAuditService{}

	h := newTestHandler(t, &service.Services{AuthService: auth, AuditService: audit})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(credentialsBody(t, "admin", "s3cret")))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))

	var result models.AuthResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Authenticated)
	assert.Equal(t, models.RoleAdmin, result.Role)

	require.Len(t, audit.recorded, 1)
	assert.Equal(t, models.ActionLogin, audit.recorded[0].Action)
	assert.Equal(t, "admin", audit.recorded[0].User)
}

// ─────────────────────────────────────────────
// login — failures
// ─────────────────────────────────────────────

// TestLogin_InvalidJSON verifies that a malformed request body results in
// 400 Bad Request.
func TestLogin_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

// TestLogin_InvalidCredentials verifies the uniform 401 for a failed
// verification: the response never says whether the identity exists.
func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, _, _ string) (models.AuthResult, error) {
			return models.AuthResult{}, nil
		},
	}
	audit := &mockAuditService{}

	h := newTestHandler(t, &service.Services{AuthService: auth, AuditService: audit})

	for _, body := range []string{
		credentialsBody(t, "unknown", "secret"),
		credentialsBody(t, "admin", "wrong-secret"),
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
		assert.Empty(t, rec.Header().Get("Authorization"))
	}

	// failed attempts are not recorded as logins
	assert.Empty(t, audit.recorded)
}

// TestLogin_VerifierError verifies that a storage failure during
// verification maps to 500 Internal Server Error.
func TestLogin_VerifierError(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, _, _ string) (models.AuthResult, error) {
			return models.AuthResult{}, errors.New("credential file unreadable")
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(credentialsBody(t, "admin", "s3cret")))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestLogin_CreateTokenFails verifies that a token creation failure after
// successful verification maps to 500 Internal Server Error.
func TestLogin_CreateTokenFails(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, _, _ string) (models.AuthResult, error) {
			return models.AuthResult{Authenticated: true, Role: models.RoleReadonly}, nil
		},
		createTokenFn: func(_ context.Context, _ string, _ models.Role) (models.Token, error) {
			return models.Token{}, errors.New("signing failed")
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(credentialsBody(t, "bob", "hunter2")))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

// TestLogout verifies that logout records the action for the identity in
// the request context and returns 200 OK.
func TestLogout(t *testing.T) {
	audit := &mockAuditService{}
	h := newTestHandler(t, &service.Services{AuditService: audit})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	ctx := context.WithValue(req.Context(), utils.IdentityCtxKey, "bob")
	rec := httptest.NewRecorder()

	h.logout(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, audit.recorded, 1)
	assert.Equal(t, models.ActionLogout, audit.recorded[0].Action)
	assert.Equal(t, "bob", audit.recorded[0].User)
}

// TestLogout_AuditFailure verifies that a failed audit append fails the
// whole operation.
func TestLogout_AuditFailure(t *testing.T) {
	audit := &mockAuditService{
		recordFn: func(_ context.Context, _, _, _ string) error {
			return errors.New("disk full")
		},
	}
	h := newTestHandler(t, &service.Services{AuditService: audit})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// createUser
// ─────────────────────────────────────────────

// TestCreateUser_Success verifies 201 Created and the recorded action
// naming the new identity in its details.
func TestCreateUser_Success(t *testing.T) {
	auth := &mockAuthService{
		createCredentialFn: func(_ context.Context, identity, secret string) error {
			return nil
		},
	}
	audit := &mockAuditService{}

	h := newTestHandler(t, &service.Services{AuthService: auth, AuditService: audit})
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(credentialsBody(t, "bob", "hunter2")))
	ctx := context.WithValue(req.Context(), utils.IdentityCtxKey, "admin")
	rec := httptest.NewRecorder()

	h.createUser(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, audit.recorded, 1)
	assert.Equal(t, models.ActionCreateUser, audit.recorded[0].Action)
	assert.Equal(t, "admin", audit.recorded[0].User)
	assert.Equal(t, "bob", audit.recorded[0].Details)
}

// TestCreateUser_Errors verifies the error mapping of credential creation
// failures.
func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid data", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "duplicate identity", err: store.ErrDuplicateIdentity, wantStatus: http.StatusConflict},
		{name: "static variant", err: service.ErrCreationNotSupported, wantStatus: http.StatusNotImplemented},
		{name: "unexpected", err: errors.New("disk full"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				createCredentialFn: func(_ context.Context, _, _ string) error {
					return tt.err
				},
			}
			audit := &mockAuditService{}

			h := newTestHandler(t, &service.Services{AuthService: auth, AuditService: audit})
			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(credentialsBody(t, "bob", "hunter2")))
			rec := httptest.NewRecorder()

			h.createUser(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, audit.recorded)
		})
	}
}

// TestCreateUser_InvalidJSON verifies that a malformed body results in
// 400 Bad Request.
func TestCreateUser_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.createUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
