package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/service"
	"github.com/MKhiriev/repair-desk/internal/store"
	"github.com/MKhiriev/repair-desk/internal/utils"
	"github.com/MKhiriev/repair-desk/models"
)

// credentialsRequest is the JSON body of login and user-creation requests.
type credentialsRequest struct {
	Identity string `json:"identity"`
	Secret   string `json:"secret"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Verify(ctx, creds.Identity, creds.Secret)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during verification")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// the same uniform outcome for unknown identity and wrong secret
	if !result.Authenticated {
		log.Warn().Str("identity", creds.Identity).Msg("invalid credentials")
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, creds.Identity, result.Role)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.services.AuditService.Record(ctx, creds.Identity, models.ActionLogin, ""); err != nil {
		log.Err(err).Msg("error recording login action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("identity", creds.Identity).Str("role", string(result.Role)).Msg("identity successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, _ := utils.GetIdentityFromContext(ctx)

	// sessions are stateless JWTs; logout is recorded but nothing is revoked
	if err := h.services.AuditService.Record(ctx, identity, models.ActionLogout, ""); err != nil {
		log.Err(err).Msg("error recording logout action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.CreateCredential(ctx, creds.Identity, creds.Secret); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrDuplicateIdentity):
			log.Err(err).Msg("identity already exists")
			http.Error(w, "identity already exists", http.StatusConflict)
			return
		case errors.Is(err, service.ErrCreationNotSupported):
			log.Err(err).Msg("credential creation not supported")
			http.Error(w, "credential creation not supported", http.StatusNotImplemented)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during credential creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	actor, _ := utils.GetIdentityFromContext(ctx)
	if err := h.services.AuditService.Record(ctx, actor, models.ActionCreateUser, creds.Identity); err != nil {
		log.Err(err).Msg("error recording create_user action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
