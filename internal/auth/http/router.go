package http

import (
	"context"
	"net/http"
	"time"

	authdomain "github.com/AlibekovAA/task-manager/internal/auth/domain"
	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
)

type CredentialService interface {
	Signup(ctx context.Context, input authdomain.AuthCredentials) error
	SignIn(ctx context.Context, input authdomain.AuthCredentials) (string, error)
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
}

type Handler struct {
	auth CredentialService
	log  *logger.Logger
}

// Register mounts the public auth routes on mux.
func Register(mux *http.ServeMux, auth CredentialService, requestTimeout time.Duration, log *logger.Logger) {
	h := &Handler{auth: auth, log: log}
	timeout := commonhttp.WithTimeout(requestTimeout)

	mux.HandleFunc("POST /auth/signup", timeout(h.signup))
	mux.HandleFunc("POST /auth/signin", timeout(h.signin))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req authdomain.AuthCredentials
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "signup_invalid_json"}).Warnf("signup failed: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := h.auth.Signup(r.Context(), req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var req authdomain.AuthCredentials
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "signin_invalid_json"}).Warnf("signin failed: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	token, err := h.auth.SignIn(r.Context(), req)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, signInResponse{AccessToken: token})
}
