package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propmart/catalog-backend/internal/http/response"
	"github.com/propmart/catalog-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	user, err := h.svc.Register(r.Context(), body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthInvalidUsername), errors.Is(err, service.ErrAuthWeakPassword):
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		case errors.Is(err, service.ErrAuthUsernameTaken):
			response.Error(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to register", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	token, err := h.svc.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthInvalidCredentials) {
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to log in", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}
