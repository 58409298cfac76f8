package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sufield/taskhub/internal/app"
	"github.com/sufield/taskhub/internal/domain"
)

// AuthHandler exposes registration, login, logout, and the user
// directory over HTTP.
type AuthHandler struct {
	auth *app.AuthService
	log  *logrus.Logger
}

// NewAuthHandler creates the auth endpoints.
func NewAuthHandler(auth *app.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /register. Registration never logs the user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logEntry := h.log.WithField("handler", "Register")

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body", nil)
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "Registration validation failed", fields)
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusUnprocessableEntity, "Registration validation failed",
				map[string][]string{"email": {"Email is already registered"}})
			return
		}
		logEntry.WithError(err).Error("registration failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	logEntry.WithField("email", req.Email).Info("user registered")
	writeSuccess(w, http.StatusCreated, "User successfully registered", nil)
}

// Login handles POST /login. Issuing a new token revokes any previous
// session for the same user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logEntry := h.log.WithField("handler", "Login")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body", nil)
		return
	}
	if fields := validateStruct(req); fields != nil {
		writeError(w, http.StatusUnprocessableEntity, "Login validation failed", fields)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid Credentials", nil)
			return
		}
		logEntry.WithError(err).Error("login failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	logEntry.WithField("user_id", user.ID).Info("user logged in")
	writeSuccess(w, http.StatusOK, "User successfully logged in", map[string]any{
		"token": token,
		"user":  sessionUserPayload{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Logout handles POST /logout. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := actingUser(r.Context())

	if err := h.auth.Logout(r.Context(), user); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("logout failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	writeSuccess(w, http.StatusOK, "User successfully logged out", nil)
}

// ListUsers handles GET /users: every user's name and email, for the
// assignee picker.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list users failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	writeSuccess(w, http.StatusOK, "Users retrieved successfully", map[string]any{
		"users": toUserPayloads(users),
	})
}
