package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/LuiFig19/TaskChrono-sub001/internal/crypto"
	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/logging"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/services"
)

// authStore is the subset of queries the auth handler needs.
type authStore interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	GetUserByID(ctx context.Context, id string) (db.User, error)
}

// AuthHandler manages account registration and login.
type AuthHandler struct {
	store       authStore
	authService *services.AuthService
}

// NewAuthHandler creates an AuthHandler with the required dependencies.
func NewAuthHandler(store authStore, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{store: store, authService: authService}
}

// Register creates a user account and returns a signed token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Name == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "email, name, and a password of at least 8 characters are required")
		return
	}

	if _, err := h.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), db.CreateUserParams{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to generate token", err)
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{
		Token: token,
		User:  userToResponse(user),
	})
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logging.LogSecurityEvent(r.Context(), logging.SecurityEventBadCredentials, "login with unknown email")
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to look up user", err)
		return
	}

	ok, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to verify password", err)
		return
	}
	if !ok {
		logging.LogSecurityEvent(r.Context(), logging.SecurityEventBadCredentials, "login with wrong password")
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to generate token", err)
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  userToResponse(user),
	})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

func userToResponse(u db.User) models.UserResponse {
	return models.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
