package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LuiFig19/TaskChrono-sub001/internal/crypto"
	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/services"
)

type mockAuthStore struct {
	usersByEmail map[string]db.User
	usersByID    map[string]db.User
	created      []db.CreateUserParams
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{
		usersByEmail: make(map[string]db.User),
		usersByID:    make(map[string]db.User),
	}
}

func (m *mockAuthStore) CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error) {
	m.created = append(m.created, arg)
	user := db.User{
		ID:           arg.ID,
		Email:        arg.Email,
		Name:         arg.Name,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    time.Now(),
	}
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return user, nil
}

func (m *mockAuthStore) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok {
		return db.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockAuthStore) GetUserByID(ctx context.Context, id string) (db.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return db.User{}, sql.ErrNoRows
	}
	return user, nil
}

func newTestAuthService() *services.AuthService {
	return services.NewAuthService("test-secret", time.Hour)
}

func TestAuthHandler_Register(t *testing.T) {
	store := newMockAuthStore()
	handler := NewAuthHandler(store, newTestAuthService())

	body, _ := json.Marshal(models.RegisterRequest{
		Email:    "Ada@Example.com",
		Name:     "Ada",
		Password: "correct horse",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp models.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.User.Email != "ada@example.com" {
		t.Errorf("Email = %q, want lowercased %q", resp.User.Email, "ada@example.com")
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d users, want 1", len(store.created))
	}
	if store.created[0].PasswordHash == "correct horse" {
		t.Error("password must not be stored in plain text")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing email", models.RegisterRequest{Name: "Ada", Password: "longenough"}},
		{"missing name", models.RegisterRequest{Email: "a@b.c", Password: "longenough"}},
		{"short password", models.RegisterRequest{Email: "a@b.c", Name: "Ada", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(newMockAuthStore(), newTestAuthService())
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	store := newMockAuthStore()
	store.usersByEmail["ada@example.com"] = db.User{ID: "u1", Email: "ada@example.com"}
	handler := NewAuthHandler(store, newTestAuthService())

	body, _ := json.Marshal(models.RegisterRequest{Email: "ada@example.com", Name: "Ada", Password: "longenough"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := crypto.HashPassword("open sesame")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	store := newMockAuthStore()
	store.usersByEmail["ada@example.com"] = db.User{ID: "u1", Email: "ada@example.com", Name: "Ada", PasswordHash: hash}

	handler := NewAuthHandler(store, newTestAuthService())

	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"correct credentials", "ada@example.com", "open sesame", http.StatusOK},
		{"mixed case email", "Ada@Example.com", "open sesame", http.StatusOK},
		{"wrong password", "ada@example.com", "wrong", http.StatusUnauthorized},
		{"unknown email", "nobody@example.com", "open sesame", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(models.LoginRequest{Email: tt.email, Password: tt.password})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK {
				var resp models.AuthResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.Token == "" {
					t.Error("expected a token in the response")
				}
			}
		})
	}
}
