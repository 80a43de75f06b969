package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/volunteernetwork/api/internal/models"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	repo := newMockUserRepo()
	handler := NewUserHandler(repo)

	req := httptest.NewRequest("POST", "/user", strings.NewReader(`{"email":"alice@example.com","name":"Alice"}`))
	w := httptest.NewRecorder()

	handler.CreateUser(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	if len(repo.users) != 1 {
		t.Fatalf("Expected 1 user in the store, got %d", len(repo.users))
	}

	var body struct {
		Success bool         `json:"success"`
		Data    *models.User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body.Data == nil || body.Data.Email != "alice@example.com" {
		t.Errorf("Expected the created user back, got %+v", body.Data)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing email",
			body: `{"name":"Alice"}`,
		},
		{
			name: "malformed email",
			body: `{"email":"not-an-email"}`,
		},
		{
			name: "invalid json",
			body: `{"email":`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockUserRepo()
			handler := NewUserHandler(repo)

			req := httptest.NewRequest("POST", "/user", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.CreateUser(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", resp.StatusCode)
			}

			if len(repo.users) != 0 {
				t.Error("No user should be stored on validation failure")
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	repo := newMockUserRepo()
	repo.users[uuid.New()] = &models.User{ID: uuid.New(), Email: "alice@example.com"}
	repo.users[uuid.New()] = &models.User{ID: uuid.New(), Email: "bob@example.com"}

	handler := NewUserHandler(repo)

	req := httptest.NewRequest("GET", "/user", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool           `json:"success"`
		Data    []*models.User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(body.Data) != 2 {
		t.Errorf("Expected 2 users, got %d", len(body.Data))
	}
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := newMockUserRepo()
	repo.users[id] = &models.User{ID: id, Email: "alice@example.com"}

	handler := NewUserHandler(repo)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{
			name:       "invalid id",
			id:         "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "absent user",
			id:         uuid.New().String(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "existing user",
			id:         id.String(),
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("DELETE", "/user/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			w := httptest.NewRecorder()

			handler.DeleteUser(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}
