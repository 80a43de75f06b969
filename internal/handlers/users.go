package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/volunteernetwork/api/internal/database"
	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/validation"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userRepo database.UserRepositoryInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo database.UserRepositoryInterface) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// CreateUserRequest represents a create user request
type CreateUserRequest struct {
	Email string  `json:"email" validate:"required,email,max=254"`
	Name  *string `json:"name,omitempty" validate:"omitempty,max=200"`
}

// CreateUser registers a new volunteer account
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	if req.Name != nil {
		sanitized := validation.SanitizeText(*req.Name)
		req.Name = &sanitized
	}

	user := &models.User{
		ID:    uuid.New(),
		Email: req.Email,
		Name:  req.Name,
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// ListUsers returns all registered users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.GetAll(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve users")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// DeleteUser removes a user by id
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid user ID")
		return
	}

	if err := h.userRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "User not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
